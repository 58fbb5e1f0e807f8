package services

import (
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Posting:  NewPostingService(repos.JournalRepo, repos.DoctorRepo, repos.TokenRepo, options...),
		Reversal: NewReversalService(repos.JournalRepo, options...),
		Earnings: NewEarningsService(repos.JournalRepo, repos.TokenRepo, options...),
		Rollup:   NewRollupService(repos.JournalRepo, repos.ExpenseRepo, options...),
	}
}
