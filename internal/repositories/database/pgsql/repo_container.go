package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo: newPgxJournalRepository(dbPool),
		DoctorRepo:  newPgxDoctorRepository(dbPool),
		TokenRepo:   newPgxTokenRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
	}
}
