package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
	"github.com/SscSPs/hospital_ledger/internal/dto"
	"github.com/SscSPs/hospital_ledger/internal/middleware"
)

// ledgerHandler handles HTTP requests for postings, reversals and the doctor read views.
type ledgerHandler struct {
	postingService  portssvc.PostingSvc
	reversalService portssvc.ReversalSvc
	earningsService portssvc.EarningsSvc
	settings        domain.LedgerSettings
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(posting portssvc.PostingSvc, reversal portssvc.ReversalSvc, earnings portssvc.EarningsSvc, settings domain.LedgerSettings) *ledgerHandler {
	return &ledgerHandler{
		postingService:  posting,
		reversalService: reversal,
		earningsService: earnings,
		settings:        settings,
	}
}

// postManualDoctorEarning godoc
// @Summary Record a manual doctor earning
// @Description Posts money received for a doctor's service, split between hospital revenue and DOCTOR_PAYABLE.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   earning body dto.PostManualDoctorEarningRequest true "Earning details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} APIErrorResponse "Invalid amount, share or account"
// @Failure 401 {object} APIErrorResponse "Unauthorized"
// @Failure 404 {object} APIErrorResponse "Doctor not found"
// @Failure 503 {object} APIErrorResponse "Store unavailable, retryable"
// @Router /ledger/doctor-earnings [post]
// @Security BearerAuth
func (h *ledgerHandler) postManualDoctorEarning(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostManualDoctorEarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	journal, err := h.postingService.PostManualDoctorEarning(c.Request.Context(), req, h.settings, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post doctor earning")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// postOPDTokenEarning godoc
// @Summary Record the earning for an OPD token
// @Description Posts the earning for a token; doctor, department and patient are read from the token. One earning per token.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   earning body dto.PostOPDTokenEarningRequest true "Token earning"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} APIErrorResponse "Invalid request"
// @Failure 404 {object} APIErrorResponse "Token not found"
// @Failure 409 {object} APIErrorResponse "Token already posted"
// @Failure 503 {object} APIErrorResponse "Store unavailable, retryable"
// @Router /ledger/opd-token-earnings [post]
// @Security BearerAuth
func (h *ledgerHandler) postOPDTokenEarning(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostOPDTokenEarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	journal, err := h.postingService.PostOPDTokenEarning(c.Request.Context(), req, h.settings, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post OPD token earning")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// createDoctorPayout godoc
// @Summary Pay a doctor
// @Description Debits DOCTOR_PAYABLE and credits CASH or BANK. Paying more than the balance is allowed.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   payout body dto.PostDoctorPayoutRequest true "Payout details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} APIErrorResponse "Invalid amount or method"
// @Failure 404 {object} APIErrorResponse "Doctor not found"
// @Failure 503 {object} APIErrorResponse "Store unavailable, retryable"
// @Router /ledger/doctor-payouts [post]
// @Security BearerAuth
func (h *ledgerHandler) createDoctorPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostDoctorPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	journal, err := h.postingService.CreateDoctorPayout(c.Request.Context(), req, h.settings, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create doctor payout")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a journal
// @Description Appends a journal with every line's debit and credit swapped. A journal can be reversed once.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   body body dto.ReverseJournalRequest false "Optional memo"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} APIErrorResponse "Journal not found"
// @Failure 409 {object} APIErrorResponse "Already reversed, or is itself a reversal"
// @Failure 503 {object} APIErrorResponse "Store unavailable, retryable"
// @Router /ledger/journals/{journalID}/reverse [post]
// @Security BearerAuth
func (h *ledgerHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.ReverseJournalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err)
			return
		}
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	reversal, err := h.reversalService.ReverseJournalByID(c.Request.Context(), journalID, req.Memo, h.settings, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to reverse journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves a journal with its lines and the id of its reversal, if any.
// @Tags ledger
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} APIErrorResponse "Journal not found"
// @Router /ledger/journals/{journalID} [get]
// @Security BearerAuth
func (h *ledgerHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.earningsService.GetJournal(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, journal)
}

// listDoctorEarnings godoc
// @Summary List doctor earnings
// @Description Non-reversed earnings credited to DOCTOR_PAYABLE, most recent first.
// @Tags ledger
// @Produce  json
// @Param   doctorId query string false "Doctor ID"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListDoctorEarningsResponse
// @Failure 400 {object} APIErrorResponse "Invalid date"
// @Router /ledger/doctor-earnings [get]
// @Security BearerAuth
func (h *ledgerHandler) listDoctorEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.EarningsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	earnings, err := h.earningsService.ListDoctorEarnings(c.Request.Context(), query.ToFilter())
	if err != nil {
		respondError(c, logger, err, "Failed to list doctor earnings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDoctorEarningsResponse(earnings))
}

// getDoctorBalance godoc
// @Summary Get a doctor's payable balance
// @Description Credits minus debits on DOCTOR_PAYABLE for the doctor. Negative means overpaid.
// @Tags ledger
// @Produce  json
// @Param   doctorID path string true "Doctor ID"
// @Success 200 {object} domain.DoctorBalance
// @Failure 503 {object} APIErrorResponse "Store unavailable, retryable"
// @Router /ledger/doctors/{doctorID}/balance [get]
// @Security BearerAuth
func (h *ledgerHandler) getDoctorBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	doctorID := c.Param("doctorID")

	balance, err := h.earningsService.GetDoctorBalance(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, logger.With(slog.String("doctor_id", doctorID)), err, "Failed to compute doctor balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// getDoctorAccruals godoc
// @Summary Get a doctor's accruals for a period
// @Description Sums DOCTOR_PAYABLE credits and debits in [from, to] with a suggested payout.
// @Tags ledger
// @Produce  json
// @Param   doctorID path string true "Doctor ID"
// @Param   from query string true "First date (YYYY-MM-DD)"
// @Param   to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} domain.DoctorAccruals
// @Failure 400 {object} APIErrorResponse "Invalid range"
// @Router /ledger/doctors/{doctorID}/accruals [get]
// @Security BearerAuth
func (h *ledgerHandler) getDoctorAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	doctorID := c.Param("doctorID")

	var query dto.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	accruals, err := h.earningsService.GetDoctorAccruals(c.Request.Context(), doctorID, query.From, query.To)
	if err != nil {
		respondError(c, logger.With(slog.String("doctor_id", doctorID)), err, "Failed to compute doctor accruals")
		return
	}
	c.JSON(http.StatusOK, accruals)
}

// listDoctorPayouts godoc
// @Summary List a doctor's payouts
// @Description Payout journals for the doctor, newest first, with token-based pagination.
// @Tags ledger
// @Produce  json
// @Param   doctorID path string true "Doctor ID"
// @Param   limit query int false "Page size (1-200, default 20)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDoctorPayoutsResponse
// @Failure 400 {object} APIErrorResponse "Invalid limit or token"
// @Router /ledger/doctors/{doctorID}/payouts [get]
// @Security BearerAuth
func (h *ledgerHandler) listDoctorPayouts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	doctorID := c.Param("doctorID")

	var params dto.ListDoctorPayoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	payouts, err := h.earningsService.ListDoctorPayouts(c.Request.Context(), doctorID, params)
	if err != nil {
		respondError(c, logger.With(slog.String("doctor_id", doctorID)), err, "Failed to list doctor payouts")
		return
	}
	c.JSON(http.StatusOK, payouts)
}

// requireUser returns the authenticated user or writes 401.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, APIErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// RegisterLedgerRoutes registers the ledger routes on an authenticated group.
func RegisterLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, settings domain.LedgerSettings) {
	registerValidators()

	h := newLedgerHandler(services.Posting, services.Reversal, services.Earnings, settings)
	r := newReportsHandler(services.Rollup, settings)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/doctor-earnings", h.postManualDoctorEarning)
		ledger.GET("/doctor-earnings", h.listDoctorEarnings)
		ledger.POST("/opd-token-earnings", h.postOPDTokenEarning)
		ledger.POST("/doctor-payouts", h.createDoctorPayout)

		ledger.GET("/journals/:journalID", h.getJournal)
		ledger.POST("/journals/:journalID/reverse", h.reverseJournal)

		ledger.GET("/doctors/:doctorID/balance", h.getDoctorBalance)
		ledger.GET("/doctors/:doctorID/accruals", h.getDoctorAccruals)
		ledger.GET("/doctors/:doctorID/payouts", h.listDoctorPayouts)

		ledger.GET("/reports/daily", r.ledgerDaily)
		ledger.GET("/reports/weekly", r.ledgerWeekly)
	}
}
