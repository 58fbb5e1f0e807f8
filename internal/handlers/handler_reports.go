package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
	"github.com/SscSPs/hospital_ledger/internal/dto"
	"github.com/SscSPs/hospital_ledger/internal/middleware"
)

type reportsHandler struct {
	rollupService portssvc.RollupSvc
	settings      domain.LedgerSettings
}

func newReportsHandler(rollupService portssvc.RollupSvc, settings domain.LedgerSettings) *reportsHandler {
	return &reportsHandler{rollupService: rollupService, settings: settings}
}

// ledgerDaily godoc
// @Summary Daily ledger rollup
// @Description One row per calendar date in [from, to], including dates without activity.
// @Tags reports
// @Produce  json
// @Param   from query string true "First date (YYYY-MM-DD)"
// @Param   to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} domain.LedgerDailyReport
// @Failure 400 {object} APIErrorResponse "Invalid or too long range"
// @Failure 503 {object} APIErrorResponse "Store unavailable, retryable"
// @Router /ledger/reports/daily [get]
// @Security BearerAuth
func (h *reportsHandler) ledgerDaily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	report, err := h.rollupService.LedgerDaily(c.Request.Context(), query.From, query.To, h.settings)
	if err != nil {
		respondError(c, logger, err, "Failed to compute daily rollup")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ledgerWeekly godoc
// @Summary Weekly ledger rollup
// @Description Daily rows bucketed into ISO weeks starting Monday; partial weeks are clipped to the range.
// @Tags reports
// @Produce  json
// @Param   from query string true "First date (YYYY-MM-DD)"
// @Param   to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} domain.LedgerWeeklyReport
// @Failure 400 {object} APIErrorResponse "Invalid or too long range"
// @Router /ledger/reports/weekly [get]
// @Security BearerAuth
func (h *reportsHandler) ledgerWeekly(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	report, err := h.rollupService.LedgerWeekly(c.Request.Context(), query.From, query.To, h.settings)
	if err != nil {
		respondError(c, logger, err, "Failed to compute weekly rollup")
		return
	}
	c.JSON(http.StatusOK, report)
}
