package handler

import (
	"net/http"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Revenue godoc
// @Summary  Revenue aggregated by day, week or month
// @Tags     reports
// @Produce  json
// @Param    period query string false "daily | weekly | monthly" default(daily)
// @Param    from   query string false "range start (RFC 3339 or YYYY-MM-DD)"
// @Param    to     query string false "range end"
// @Success  200 {object} dto.RevenueReportResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/reports/revenue [get]
func (h *ReportsHandler) Revenue(c *gin.Context) {
	resp, err := h.svc.Revenue(
		c.Request.Context(),
		c.Query("period"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Compare godoc
// @Summary  Compare revenue between two date ranges
// @Tags     reports
// @Produce  json
// @Param    current_from  query string true "current range start"
// @Param    current_to    query string true "current range end"
// @Param    previous_from query string true "previous range start"
// @Param    previous_to   query string true "previous range end"
// @Success  200 {object} dto.CompareReportResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/reports/compare [get]
func (h *ReportsHandler) Compare(c *gin.Context) {
	resp, err := h.svc.Compare(
		c.Request.Context(),
		c.Query("current_from"),
		c.Query("current_to"),
		c.Query("previous_from"),
		c.Query("previous_to"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
