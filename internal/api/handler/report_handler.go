package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// ReportHandler serves the read-only aggregates.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Dashboard handles GET /api/reports/dashboard.
//
// @Summary      Dashboard statistics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=domain.Dashboard}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	d, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, d)
}

// Conversion handles GET /api/reports/conversion.
//
// @Summary      Lead conversion by period
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "Bucket size, default month"  Enums(week, month, quarter, year)
// @Success      200     {object}  Response{data=domain.ConversionReport}
// @Failure      400     {object}  ErrorResponse
// @Router       /api/reports/conversion [get]
func (h *ReportHandler) Conversion(c echo.Context) error {
	var q conversionQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	r, err := h.service.Conversion(c.Request().Context(), domain.ReportPeriod(q.Period))
	if err != nil {
		return err
	}
	return ok(c, r)
}
