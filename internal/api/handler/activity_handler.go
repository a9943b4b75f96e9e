package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/activity.
//
// @Summary      Audit trail
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"  minimum(1)
// @Param        limit       query     int     false  "Page size"    minimum(1) maximum(100)
// @Param        entityType  query     string  false  "Entity type"  Enums(user, customer, lead, task, interaction)
// @Param        entityId    query     string  false  "Entity id"
// @Param        action      query     string  false  "Action"       Enums(created, updated, deleted, stage_changed, status_changed)
// @Success      200         {object}  Response{data=activityListResponse}
// @Failure      400         {object}  ErrorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	var q activityListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), toActivityFilter(q))
	if err != nil {
		return err
	}
	return ok(c, activityListResponse{Activities: res.Items, Pagination: res.Pagination})
}
