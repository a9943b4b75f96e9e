package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// LeadHandler handles HTTP requests for the sales pipeline.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// List handles GET /api/leads.
//
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"  minimum(1)
// @Param        limit       query     int     false  "Page size"    minimum(1) maximum(100)
// @Param        stage       query     string  false  "Stage filter" Enums(lead, qualified, proposal, closed)
// @Param        customerId  query     string  false  "Customer id"
// @Param        assignedTo  query     string  false  "Assigned user id"
// @Success      200         {object}  Response{data=leadListResponse}
// @Failure      400         {object}  ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	var q leadListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), toLeadFilter(q))
	if err != nil {
		return err
	}
	return ok(c, leadListResponse{Leads: res.Items, Pagination: res.Pagination})
}

// Get handles GET /api/leads/:id.
//
// @Summary      Get a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  Response{data=leadResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	lead, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, leadResponse{Lead: lead})
}

// Create handles POST /api/leads.
//
// @Summary      Create a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      leadRequest  true  "Lead"
// @Success      201   {object}  Response{data=leadResponse}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req leadRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	lead, err := h.service.Create(c.Request().Context(), p, toLeadInput(req))
	if err != nil {
		return err
	}
	return created(c, leadResponse{Lead: lead}, "Lead created successfully")
}

// Update handles PUT /api/leads/:id.
//
// @Summary      Replace a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Lead id"
// @Param        body  body      leadRequest  true  "Lead"
// @Success      200   {object}  Response{data=leadResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req leadRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	lead, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toLeadInput(req))
	if err != nil {
		return err
	}
	return okMessage(c, leadResponse{Lead: lead}, "Lead updated successfully")
}

// UpdateStage handles PUT /api/leads/:id/stage.
//
// @Summary      Move a lead to another stage
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Lead id"
// @Param        body  body      stageRequest  true  "Target stage"
// @Success      200   {object}  Response{data=stageChangeResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/leads/{id}/stage [put]
func (h *LeadHandler) UpdateStage(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req stageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	change, err := h.service.UpdateStage(c.Request().Context(), p, c.Param("id"), domain.LeadStage(req.Stage))
	if err != nil {
		return err
	}
	return okMessage(c, stageChangeResponse{
		Lead:     change.Lead,
		OldStage: change.OldStage,
		NewStage: change.NewStage,
	}, "Lead stage updated successfully")
}

// Delete handles DELETE /api/leads/:id.
//
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Lead deleted successfully"})
}
