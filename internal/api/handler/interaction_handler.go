package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/ports"
)

// InteractionHandler handles HTTP requests for the contact history.
type InteractionHandler struct {
	service ports.InteractionService
}

func NewInteractionHandler(service ports.InteractionService) *InteractionHandler {
	return &InteractionHandler{service: service}
}

// List handles GET /api/interactions.
//
// @Summary      List interactions
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"  minimum(1)
// @Param        limit       query     int     false  "Page size"    minimum(1) maximum(100)
// @Param        customerId  query     string  false  "Customer id"
// @Param        type        query     string  false  "Type filter"  Enums(call, email, meeting, note)
// @Param        userId      query     string  false  "Creator id"
// @Success      200         {object}  Response{data=interactionListResponse}
// @Failure      400         {object}  ErrorResponse
// @Router       /api/interactions [get]
func (h *InteractionHandler) List(c echo.Context) error {
	var q interactionListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), toInteractionFilter(q))
	if err != nil {
		return err
	}
	return ok(c, interactionListResponse{Interactions: res.Items, Pagination: res.Pagination})
}

// Get handles GET /api/interactions/:id.
//
// @Summary      Get an interaction
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Interaction id"
// @Success      200  {object}  Response{data=interactionResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/interactions/{id} [get]
func (h *InteractionHandler) Get(c echo.Context) error {
	interaction, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, interactionResponse{Interaction: interaction})
}

// Create handles POST /api/interactions. The caller is recorded as creator.
//
// @Summary      Log an interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      interactionRequest  true  "Interaction"
// @Success      201   {object}  Response{data=interactionResponse}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/interactions [post]
func (h *InteractionHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req interactionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	interaction, err := h.service.Create(c.Request().Context(), p, toInteractionInput(req))
	if err != nil {
		return err
	}
	return created(c, interactionResponse{Interaction: interaction}, "Interaction created successfully")
}

// Update handles PUT /api/interactions/:id.
//
// @Summary      Replace an interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Interaction id"
// @Param        body  body      interactionRequest  true  "Interaction"
// @Success      200   {object}  Response{data=interactionResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/interactions/{id} [put]
func (h *InteractionHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req interactionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	interaction, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toInteractionInput(req))
	if err != nil {
		return err
	}
	return okMessage(c, interactionResponse{Interaction: interaction}, "Interaction updated successfully")
}

// Delete handles DELETE /api/interactions/:id.
//
// @Summary      Delete an interaction
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Interaction id"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /api/interactions/{id} [delete]
func (h *InteractionHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Interaction deleted successfully"})
}
