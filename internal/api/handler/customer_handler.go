package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /api/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number"  minimum(1)
// @Param        limit   query     int     false  "Page size"    minimum(1) maximum(100)
// @Param        search  query     string  false  "Substring of name, email or company"
// @Param        tags    query     string  false  "Comma separated tags, any match"
// @Success      200     {object}  Response{data=customerListResponse}
// @Failure      400     {object}  ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	var q customerListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), toCustomerFilter(q))
	if err != nil {
		return err
	}
	return ok(c, customerListResponse{Customers: res.Items, Pagination: res.Pagination})
}

// Get handles GET /api/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  Response{data=customerResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, customerResponse{Customer: customer})
}

// Create handles POST /api/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "Customer"
// @Success      201   {object}  Response{data=customerResponse}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	customer, err := h.service.Create(c.Request().Context(), p, toCustomerInput(req))
	if err != nil {
		return err
	}
	return created(c, customerResponse{Customer: customer}, "Customer created successfully")
}

// Update handles PUT /api/customers/:id.
//
// @Summary      Replace a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer"
// @Success      200   {object}  Response{data=customerResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	customer, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toCustomerInput(req))
	if err != nil {
		return err
	}
	return okMessage(c, customerResponse{Customer: customer}, "Customer updated successfully")
}

// Delete handles DELETE /api/customers/:id. Leads, tasks and interactions
// of the customer go with it.
//
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Customer deleted successfully"})
}
