package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for follow-up tasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks. Results come ordered by due date, soonest
// first, then by priority.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"      minimum(1)
// @Param        limit       query     int     false  "Page size"        minimum(1) maximum(100)
// @Param        status      query     string  false  "Status filter"    Enums(pending, in-progress, completed)
// @Param        priority    query     string  false  "Priority filter"  Enums(low, medium, high)
// @Param        assignedTo  query     string  false  "Assigned user id"
// @Param        customerId  query     string  false  "Customer id"
// @Success      200         {object}  Response{data=taskListResponse}
// @Failure      400         {object}  ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	var q taskListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), toTaskFilter(q))
	if err != nil {
		return err
	}
	return ok(c, taskListResponse{Tasks: res.Items, Pagination: res.Pagination})
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  Response{data=taskResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, taskResponse{Task: task})
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task"
// @Success      201   {object}  Response{data=taskResponse}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), p, toTaskInput(req))
	if err != nil {
		return err
	}
	return created(c, taskResponse{Task: task}, "Task created successfully")
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Replace a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Task"
// @Success      200   {object}  Response{data=taskResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toTaskInput(req))
	if err != nil {
		return err
	}
	return okMessage(c, taskResponse{Task: task}, "Task updated successfully")
}

// UpdateStatus handles PUT /api/tasks/:id/status.
//
// @Summary      Change the status of a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Task id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  Response{data=statusChangeResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	change, err := h.service.UpdateStatus(c.Request().Context(), p, c.Param("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return okMessage(c, statusChangeResponse{
		Task:      change.Task,
		OldStatus: change.OldStatus,
		NewStatus: change.NewStatus,
	}, "Task status updated successfully")
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Task deleted successfully"})
}
