package handler

import (
	"time"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=128"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// --- Listing ---

// PageQuery holds the pagination parameters shared by every list endpoint.
// It is exported so the query binder can reach the embedded fields.
type PageQuery struct {
	Page  int `query:"page"  validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (q PageQuery) toPageRequest() domain.PageRequest {
	return domain.PageRequest{Page: q.Page, Limit: q.Limit}
}

// --- Users ---

type userListQuery struct {
	PageQuery
	Role   string `query:"role"   validate:"omitempty,oneof=admin user"`
	Search string `query:"search" validate:"max=255"`
}

type updateUserRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role"  validate:"required,oneof=admin user"`
}

type userListResponse struct {
	Users      []*domain.User    `json:"users"`
	Pagination domain.Pagination `json:"pagination"`
}

// --- Customers ---

type customerListQuery struct {
	PageQuery
	Search string `query:"search" validate:"max=255"`
	Tags   string `query:"tags"`
}

type customerRequest struct {
	Name    string   `json:"name"    validate:"required,min=1,max=100"`
	Email   string   `json:"email"   validate:"omitempty,email,max=255"`
	Phone   string   `json:"phone"   validate:"max=30"`
	Company string   `json:"company" validate:"max=100"`
	Tags    []string `json:"tags"    validate:"omitempty,dive,min=1,max=50"`
	Notes   string   `json:"notes"   validate:"max=5000"`
}

type customerResponse struct {
	Customer *domain.Customer `json:"customer"`
}

type customerListResponse struct {
	Customers  []*domain.Customer `json:"customers"`
	Pagination domain.Pagination  `json:"pagination"`
}

// --- Leads ---

type leadListQuery struct {
	PageQuery
	Stage      string `query:"stage"      validate:"omitempty,oneof=lead qualified proposal closed"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid"`
	AssignedTo string `query:"assignedTo" validate:"omitempty,uuid"`
}

type leadRequest struct {
	Title       string  `json:"title"       validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Value       float64 `json:"value"       validate:"gte=0,lte=9999999999.99"`
	Stage       string  `json:"stage"       validate:"omitempty,oneof=lead qualified proposal closed"`
	CustomerID  string  `json:"customerId"  validate:"required,uuid"`
	AssignedTo  *string `json:"assignedTo"  validate:"omitempty,uuid"`
}

type stageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=lead qualified proposal closed"`
}

type leadResponse struct {
	Lead *domain.Lead `json:"lead"`
}

type leadListResponse struct {
	Leads      []*domain.Lead    `json:"leads"`
	Pagination domain.Pagination `json:"pagination"`
}

type stageChangeResponse struct {
	Lead     *domain.Lead     `json:"lead"`
	OldStage domain.LeadStage `json:"oldStage"`
	NewStage domain.LeadStage `json:"newStage"`
}

// --- Tasks ---

type taskListQuery struct {
	PageQuery
	Status     string `query:"status"     validate:"omitempty,oneof=pending in-progress completed"`
	Priority   string `query:"priority"   validate:"omitempty,oneof=low medium high"`
	AssignedTo string `query:"assignedTo" validate:"omitempty,uuid"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid"`
}

type taskRequest struct {
	Title       string       `json:"title"       validate:"required,min=1,max=200"`
	Description string       `json:"description" validate:"max=5000"`
	Status      string       `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string       `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *domain.Date `json:"dueDate"     swaggertype:"string" format:"date" example:"2026-03-31"`
	CustomerID  *string      `json:"customerId"  validate:"omitempty,uuid"`
	AssignedTo  *string      `json:"assignedTo"  validate:"omitempty,uuid"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

type taskResponse struct {
	Task *domain.Task `json:"task"`
}

type taskListResponse struct {
	Tasks      []*domain.Task    `json:"tasks"`
	Pagination domain.Pagination `json:"pagination"`
}

type statusChangeResponse struct {
	Task      *domain.Task      `json:"task"`
	OldStatus domain.TaskStatus `json:"oldStatus"`
	NewStatus domain.TaskStatus `json:"newStatus"`
}

// --- Interactions ---

type interactionListQuery struct {
	PageQuery
	CustomerID string `query:"customerId" validate:"omitempty,uuid"`
	Type       string `query:"type"       validate:"omitempty,oneof=call email meeting note"`
	UserID     string `query:"userId"     validate:"omitempty,uuid"`
}

type interactionRequest struct {
	Type       string     `json:"type"       validate:"required,oneof=call email meeting note"`
	Notes      string     `json:"notes"      validate:"max=5000"`
	Timestamp  *time.Time `json:"timestamp"`
	CustomerID string     `json:"customerId" validate:"required,uuid"`
}

type interactionResponse struct {
	Interaction *domain.Interaction `json:"interaction"`
}

type interactionListResponse struct {
	Interactions []*domain.Interaction `json:"interactions"`
	Pagination   domain.Pagination     `json:"pagination"`
}

// --- Reports and activity ---

type conversionQuery struct {
	Period string `query:"period" validate:"omitempty,oneof=week month quarter year"`
}

type activityListQuery struct {
	PageQuery
	EntityType string `query:"entityType" validate:"omitempty,oneof=user customer lead task interaction"`
	EntityID   string `query:"entityId"   validate:"max=64"`
	Action     string `query:"action"     validate:"omitempty,oneof=created updated deleted stage_changed status_changed"`
}

type activityListResponse struct {
	Activities []*domain.Activity `json:"activities"`
	Pagination domain.Pagination  `json:"pagination"`
}
