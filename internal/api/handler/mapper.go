package handler

import (
	"strings"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{Name: req.Name, Email: req.Email, Role: req.Role}
}

func toCustomerInput(req customerRequest) ports.CustomerInput {
	return ports.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Tags:    req.Tags,
		Notes:   req.Notes,
	}
}

func toLeadInput(req leadRequest) ports.LeadInput {
	return ports.LeadInput{
		Title:       req.Title,
		Description: req.Description,
		Value:       req.Value,
		Stage:       domain.LeadStage(req.Stage),
		CustomerID:  req.CustomerID,
		AssignedTo:  req.AssignedTo,
	}
}

func toTaskInput(req taskRequest) ports.TaskInput {
	return ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		CustomerID:  req.CustomerID,
		AssignedTo:  req.AssignedTo,
	}
}

func toInteractionInput(req interactionRequest) ports.InteractionInput {
	return ports.InteractionInput{
		Type:       domain.InteractionType(req.Type),
		Notes:      req.Notes,
		Timestamp:  req.Timestamp,
		CustomerID: req.CustomerID,
	}
}

// --- Query → Filter ---

func toUserFilter(q userListQuery) ports.UserFilter {
	return ports.UserFilter{Role: q.Role, Search: strings.TrimSpace(q.Search), PageRequest: q.toPageRequest()}
}

func toCustomerFilter(q customerListQuery) ports.CustomerFilter {
	return ports.CustomerFilter{
		Search:      strings.TrimSpace(q.Search),
		Tags:        splitTags(q.Tags),
		PageRequest: q.toPageRequest(),
	}
}

func toLeadFilter(q leadListQuery) ports.LeadFilter {
	return ports.LeadFilter{
		Stage:       q.Stage,
		CustomerID:  q.CustomerID,
		AssignedTo:  q.AssignedTo,
		PageRequest: q.toPageRequest(),
	}
}

func toTaskFilter(q taskListQuery) ports.TaskFilter {
	return ports.TaskFilter{
		Status:      q.Status,
		Priority:    q.Priority,
		AssignedTo:  q.AssignedTo,
		CustomerID:  q.CustomerID,
		PageRequest: q.toPageRequest(),
	}
}

func toInteractionFilter(q interactionListQuery) ports.InteractionFilter {
	return ports.InteractionFilter{
		CustomerID:  q.CustomerID,
		Type:        q.Type,
		UserID:      q.UserID,
		PageRequest: q.toPageRequest(),
	}
}

func toActivityFilter(q activityListQuery) ports.ActivityFilter {
	return ports.ActivityFilter{
		EntityType:  q.EntityType,
		EntityID:    q.EntityID,
		Action:      q.Action,
		PageRequest: q.toPageRequest(),
	}
}

// splitTags parses the comma separated tags parameter, dropping blanks.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
