package domain

import "time"

// Entity names used in the activity log.
const (
	EntityUser        = "user"
	EntityCustomer    = "customer"
	EntityLead        = "lead"
	EntityTask        = "task"
	EntityInteraction = "interaction"
)

// Activity actions.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionStageChanged  = "stage_changed"
	ActionStatusChanged = "status_changed"
)

// Activity is one entry of the audit trail kept alongside the relational data.
type Activity struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	ActorID    string    `json:"actorId,omitempty"`
	At         time.Time `json:"at"`
}
