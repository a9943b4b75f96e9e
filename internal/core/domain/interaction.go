package domain

import "time"

// InteractionType classifies a contact history entry.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionNote    InteractionType = "note"
)

// Interaction is a log entry of contact with a customer.
type Interaction struct {
	ID         string          `json:"id"`
	Type       InteractionType `json:"type"`
	Notes      string          `json:"notes"`
	Timestamp  time.Time       `json:"timestamp"`
	CustomerID string          `json:"customerId"`
	UserID     *string         `json:"userId"`
	Customer   *CustomerRef    `json:"customer,omitempty"`
	User       *UserRef        `json:"user,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
