package domain

import "time"

// LeadStage is the pipeline position of a lead.
type LeadStage string

const (
	StageLead      LeadStage = "lead"
	StageQualified LeadStage = "qualified"
	StageProposal  LeadStage = "proposal"
	StageClosed    LeadStage = "closed"
)

// Stages lists every stage in pipeline order.
var Stages = []LeadStage{StageLead, StageQualified, StageProposal, StageClosed}

// Valid reports whether s is a known stage.
func (s LeadStage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Lead is a sales opportunity owned by one customer.
type Lead struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Value        float64      `json:"value"`
	Stage        LeadStage    `json:"stage"`
	CustomerID   string       `json:"customerId"`
	AssignedTo   *string      `json:"assignedTo"`
	Customer     *CustomerRef `json:"customer,omitempty"`
	AssignedUser *UserRef     `json:"assignedUser,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
