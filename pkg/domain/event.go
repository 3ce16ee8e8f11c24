package domain

import "time"

// EventStatus is the closed set of lifecycle states an event can occupy.
type EventStatus string

const (
	StatusReceived   EventStatus = "received"
	StatusCreated    EventStatus = "created"
	StatusValidated  EventStatus = "validated"
	StatusProcessing EventStatus = "processing"
	StatusApproved   EventStatus = "approved"
	StatusRejected   EventStatus = "rejected"
	StatusFailed     EventStatus = "failed"
)

// statusTransitions is the single source of truth for allowed lifecycle
// moves. BaseEvent.TransitionTo and the standalone validator both
// consult this map so the two never drift apart.
var statusTransitions = map[EventStatus]map[EventStatus]bool{
	StatusReceived:   {StatusValidated: true, StatusRejected: true},
	StatusCreated:    {StatusValidated: true, StatusRejected: true},
	StatusValidated:  {StatusProcessing: true},
	StatusProcessing: {StatusApproved: true, StatusRejected: true, StatusFailed: true},
	StatusApproved:   {},
	StatusRejected:   {},
	StatusFailed:     {},
}

// IsValidStatusTransition reports whether moving from `from` to `to` is
// permitted by the status-transition matrix.
func IsValidStatusTransition(from, to EventStatus) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// BaseEvent is the common envelope shared by every event kind.
type BaseEvent struct {
	EventID   string
	TenantID  string
	Status    EventStatus
	CreatedAt time.Time
	Metadata  map[string]any
}

// TransitionTo moves the event to `to` if the move is allowed by the
// status-transition matrix. On failure the event's status is left
// unchanged and an *InvalidStatusTransitionError is returned.
func (e *BaseEvent) TransitionTo(to EventStatus) error {
	if !IsValidStatusTransition(e.Status, to) {
		return NewInvalidStatusTransitionError(string(e.Status), string(to))
	}
	e.Status = to
	return nil
}

// RiskEvent extends BaseEvent with the risk-workflow-specific fields.
type RiskEvent struct {
	BaseEvent
	RiskScore *float64
	Category  *string
}

// ComplianceEvent extends BaseEvent with the compliance-workflow-specific fields.
type ComplianceEvent struct {
	BaseEvent
	RegulationRef  *string
	ComplianceType *string
}

// RiskEventCreateRequest is the input to create a new RiskEvent.
type RiskEventCreateRequest struct {
	TenantID  string
	RiskScore *float64
	Category  *string
	Version   string
}

// ComplianceEventCreateRequest is the input to create a new ComplianceEvent.
type ComplianceEventCreateRequest struct {
	TenantID       string
	RegulationRef  *string
	ComplianceType *string
	Version        string
}
