package models

import "time"

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
	ActionExport Action = "EXPORT"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout, ActionExport:
		return true
	}
	return false
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// AuditLog is one immutable row of the audit trail. ActorID is nil for system
// initiated events and EntityID is nil when the action did not resolve to a row.
type AuditLog struct {
	ID          int64          `json:"id"`
	ActorID     *int64         `json:"userId"`
	EntityName  string         `json:"tableName"`
	EntityID    *int64         `json:"recordId"`
	Action      Action         `json:"action"`
	StateBefore map[string]any `json:"dataBefore"`
	StateAfter  map[string]any `json:"dataAfter"`
	Outcome     Outcome        `json:"status"`
	Note        string         `json:"description"`
	OccurredAt  time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// User describes the actor when listing; it is never written.
	User *Actor `json:"user,omitempty"`
}

// Actor is the public view of the account behind an audit entry.
type Actor struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
