package events

import "time"

const LeaveStatusChangedTopic = "hr.leave.status.v1"

// LeaveStatusChangedEvent is queued through the outbox inside the same
// transaction that moves a leave request, so downstream consumers
// (notifications, calendars) never see a status the database does not have.
type LeaveStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
