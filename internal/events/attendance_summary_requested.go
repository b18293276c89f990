package events

import "time"

const AttendanceSummaryRequestedTopic = "hr.attendance.summary.requested.v1"

// AttendanceSummaryRequestedEvent asks the consumer process to run the
// monthly summary batch for one period.
type AttendanceSummaryRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
