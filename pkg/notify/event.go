package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/platinummonkey/contentlint/pkg/reports"
)

// EventType represents the type of webhook event
type EventType string

const (
	// EventReportCreated fires for every persisted lint report
	EventReportCreated EventType = "report.created"
	// EventReportErrors fires when a lint report carries error-severity violations
	EventReportErrors EventType = "report.errors"
)

// Event is the payload posted to webhook endpoints
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Report    *reports.Report `json:"report"`
}

// NewEvent builds an event for a lint report
func NewEvent(eventType EventType, report *reports.Report) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Report:    report,
	}
}
