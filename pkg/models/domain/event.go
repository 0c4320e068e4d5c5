package domain

import "time"

type EventName string

const (
	EventStart     EventName = "Start"
	EventStop      EventName = "Stop"
	EventTerminate EventName = "Terminate"
)

// AuditEvent is a single lifecycle event from the audit log, tied to one
// resource. The engine only reads and sorts them.
type AuditEvent struct {
	Name      EventName
	Timestamp time.Time
}

// Sample is one timestamped value from a time series (grid carbon intensity
// in g/kWh or CPU utilization in percent).
type Sample struct {
	Timestamp time.Time
	Value     float64
}
