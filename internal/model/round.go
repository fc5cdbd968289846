package model

import "time"

// Period is the usage window a round covers.
type Period struct {
	From time.Time
	To   time.Time
}

// Valid reports whether both ends of the period are set and ordered.
func (p Period) Valid() bool {
	return !p.From.IsZero() && !p.To.IsZero() && !p.To.Before(p.From)
}

// Round is an immutable, recorded snapshot of a usage period's equipment
// selection and its computed total fuel. TotalFuel is fixed at record time
// and never recomputed, even if the rate table changes later.
type Round struct {
	ID              string
	Name            string
	Period          Period
	Items           []LineItem
	TotalFuel       float64
	Timestamp       time.Time
	AIJustification string
}

// LogLevel classifies an activity log entry.
type LogLevel string

// Activity log levels.
const (
	LogInfo    LogLevel = "INFO"
	LogAI      LogLevel = "AI"
	LogSuccess LogLevel = "SUCCESS"
	LogError   LogLevel = "ERROR"
)

// LogEntry is one line of the persistent activity log.
type LogEntry struct {
	ID        string
	Timestamp time.Time
	Level     LogLevel
	Message   string
}
