package domain

import "time"

// Field limits for a Todo. A persisted todo satisfies all of them.
const (
	TitleMinLen       = 2
	TitleMaxLen       = 20
	DescriptionMinLen = 10
	DescriptionMaxLen = 200
	PriorityMin       = 1
	PriorityMax       = 4
)

// DateLayout is the wire and storage layout of TargetDate.
const DateLayout = "2006-01-02"

// Domain entity: the single record type of the service.
// Does not depend on Gin or Postgres.
type Todo struct {
	ID          int64
	Title       string
	Description string
	// TargetDate is a calendar date, stored as midnight UTC.
	TargetDate time.Time
	Priority   int
}

// Date truncates t to its calendar day (in t's own location) and returns it as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-MM-dd string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// IsFuture reports whether date lies strictly after the calendar day of now.
func IsFuture(date, now time.Time) bool {
	return Date(date).After(Date(now))
}
