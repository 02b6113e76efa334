package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Zone-less date-times and plain dates are read in the local time zone.
var timestampLayouts = []struct {
	layout string
	loc    *time.Location
}{
	{time.RFC3339Nano, time.UTC},
	{"2006-01-02T15:04:05.999999999", time.Local},
	{time.DateOnly, time.Local},
}

// ParseTimestamp reads a backend timestamp. An empty string is the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, l := range timestampLayouts {
		if t, err := time.ParseInLocation(l.layout, s, l.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (a *ReviewAssignment) UnmarshalJSON(b []byte) error {
	type plain ReviewAssignment
	var raw struct {
		plain
		DueAt      string  `json:"dueAt"`
		AcceptedAt *string `json:"acceptedAt"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	due, err := ParseTimestamp(raw.DueAt)
	if err != nil {
		return fmt.Errorf("dueAt: %w", err)
	}
	*a = ReviewAssignment(raw.plain)
	a.DueAt = due
	a.AcceptedAt = nil
	if raw.AcceptedAt != nil {
		at, err := ParseTimestamp(*raw.AcceptedAt)
		if err != nil {
			return fmt.Errorf("acceptedAt: %w", err)
		}
		if !at.IsZero() {
			a.AcceptedAt = &at
		}
	}
	return nil
}
