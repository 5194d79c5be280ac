package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a backend date-time. The backend sends zone-less local
// date-times ("2024-03-01T10:15:30.123"), RFC 3339 strings or null.
// Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses any of the accepted layouts. An empty string is the
// zero Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("models: unrecognised timestamp %q", s)
}

// UnmarshalJSON accepts null, a string in any accepted layout, or an
// array of [year, month, day, hour, minute, second, nanos].
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	if b[0] == '[' {
		return t.unmarshalParts(b)
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("models: timestamp must be a string, got %s", b)
	}
	parsed, err := ParseTimestamp(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Timestamp) unmarshalParts(b []byte) error {
	var parts []int
	if err := json.Unmarshal(b, &parts); err != nil || len(parts) < 3 || len(parts) > 7 {
		return fmt.Errorf("models: unrecognised timestamp %s", b)
	}
	var p [7]int
	copy(p[:], parts)
	t.Time = time.Date(p[0], time.Month(p[1]), p[2], p[3], p[4], p[5], p[6], time.UTC)
	return nil
}

// MarshalJSON writes the zone-less layout the backend expects, or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format("2006-01-02T15:04:05") + `"`), nil
}

// Date formats the timestamp for display, or "-" when unset.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// DateTime formats the timestamp with minutes for display, or "-" when unset.
func (t Timestamp) DateTime() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}
