package types

import (
	"bytes"
	"time"
)

// recordLayout is the record store's timestamp format. RFC3339 is
// accepted on input so callers can supply standard Go timestamps.
const recordLayout = "2006-01-02 15:04:05.000Z"

// DateTime wraps time.Time so record timestamps survive the round trip
// through the store's non-RFC3339 wire format.
type DateTime struct {
	time.Time
}

// NewDateTime builds a DateTime from a standard time.Time.
func NewDateTime(t time.Time) DateTime { return DateTime{Time: t.UTC()} }

// MarshalJSON emits the record store layout, or "" for the zero value.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.UTC().Format(recordLayout) + `"`), nil
}

// UnmarshalJSON accepts the record store layout, RFC3339, plain dates
// and the empty string (zero value).
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range []string{recordLayout, time.RFC3339, "2006-01-02 15:04:05Z", "2006-01-02"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}
