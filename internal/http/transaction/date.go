package transaction

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date accepts either a calendar date ("2024-03-01") or an RFC 3339 timestamp.
type Date time.Time

func (d Date) Time() time.Time { return time.Time(d) }

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if s == "" {
		*d = Date{}
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = Date(t)

	return nil
}

// ParseDate reads "YYYY-MM-DD" as midnight UTC, or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	return t, nil
}
