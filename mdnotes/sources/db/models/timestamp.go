package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is the stored form of every note timestamp. It is fixed width
// and always UTC, so comparing the TEXT columns lexically orders them in time.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// Timestamp round-trips through the database as TimestampLayout text.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *Timestamp) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		t.Time = v.UTC()
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("timestamp: unsupported source %T", src)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp accepts TimestampLayout and any zoned RFC 3339 value.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(parsed), nil
		}
	}
	return Timestamp{}, fmt.Errorf("timestamp: cannot parse %q", s)
}

// ParseLegacyTimestamp reads the zone-less "YYYY-MM-DD HH:MM:SS[.ffffff]" text
// older databases hold, interpreting it in loc. Zoned values parse as usual.
func ParseLegacyTimestamp(s string, loc *time.Location) (Timestamp, error) {
	if ts, err := ParseTimestamp(s); err == nil {
		return ts, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05.999999999", "2006-01-02T15:04:05.999999999"} {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return NewTimestamp(parsed), nil
		}
	}
	return Timestamp{}, fmt.Errorf("timestamp: cannot parse legacy %q", s)
}

// IsCanonical reports whether s is already in TimestampLayout.
func IsCanonical(s string) bool {
	ts, err := time.Parse(TimestampLayout, s)
	return err == nil && NewTimestamp(ts).String() == s
}

func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Timestamp) UnmarshalText(b []byte) error {
	parsed, err := ParseTimestamp(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
