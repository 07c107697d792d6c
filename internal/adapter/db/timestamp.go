package db

import (
	"fmt"
	"time"
)

var timeLayouts = []string{
	sqliteTimestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	dateLayout,
}

// nullTime scans timestamps and dates from every supported driver: pgx and
// mysql hand back time.Time, SQLite hands back TEXT.
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
}

func (n *nullTime) parse(value string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", value)
}

func (n nullTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	value := n.Time
	return &value
}
