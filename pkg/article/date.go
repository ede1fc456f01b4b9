package article

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the JSON form of a Date: ISO 8601 without a zone.
const DateLayout = "2006-01-02T15:04:05"

// Date is a publication date. It carries no timezone in its JSON form.
type Date struct {
	time.Time
}

// MarshalJSON encodes the date as "YYYY-MM-DDTHH:MM:SS".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	d.Time = t
	return nil
}

// String returns the JSON form without quotes.
func (d Date) String() string {
	return d.Format(DateLayout)
}
