package model

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day. It is stored as a SQL date and
// serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the date of y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day of t, keeping the calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD and the unambiguous layouts dateparse knows,
// such as "March 1, 2026" or RFC 3339 timestamps. Inputs without a day
// ("2026", "March 2026", Unix timestamps) and mm/dd vs dd/mm forms
// ("05/01/2026") are rejected.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if !hasDay(s) {
		return Date{}, fmt.Errorf("invalid date %q: expected year, month and day", s)
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// hasDay reports whether s carries three date parts: three digit groups, or
// two next to a month name.
func hasDay(s string) bool {
	groups, inDigits, letters := 0, false, false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if !inDigits {
				groups++
			}
			inDigits = true
			continue
		case unicode.IsLetter(r):
			letters = true
		}
		inDigits = false
	}
	return groups >= 3 || (groups == 2 && letters)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*d = Date{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner. Drivers hand dates back either as time.Time
// (pgx, go-sqlite3 on date columns) or as text.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into model.Date", value)
	}
}
