package syncer

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client devices persist to loosely typed local stores, so any field can
// arrive as a string, a number, or nothing at all. Each wire value below is
// one closed variant set with a never-failing UnmarshalJSON; the sanitizers
// consume them through explicit per-field coercion.

type timeKind int

const (
	timeAbsent timeKind = iota
	timeEpochMillis
	timeString
)

// timeValue is a wire timestamp: epoch milliseconds, a date string, or absent.
type timeValue struct {
	kind timeKind
	ms   int64
	str  string
}

func (v *timeValue) UnmarshalJSON(b []byte) error {
	*v = timeValue{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if json.Unmarshal(b, &s) == nil && strings.TrimSpace(s) != "" {
			v.kind = timeString
			v.str = strings.TrimSpace(s)
		}
		return nil
	}
	if f, err := strconv.ParseFloat(string(b), 64); err == nil {
		v.kind = timeEpochMillis
		v.ms = int64(f)
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolve returns the carried timestamp, or fallback when the value is
// absent or unparseable.
func (v timeValue) resolve(fallback time.Time) time.Time {
	switch v.kind {
	case timeEpochMillis:
		return time.UnixMilli(v.ms)
	case timeString:
		if ms, err := strconv.ParseInt(v.str, 10, 64); err == nil {
			return time.UnixMilli(ms)
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, v.str, time.Local); err == nil {
				return t
			}
		}
	}
	return fallback
}

// clock reports the value as a "HH:MM:SS" time-of-day string.
func (v timeValue) clock() (string, bool) {
	if v.kind != timeString {
		return "", false
	}
	if _, err := time.Parse("15:04:05", v.str); err != nil {
		return "", false
	}
	return v.str, true
}

// combineClock places a "HH:MM:SS" clock on day's calendar date.
func combineClock(day time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04:05", clock)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location())
}

// stringValue passes strings through and renders bare scalars as their
// literal text.
type stringValue struct {
	s string
}

func (v *stringValue) UnmarshalJSON(b []byte) error {
	v.s = ""
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		_ = json.Unmarshal(b, &s)
		v.s = s
		return nil
	}
	if b[0] == '{' || b[0] == '[' {
		return nil
	}
	v.s = string(b)
	return nil
}

func (v stringValue) String() string {
	return v.s
}

// textValue is nullable text: empty and whitespace-only strings coerce to
// null, everything else passes through unchanged.
type textValue struct {
	s *string
}

func (v *textValue) UnmarshalJSON(b []byte) error {
	v.s = nil
	if len(b) == 0 || string(b) == "null" || b[0] != '"' {
		return nil
	}
	var s string
	if json.Unmarshal(b, &s) == nil && strings.TrimSpace(s) != "" {
		v.s = &s
	}
	return nil
}

func (v textValue) Ptr() *string {
	return v.s
}

// decimalValue is a fixed-point amount: numeric passthrough or parsed from
// string, zero on parse failure.
type decimalValue struct {
	d decimal.Decimal
}

func (v *decimalValue) UnmarshalJSON(b []byte) error {
	v.d = decimal.Zero
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
		v.d = d
	}
	return nil
}

func (v decimalValue) Decimal() decimal.Decimal {
	return v.d
}

// intValue is an integer count: fractional numerics truncate toward zero,
// strings are parsed, anything else is zero.
type intValue struct {
	n int64
}

func (v *intValue) UnmarshalJSON(b []byte) error {
	v.n = 0
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		v.n = n
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v.n = int64(f)
	}
	return nil
}

func (v intValue) Int64() int64 {
	return v.n
}

// boolValue maps boolean true, string "true", and numeric 1 to true;
// everything else is false.
type boolValue struct {
	b bool
}

func (v *boolValue) UnmarshalJSON(b []byte) error {
	v.b = false
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	if s == "true" || s == `"true"` {
		v.b = true
		return nil
	}
	if b[0] != '"' {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == 1 {
			v.b = true
		}
	}
	return nil
}

func (v boolValue) Bool() bool {
	return v.b
}
