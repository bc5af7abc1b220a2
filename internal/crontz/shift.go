package crontz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// The day shift of a conversion is read off a single probe date. Offsets of
// at most ~14h move it by one calendar day at most. DST transitions after
// January are not reflected in the shift direction.
const (
	probeYear  = 2000
	probeMonth = time.January
	probeDay   = 15
)

type Shift int

const (
	ShiftNone Shift = iota
	ShiftForward
	ShiftBackward
)

func (s Shift) String() string {
	switch s {
	case ShiftForward:
		return "forward"
	case ShiftBackward:
		return "backward"
	default:
		return "none"
	}
}

// Conversion is the result of moving an expression between UTC and a zone.
type Conversion struct {
	Fields Fields
	Shift  Shift
}

func (c Conversion) Expression() string {
	return c.Fields.String()
}

// ToUTC reads the expression as wall-clock time in timezone and rewrites it in UTC.
func ToUTC(text, timezone string) (string, error) {
	conversion, err := ConvertToUTC(text, timezone)
	if err != nil {
		return "", err
	}
	return conversion.Expression(), nil
}

// ToTimezone reads the expression as UTC and rewrites it as wall-clock time in timezone.
func ToTimezone(text, timezone string) (string, error) {
	conversion, err := ConvertToTimezone(text, timezone)
	if err != nil {
		return "", err
	}
	return conversion.Expression(), nil
}

func ConvertToUTC(text, timezone string) (Conversion, error) {
	fields, err := Parse(text)
	if err != nil {
		return Conversion{}, err
	}
	location, err := LoadLocation(timezone)
	if err != nil {
		return Conversion{}, err
	}
	probe := time.Date(probeYear, probeMonth, probeDay, fields.Hour, fields.Minute, 0, 0, location)
	return shiftFields(fields, probe.UTC()), nil
}

func ConvertToTimezone(text, timezone string) (Conversion, error) {
	fields, err := Parse(text)
	if err != nil {
		return Conversion{}, err
	}
	location, err := LoadLocation(timezone)
	if err != nil {
		return Conversion{}, err
	}
	probe := time.Date(probeYear, probeMonth, probeDay, fields.Hour, fields.Minute, 0, 0, time.UTC)
	return shiftFields(fields, probe.In(location)), nil
}

// LoadLocation resolves an IANA name. The empty name is UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownTimezone, timezone, err)
	}
	return location, nil
}

func shiftFields(fields Fields, converted time.Time) Conversion {
	out := Fields{
		Minute:     converted.Minute(),
		Hour:       converted.Hour(),
		DayOfMonth: fields.DayOfMonth,
		Month:      fields.Month,
		DayOfWeek:  fields.DayOfWeek,
	}
	shift := ShiftNone
	switch day := converted.Day(); {
	case day > probeDay:
		shift = ShiftForward
		out.DayOfMonth, out.Month, out.DayOfWeek = RollForward(fields.DayOfMonth, fields.Month, fields.DayOfWeek)
	case day < probeDay:
		shift = ShiftBackward
		out.DayOfMonth, out.Month, out.DayOfWeek = RollBackward(fields.DayOfMonth, fields.Month, fields.DayOfWeek)
	}
	return Conversion{Fields: out, Shift: shift}
}

// RollForward moves every list one day later. When any resulting day is 1
// the whole month list advances, not only the entries paired with it.
func RollForward(dayOfMonth, month, dayOfWeek []Value) ([]Value, []Value, []Value) {
	days := make([]Value, len(dayOfMonth))
	wrapped := false
	for i, value := range dayOfMonth {
		switch value.kind {
		case kindNumber:
			days[i] = Number(wrapAt(value.n+1, 32, 1))
		case kindLastDayOfMonth:
			days[i] = Number(1)
		default:
			days[i] = value
		}
		if n, ok := days[i].Int(); ok && n == 1 {
			wrapped = true
		}
	}

	months := append([]Value(nil), month...)
	if wrapped {
		months = mapNumbers(month, func(n int) int { return wrapAt(n+1, 13, 1) })
	}
	weekdays := mapNumbers(dayOfWeek, func(n int) int { return wrapAt(n+1, 8, 1) })
	return days, months, weekdays
}

// RollBackward moves every list one day earlier. A day that reaches 0
// becomes `L` and moves the whole month list back.
func RollBackward(dayOfMonth, month, dayOfWeek []Value) ([]Value, []Value, []Value) {
	days := make([]Value, len(dayOfMonth))
	rolledUnder := false
	for i, value := range dayOfMonth {
		if value.kind != kindNumber {
			days[i] = value
			continue
		}
		if value.n-1 == 0 {
			days[i] = LastDayOfMonth
			rolledUnder = true
			continue
		}
		days[i] = Number(value.n - 1)
	}

	months := append([]Value(nil), month...)
	if rolledUnder {
		months = mapNumbers(month, func(n int) int { return wrapAt(n-1, 0, 12) })
	}
	weekdays := mapNumbers(dayOfWeek, func(n int) int { return wrapAt(n-1, 0, 7) })
	return days, months, weekdays
}

func mapNumbers(values []Value, fn func(int) int) []Value {
	out := make([]Value, len(values))
	for i, value := range values {
		if value.kind == kindNumber {
			out[i] = Number(fn(value.n))
			continue
		}
		out[i] = value
	}
	return out
}

func wrapAt(n, overflow, replacement int) int {
	if n == overflow {
		return replacement
	}
	return n
}
