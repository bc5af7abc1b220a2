package crontz

import (
	"fmt"
	"strconv"
	"strings"
)

const expressionPrefix = "cron("

type valueKind uint8

const (
	kindNumber valueKind = iota
	kindLastDayOfMonth
	kindRaw
)

// Value is a single element of a list field: a plain number, the
// last-day-of-month sentinel, or any other token carried through verbatim.
type Value struct {
	kind valueKind
	n    int
	raw  string
}

// LastDayOfMonth is the `L` token of the day-of-month field.
var LastDayOfMonth = Value{kind: kindLastDayOfMonth}

func Number(n int) Value {
	return Value{kind: kindNumber, n: n}
}

func Raw(token string) Value {
	return Value{kind: kindRaw, raw: token}
}

// Int reports the numeric value, if any.
func (v Value) Int() (int, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.n, true
}

func (v Value) IsLastDayOfMonth() bool {
	return v.kind == kindLastDayOfMonth
}

func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.Itoa(v.n)
	case kindLastDayOfMonth:
		return "L"
	default:
		return v.raw
	}
}

// Fields is a parsed six-field AWS style cron expression. The year field is
// not modeled and is always written back as `*`.
type Fields struct {
	Minute     int
	Hour       int
	DayOfMonth []Value
	Month      []Value
	DayOfWeek  []Value
}

// Parse reads `cron(<minute> <hour> <dom> <month> <dow> <year>)`.
func Parse(text string) (Fields, error) {
	tokens := strings.Fields(text)
	if len(tokens) != 6 {
		return Fields{}, fmt.Errorf("%w: expected 6 fields, got %d", ErrMalformedExpression, len(tokens))
	}
	if !strings.HasPrefix(tokens[0], expressionPrefix) {
		return Fields{}, fmt.Errorf("%w: missing %q prefix", ErrMalformedExpression, expressionPrefix)
	}
	minute, err := parseBounded("minute", strings.TrimPrefix(tokens[0], expressionPrefix), 0, 59)
	if err != nil {
		return Fields{}, err
	}
	hour, err := parseBounded("hour", tokens[1], 0, 23)
	if err != nil {
		return Fields{}, err
	}
	dayOfMonth, err := parseList("day-of-month", tokens[2], true)
	if err != nil {
		return Fields{}, err
	}
	month, err := parseList("month", tokens[3], false)
	if err != nil {
		return Fields{}, err
	}
	dayOfWeek, err := parseList("day-of-week", tokens[4], false)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		Minute:     minute,
		Hour:       hour,
		DayOfMonth: dayOfMonth,
		Month:      month,
		DayOfWeek:  dayOfWeek,
	}, nil
}

// Format renders fields back into the `cron(...)` form.
func Format(fields Fields) string {
	return fields.String()
}

func (f Fields) String() string {
	var b strings.Builder
	b.WriteString(expressionPrefix)
	b.WriteString(strconv.Itoa(f.Minute))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(f.Hour))
	b.WriteByte(' ')
	b.WriteString(joinValues(f.DayOfMonth))
	b.WriteByte(' ')
	b.WriteString(joinValues(f.Month))
	b.WriteByte(' ')
	b.WriteString(joinValues(f.DayOfWeek))
	b.WriteString(" *)")
	return b.String()
}

// HasOnlyLastDayOfMonth reports whether the day-of-month field is exactly `L`.
func (f Fields) HasOnlyLastDayOfMonth() bool {
	return len(f.DayOfMonth) == 1 && f.DayOfMonth[0].IsLastDayOfMonth()
}

func parseBounded(name, token string, min, max int) (int, error) {
	if !isDigits(token) {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedExpression, name, token)
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedExpression, name, token)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%w: %s %d out of range %d-%d", ErrMalformedExpression, name, value, min, max)
	}
	return value, nil
}

func parseList(name, token string, allowLast bool) ([]Value, error) {
	parts := strings.Split(token, ",")
	values := make([]Value, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty element in %s list %q", ErrMalformedExpression, name, token)
		}
		values = append(values, parseValue(part, allowLast))
	}
	return values, nil
}

func parseValue(token string, allowLast bool) Value {
	if allowLast && token == "L" {
		return LastDayOfMonth
	}
	if isCanonicalNumber(token) {
		n, err := strconv.Atoi(token)
		if err == nil {
			return Number(n)
		}
	}
	return Raw(token)
}

// isCanonicalNumber accepts "0" or digits without a leading zero.
func isCanonicalNumber(token string) bool {
	if !isDigits(token) {
		return false
	}
	return token[0] != '0' || token == "0"
}

func isDigits(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}

func joinValues(values []Value) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = value.String()
	}
	return strings.Join(parts, ",")
}
