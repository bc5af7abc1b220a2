package crontz

import (
	"fmt"
	"time"
)

const (
	// DefaultScanLimit bounds the candidates examined for an `L` schedule:
	// four days (28-31) in each of twelve months.
	DefaultScanLimit = 48

	lastDayOfMonthRange = "28-31"
)

// Resolver computes next fire times. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	parse     ScheduleParser
	now       func() time.Time
	scanLimit int
}

type ResolverOption func(*Resolver)

func WithScheduleParser(parse ScheduleParser) ResolverOption {
	return func(r *Resolver) {
		if parse != nil {
			r.parse = parse
		}
	}
}

func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func WithScanLimit(limit int) ResolverOption {
	return func(r *Resolver) {
		if limit > 0 {
			r.scanLimit = limit
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		parse:     ParseSchedule,
		now:       time.Now,
		scanLimit: DefaultScanLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Next formats the first fire time after now in timezone.
func (r *Resolver) Next(text, timezone, format string) (string, error) {
	return r.NextAfter(text, timezone, format, r.now())
}

func (r *Resolver) NextAfter(text, timezone, format string, after time.Time) (string, error) {
	next, err := r.NextTime(text, timezone, after)
	if err != nil {
		return "", err
	}
	return FormatTime(next, format), nil
}

// NextTime returns the first fire time after the anchor, expressed in
// timezone. The expression itself is always evaluated in UTC.
func (r *Resolver) NextTime(text, timezone string, after time.Time) (time.Time, error) {
	fields, err := Parse(text)
	if err != nil {
		return time.Time{}, err
	}
	location, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	lastDayOnly := fields.HasOnlyLastDayOfMonth()
	dayOfMonth := ""
	if lastDayOnly {
		dayOfMonth = lastDayOfMonthRange
	}
	spec := standardSpec(fields, dayOfMonth)
	iterator, err := r.parse(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: schedule %q: %w", ErrNoNextOccurrence, spec, err)
	}

	cursor := after.UTC()
	if !lastDayOnly {
		match := iterator.Next(cursor)
		if match.IsZero() {
			return time.Time{}, fmt.Errorf("%w: schedule %q is exhausted", ErrNoNextOccurrence, spec)
		}
		return match.In(location), nil
	}
	for i := 0; i < r.scanLimit; i++ {
		match := iterator.Next(cursor)
		if match.IsZero() {
			return time.Time{}, fmt.Errorf("%w: schedule %q is exhausted", ErrNoNextOccurrence, spec)
		}
		match = match.UTC()
		if match.Day() == lastDayOf(match) {
			return match.In(location), nil
		}
		cursor = match
	}
	return time.Time{}, fmt.Errorf("%w: no month end among %d candidates of %q", ErrNoNextOccurrence, r.scanLimit, spec)
}

func lastDayOf(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
