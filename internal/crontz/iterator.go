package crontz

import (
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Iterator yields the first match strictly after the given instant, or the
// zero time once no further match exists. cron.Schedule satisfies it.
type Iterator interface {
	Next(time.Time) time.Time
}

// ScheduleParser turns a five-field standard cron spec into an Iterator.
type ScheduleParser func(spec string) (Iterator, error)

var standardParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// ParseSchedule is the default ScheduleParser.
func ParseSchedule(spec string) (Iterator, error) {
	schedule, err := standardParser.Parse(spec)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// standardSpec renders fields as a five-field spec for ParseSchedule.
// dayOfMonth replaces the day-of-month list when non-empty.
func standardSpec(fields Fields, dayOfMonth string) string {
	if dayOfMonth == "" {
		dayOfMonth = joinValues(fields.DayOfMonth)
	}
	weekdays := make([]string, len(fields.DayOfWeek))
	for i, value := range fields.DayOfWeek {
		weekdays[i] = standardWeekday(value)
	}
	return strings.Join([]string{
		strconv.Itoa(fields.Minute),
		strconv.Itoa(fields.Hour),
		dayOfMonth,
		joinValues(fields.Month),
		strings.Join(weekdays, ","),
	}, " ")
}

// standardWeekday passes weekday numbers through with standard cron meaning
// (0 and 7 are Sunday). The parser only accepts 0-6, so a lone 7 becomes 0 and
// a range ending at 7 is split into the range up to 6 plus 0.
func standardWeekday(value Value) string {
	if n, ok := value.Int(); ok {
		if n == 7 {
			return "0"
		}
		return strconv.Itoa(n)
	}
	token := value.String()
	if strings.Contains(token, "/") {
		return token
	}
	start, end, isRange := strings.Cut(token, "-")
	if !isRange || end != "7" {
		return token
	}
	if start == "7" {
		return "0"
	}
	return start + "-6,0"
}
