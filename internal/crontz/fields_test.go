package crontz

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseReadsAllFields(t *testing.T) {
	fields, err := Parse("cron(5 3 1,15,L 1,6 2,3 *)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fields.Minute != 5 || fields.Hour != 3 {
		t.Fatalf("expected 03:05, got %02d:%02d", fields.Hour, fields.Minute)
	}
	wantDays := []Value{Number(1), Number(15), LastDayOfMonth}
	if !reflect.DeepEqual(fields.DayOfMonth, wantDays) {
		t.Fatalf("expected days %v, got %v", wantDays, fields.DayOfMonth)
	}
	if !reflect.DeepEqual(fields.Month, []Value{Number(1), Number(6)}) {
		t.Fatalf("unexpected months: %v", fields.Month)
	}
	if !reflect.DeepEqual(fields.DayOfWeek, []Value{Number(2), Number(3)}) {
		t.Fatalf("unexpected weekdays: %v", fields.DayOfWeek)
	}
}

func TestParseKeepsUnknownTokensRaw(t *testing.T) {
	fields, err := Parse("cron(0 18 05 * ? *)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fields.DayOfMonth[0] != Raw("05") {
		t.Fatalf("expected raw 05, got %#v", fields.DayOfMonth[0])
	}
	if _, ok := fields.Month[0].Int(); ok {
		t.Fatal("expected * month to stay non-numeric")
	}
	if fields.DayOfWeek[0].String() != "?" {
		t.Fatalf("expected ? weekday, got %s", fields.DayOfWeek[0])
	}
}

func TestParseOnlyTreatsLAsSentinelInDayOfMonth(t *testing.T) {
	fields, err := Parse("cron(0 0 L L L *)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !fields.DayOfMonth[0].IsLastDayOfMonth() {
		t.Fatal("expected day-of-month L to be the sentinel")
	}
	if fields.Month[0].IsLastDayOfMonth() || fields.DayOfWeek[0].IsLastDayOfMonth() {
		t.Fatal("expected L outside day-of-month to stay raw")
	}
}

func TestParseRejectsMalformedExpressions(t *testing.T) {
	cases := map[string]string{
		"too few fields":    "cron(0 18 L *)",
		"missing prefix":    "0 18 L * ? *",
		"minute not number": "cron(x 18 L * ? *)",
		"minute range":      "cron(60 18 L * ? *)",
		"hour range":        "cron(0 24 L * ? *)",
		"negative hour":     "cron(0 -1 L * ? *)",
		"signed minute":     "cron(+5 0 1 * ? *)",
		"signed hour":       "cron(5 +0 1 * ? *)",
		"too many fields":   "cron(0 18 L * ? * extra)",
		"empty element":     "cron(0 18 1,,2 * ? *)",
		"empty":             "",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, ErrMalformedExpression) {
				t.Fatalf("expected ErrMalformedExpression, got %v", err)
			}
		})
	}
}

func TestFormatRoundTripsParse(t *testing.T) {
	inputs := []string{
		"cron(30 9 15 1 ? *)",
		"cron(0 18 L * ? *)",
		"cron(5 3 1,15,L 1,6 2,3 *)",
		"cron(0 0 ? * MON-FRI *)",
	}
	for _, input := range inputs {
		fields, err := Parse(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got := Format(fields); got != input {
			t.Fatalf("expected %q, got %q", input, got)
		}
	}
}

func TestFormatAlwaysWritesWildcardYear(t *testing.T) {
	fields, err := Parse("cron(0 18 L * ? 2030)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := fields.String(); got != "cron(0 18 L * ? *)" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestHasOnlyLastDayOfMonth(t *testing.T) {
	only, _ := Parse("cron(0 18 L * ? *)")
	if !only.HasOnlyLastDayOfMonth() {
		t.Fatal("expected L to be detected")
	}
	mixed, _ := Parse("cron(0 18 1,L * ? *)")
	if mixed.HasOnlyLastDayOfMonth() {
		t.Fatal("expected mixed list not to count as L only")
	}
}
