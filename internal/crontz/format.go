package crontz

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/nleeper/goment"
)

// DefaultFormat is the output pattern used when none is given.
const DefaultFormat = "YYYY/MM/DD HH:mm"

// FormatTime renders t with a date pattern. Patterns containing `%` are
// strftime patterns; anything else uses moment tokens such as
// `YYYY/MM/DD HH:mm`, with `[...]` for literal text.
func FormatTime(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultFormat
	}
	if strings.Contains(pattern, "%") {
		return strftime.Format(pattern, t)
	}
	moment, err := goment.New(t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return moment.Format(pattern)
}
