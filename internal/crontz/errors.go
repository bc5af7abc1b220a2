package crontz

import "errors"

var (
	ErrMalformedExpression = errors.New("malformed cron expression")
	ErrUnknownTimezone     = errors.New("unknown timezone")
	ErrNoNextOccurrence    = errors.New("no next occurrence")
)
