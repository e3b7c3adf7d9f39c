package advisor

import (
	"fmt"
	"time"

	"MarketAdvisor/internal/calculator"
)

// ErrInvalidDate is returned for a tick window date that is not YYYY-MM-DD.
var ErrInvalidDate = fmt.Errorf("%w: invalid date", calculator.ErrInvalidInput)

const (
	WindowDay   = "day"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// Window resolves a tick window to an inclusive [from, to] range in UTC.
// Unknown windows mean day. date is optional and must be YYYY-MM-DD.
func Window(window, date string, now time.Time) (from, to time.Time, err error) {
	now = now.UTC()

	if date == "" {
		to = now
		switch window {
		case WindowWeek:
			from = now.AddDate(0, 0, -6)
		case WindowMonth:
			from = now.AddDate(0, 0, -29)
		default:
			from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
		return from, to, nil
	}

	from, err = time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: want YYYY-MM-DD, got %q", ErrInvalidDate, date)
	}
	switch window {
	case WindowWeek:
		to = from.AddDate(0, 0, 6)
	case WindowMonth:
		to = from.AddDate(0, 0, 29)
	default:
		to = from.Add(24*time.Hour - time.Millisecond)
	}
	return from, to, nil
}
