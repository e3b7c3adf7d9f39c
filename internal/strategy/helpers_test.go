package strategy

import "time"

func time24h(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
