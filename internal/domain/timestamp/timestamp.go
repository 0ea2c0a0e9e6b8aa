// Package timestamp converts between seconds and HH:MM:SS strings.
package timestamp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/autocliper/autoclip/internal/errs"
)

// ToTimestamp formats seconds as HH:MM:SS, flooring each unit. The hour
// field widens past two digits for sources longer than 99h.
func ToTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FromTimestamp parses an HH:MM:SS string into seconds. Any other shape
// (missing or extra colons, non-numeric or negative components) is a
// malformed-timestamp error.
func FromTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, errs.MalformedOutput("timestamp is not HH:MM:SS").WithDetail("timestamp", ts)
	}
	var units [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, errs.MalformedOutput("timestamp component is not a non-negative integer").
				WithDetail("timestamp", ts).
				WithDetail("component", p)
		}
		units[i] = n
	}
	return float64(units[0]*3600 + units[1]*60 + units[2]), nil
}
