package xapi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration decodes the H/M/S subset of ISO 8601 durations ("PT1H30M",
// "PT90S") into whole seconds. Designators outside the subset are skipped,
// and a string with no H, M, or S component yields 0 rather than an error.
func ParseDuration(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "P")

	total := 0.0
	inTime := false
	num := strings.Builder{}
	for _, r := range s {
		switch {
		case r == 'T':
			inTime = true
			num.Reset()
		case (r >= '0' && r <= '9') || r == '.' || r == ',':
			if r == ',' {
				r = '.'
			}
			num.WriteRune(r)
		default:
			value, err := strconv.ParseFloat(num.String(), 64)
			num.Reset()
			if err != nil {
				continue
			}
			switch r {
			case 'H':
				total += value * 3600
			case 'M':
				// M before T means months; only time minutes count.
				if inTime {
					total += value * 60
				}
			case 'S':
				total += value
			}
		}
	}
	return int(math.Round(total))
}

// FormatSeconds renders a second count as the largest applicable unit pair:
// hours+minutes, minutes+seconds, or seconds alone.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	switch {
	case total >= 3600:
		return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
	case total >= 60:
		return fmt.Sprintf("%dm %ds", total/60, total%60)
	default:
		return fmt.Sprintf("%ds", total)
	}
}
