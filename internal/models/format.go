package models

import (
	"fmt"
	"path"
	"time"
)

// DisplayLayout renders timestamps as "05-Mar-24, 02:30 PM".
const DisplayLayout = "02-Jan-06, 03:04 PM"

func FormatDisplayTime(t time.Time) string {
	return t.Format(DisplayLayout)
}

// FormatTimeDifference renders deadline minus submittedAt using only the
// units from the largest non-zero one down to seconds. Spans past the
// deadline are prefixed with "late by" and rounded up to the next whole
// second, so any lateness shows as at least one second. Time remaining is
// truncated.
func FormatTimeDifference(deadline, submittedAt time.Time) string {
	d := deadline.Sub(submittedAt)
	if d < 0 {
		late := -d
		if rem := late % time.Second; rem != 0 {
			late += time.Second - rem
		}
		return "late by " + formatSpan(late)
	}
	return formatSpan(d)
}

func formatSpan(d time.Duration) string {
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d days %d hours %d minutes %d seconds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%d hours %d minutes %d seconds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d minutes %d seconds", minutes, seconds)
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}

// baseName returns the last segment of a stored file path.
func baseName(p string) string {
	if p == "" {
		return ""
	}
	return path.Base(p)
}
