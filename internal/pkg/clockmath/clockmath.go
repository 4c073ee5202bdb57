package clockmath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a time-of-day string cannot be
// parsed into valid hour/minute/second components.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM or HH:MM:SS")

// ToInstant combines the calendar day of `day` with a time-of-day string
// ("HH:MM" or "HH:MM:SS", seconds default to 0) in day's location.
func ToInstant(day time.Time, timeOfDay string) (time.Time, error) {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeOfDay)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeOfDay)
		}
		nums[i] = n
	}

	hour, minute, second := nums[0], nums[1], nums[2]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeOfDay)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location()), nil
}

// ElapsedSeconds returns the whole seconds elapsed between from and now,
// floored at zero so a fetch that lands slightly before the anchor never
// produces a negative display.
func ElapsedSeconds(from, now time.Time) int {
	secs := int(now.Sub(from) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// FormatElapsed renders elapsed seconds as zero-padded HH:MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
