package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
)

var timeOfDayRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// TimeOfDay is a clock time expressed as minutes since midnight. Attendance
// comparisons are made at minute granularity, so seconds are discarded on
// parse.
type TimeOfDay int

// ParseTimeOfDay parses HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String renders the time as HH:MM:SS, the format the catalog stores.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60)
}
