package schedule

import "errors"

var (
	ErrWorkScheduleNotFound   = errors.New("work schedule not found")
	ErrWorkScheduleNameExists = errors.New("work schedule with this name already exists")
	ErrInvalidDayOfWeek       = errors.New("day of week must be between 1 (Sunday) and 7 (Saturday)")
	ErrDuplicateDayOfWeek     = errors.New("work schedule already has a template for this day of week")

	// ErrNoScheduleAssigned means the employee has no current schedule
	// assignment. The resolver recovers from it by caching an empty entry.
	ErrNoScheduleAssigned = errors.New("employee has no assigned work schedule")

	ErrAssignmentNotFound = errors.New("schedule assignment not found")
)
