package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")

	// Manual entry errors
	ErrClockOutBeforeClockIn  = errors.New("time out must be after time in")
	ErrClockOutWithoutClockIn = errors.New("time out requires a time in")
	ErrInvalidClock           = errors.New("invalid time of day, expected HH:mm")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this date")
)
