package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// CompanyStartTime is the shift start used for lateness.
	CompanyStartTime Clock = 8 * 60
	// LunchBreak is deducted from every complete punch pair.
	LunchBreak = time.Hour
	// StandardWorkHours is the daily threshold above which hours count as overtime.
	StandardWorkHours = 8.0
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// NewClock builds a Clock from an hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "H:mm" or "HH:mm".
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(h, m), nil
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Ptr returns a pointer to a copy of c, for building records.
func (c Clock) Ptr() *Clock {
	return &c
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Record is one worker's punch pair for a single day. A nil punch means it
// was never recorded. Hours, overtime, lateness and status are derived on read.
type Record struct {
	WorkerID int
	Date     time.Time
	TimeIn   *Clock
	TimeOut  *Clock
}

// NewRecord builds a record, normalizing the date to a calendar day.
// Reversed punches are accepted; they yield zero hours. The punches are
// copied, so the record never aliases the caller's clocks.
func NewRecord(workerID int, date time.Time, timeIn, timeOut *Clock) Record {
	return Record{
		WorkerID: workerID,
		Date:     DateOf(date),
		TimeIn:   copyPunch(timeIn),
		TimeOut:  copyPunch(timeOut),
	}
}

// Clone returns a copy of r that shares no punch pointers with it.
func (r Record) Clone() Record {
	r.TimeIn = copyPunch(r.TimeIn)
	r.TimeOut = copyPunch(r.TimeOut)
	return r
}

// CloneRecords deep-copies records. The result is never nil.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}

func copyPunch(c *Clock) *Clock {
	if c == nil {
		return nil
	}
	return c.Ptr()
}

// IsComplete reports whether both punches are present.
func (r Record) IsComplete() bool {
	return r.TimeIn != nil && r.TimeOut != nil
}

// TotalHours is time out minus time in, less the lunch break, never negative.
func (r Record) TotalHours() float64 {
	if !r.IsComplete() {
		return 0
	}
	worked := time.Duration(int(*r.TimeOut)-int(*r.TimeIn))*time.Minute - LunchBreak
	if worked <= 0 {
		return 0
	}
	return worked.Hours()
}

func (r Record) OvertimeHours() float64 {
	return math.Max(0, r.TotalHours()-StandardWorkHours)
}

// LateMinutes counts minutes after CompanyStartTime.
func (r Record) LateMinutes() float64 {
	if r.TimeIn == nil {
		return 0
	}
	return math.Max(0, float64(*r.TimeIn-CompanyStartTime))
}

func (r Record) Status() Status {
	switch {
	case !r.IsComplete():
		return StatusAbsent
	case r.LateMinutes() > 0:
		return StatusLate
	default:
		return StatusPresent
	}
}

func (r Record) FormattedTimeIn() string {
	return formatPunch(r.TimeIn)
}

func (r Record) FormattedTimeOut() string {
	return formatPunch(r.TimeOut)
}

func formatPunch(c *Clock) string {
	if c == nil {
		return "N/A"
	}
	return c.String()
}

// SameDay reports whether r belongs to the given worker and day.
func (r Record) SameDay(workerID int, date time.Time) bool {
	return r.WorkerID == workerID && r.Date.Equal(DateOf(date))
}

// InRange reports whether r falls within [start, end], inclusive by day.
func (r Record) InRange(start, end time.Time) bool {
	return !r.Date.Before(DateOf(start)) && !r.Date.After(DateOf(end))
}
