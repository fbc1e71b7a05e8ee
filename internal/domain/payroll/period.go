package payroll

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
)

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// Named semi-monthly periods accepted by PeriodFor.
const (
	PeriodFirstHalf     = "first-half"
	PeriodSecondHalf    = "second-half"
	PeriodPreviousMonth = "previous-month"
)

func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: attendance.DateOf(start), End: attendance.DateOf(end)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

func (p Period) Contains(date time.Time) bool {
	d := attendance.DateOf(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// FirstHalf is the 1st through the 15th of t's month.
func FirstHalf(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 0, 14)}
}

// SecondHalf is the 16th through the last day of t's month.
func SecondHalf(t time.Time) Period {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: first.AddDate(0, 0, 15), End: first.AddDate(0, 1, -1)}
}

// PreviousMonth is the whole calendar month before t.
func PreviousMonth(t time.Time) Period {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Period{Start: first, End: first.AddDate(0, 1, -1)}
}

// PeriodFor resolves a named period relative to now.
func PeriodFor(name string, now time.Time) (Period, error) {
	switch name {
	case PeriodFirstHalf:
		return FirstHalf(now), nil
	case PeriodSecondHalf:
		return SecondHalf(now), nil
	case PeriodPreviousMonth:
		return PreviousMonth(now), nil
	}
	return Period{}, ErrUnknownPeriod
}
