package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func punch(h, m int) *Clock {
	return NewClock(h, m).Ptr()
}

func TestRecord_Derivations(t *testing.T) {
	tests := []struct {
		name     string
		timeIn   *Clock
		timeOut  *Clock
		hours    float64
		overtime float64
		late     float64
		status   Status
	}{
		{"regular day", punch(8, 0), punch(17, 0), 8.0, 0.0, 0.0, StatusPresent},
		{"two hours overtime", punch(8, 0), punch(19, 0), 10.0, 2.0, 0.0, StatusPresent},
		{"thirty minutes late", punch(8, 30), punch(17, 0), 7.5, 0.0, 30.0, StatusLate},
		{"early arrival", punch(7, 45), punch(17, 0), 8.25, 0.25, 0.0, StatusPresent},
		{"late with overtime", punch(8, 5), punch(20, 5), 11.0, 3.0, 5.0, StatusLate},
		{"missing time out", punch(9, 0), nil, 0.0, 0.0, 60.0, StatusAbsent},
		{"missing time in", nil, punch(17, 0), 0.0, 0.0, 0.0, StatusAbsent},
		{"no punches", nil, nil, 0.0, 0.0, 0.0, StatusAbsent},
		{"shorter than lunch", punch(8, 0), punch(8, 45), 0.0, 0.0, 0.0, StatusPresent},
		{"exactly lunch", punch(8, 0), punch(9, 0), 0.0, 0.0, 0.0, StatusPresent},
		{"reversed punches clamp to zero", punch(17, 0), punch(8, 0), 0.0, 0.0, 540.0, StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(10001, march1, tt.timeIn, tt.timeOut)

			assert.InDelta(t, tt.hours, r.TotalHours(), 1e-9)
			assert.InDelta(t, tt.overtime, r.OvertimeHours(), 1e-9)
			assert.InDelta(t, tt.late, r.LateMinutes(), 1e-9)
			assert.Equal(t, tt.status, r.Status())
		})
	}
}

func TestRecord_DerivationsAreIdempotent(t *testing.T) {
	r := NewRecord(1, march1, punch(8, 17), punch(18, 42))

	assert.Equal(t, r.TotalHours(), r.TotalHours())
	assert.Equal(t, r.OvertimeHours(), r.OvertimeHours())
	assert.Equal(t, r.LateMinutes(), r.LateMinutes())
	assert.Equal(t, r.Status(), r.Status())
}

func TestRecord_HoursFormula(t *testing.T) {
	for in := 6 * 60; in <= 11*60; in += 13 {
		for out := 0; out < 24*60; out += 17 {
			r := NewRecord(1, march1, Clock(in).Ptr(), Clock(out).Ptr())

			want := float64(out-in)/60 - 1
			if want < 0 {
				want = 0
			}
			require.InDelta(t, want, r.TotalHours(), 1e-9, "in=%d out=%d", in, out)
			require.InDelta(t, max(0, want-8), r.OvertimeHours(), 1e-9)
			require.InDelta(t, max(0, float64(in-8*60)), r.LateMinutes(), 1e-9)
		}
	}
}

func TestNewRecord_NormalizesDate(t *testing.T) {
	r := NewRecord(1, time.Date(2024, 3, 1, 15, 4, 5, 0, time.Local), nil, nil)

	assert.Equal(t, march1, r.Date)
	assert.True(t, r.SameDay(1, march1))
	assert.False(t, r.SameDay(2, march1))
	assert.True(t, r.InRange(march1, march1))
	assert.False(t, r.InRange(march1.AddDate(0, 0, 1), march1.AddDate(0, 0, 5)))
}

func TestRecord_CloneDoesNotAlias(t *testing.T) {
	in, out := punch(8, 0), punch(17, 0)
	r := NewRecord(1, march1, in, out)

	*out = NewClock(12, 0)
	assert.Equal(t, NewClock(17, 0), *r.TimeOut)

	c := r.Clone()
	*c.TimeIn = NewClock(9, 0)
	assert.Equal(t, NewClock(8, 0), *r.TimeIn)
	assert.Equal(t, "N/A", Record{}.Clone().FormattedTimeIn())

	assert.NotNil(t, CloneRecords(nil))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"08:00", NewClock(8, 0), false},
		{"8:05", NewClock(8, 5), false},
		{"17:30", NewClock(17, 30), false},
		{"23:59", NewClock(23, 59), false},
		{"24:00", 0, true},
		{"8:5", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_FormattedPunches(t *testing.T) {
	r := NewRecord(1, march1, punch(8, 5), nil)

	assert.Equal(t, "08:05", r.FormattedTimeIn())
	assert.Equal(t, "N/A", r.FormattedTimeOut())
	assert.False(t, r.IsComplete())
}

func TestRecordRequest_ToRecord(t *testing.T) {
	in, out := "08:00", "17:00"

	t.Run("valid", func(t *testing.T) {
		req := RecordRequest{WorkerID: 10001, Date: "2024-03-01", TimeIn: &in, TimeOut: &out}
		require.NoError(t, req.Validate())

		r, err := req.ToRecord()
		require.NoError(t, err)
		assert.Equal(t, 8.0, r.TotalHours())
		assert.Equal(t, march1, r.Date)
	})

	t.Run("reversed punches rejected", func(t *testing.T) {
		req := RecordRequest{WorkerID: 10001, Date: "2024-03-01", TimeIn: &out, TimeOut: &in}
		_, err := req.ToRecord()
		assert.ErrorIs(t, err, ErrClockOutBeforeClockIn)
	})

	t.Run("equal punches rejected", func(t *testing.T) {
		req := RecordRequest{WorkerID: 10001, Date: "2024-03-01", TimeIn: &in, TimeOut: &in}
		_, err := req.ToRecord()
		assert.ErrorIs(t, err, ErrClockOutBeforeClockIn)
	})

	t.Run("time out without time in", func(t *testing.T) {
		req := RecordRequest{WorkerID: 10001, Date: "2024-03-01", TimeOut: &out}
		_, err := req.ToRecord()
		assert.ErrorIs(t, err, ErrClockOutWithoutClockIn)
	})

	t.Run("absent day", func(t *testing.T) {
		req := RecordRequest{WorkerID: 10001, Date: "2024-03-01"}
		r, err := req.ToRecord()
		require.NoError(t, err)
		assert.Equal(t, StatusAbsent, r.Status())
	})

	t.Run("validation errors", func(t *testing.T) {
		bad := "25:00"
		req := RecordRequest{WorkerID: 0, Date: "03/01/2024", TimeIn: &bad}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "worker_id")
		assert.Contains(t, err.Error(), "date")
		assert.Contains(t, err.Error(), "time_in")
	})
}
