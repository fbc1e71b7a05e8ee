package csvfile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
)

type attendanceRow struct {
	WorkerID string `csv:"Employee #"`
	Date     string `csv:"Date"`
	TimeIn   string `csv:"Log In"`
	TimeOut  string `csv:"Log Out"`
}

func (r attendanceRow) toRecord() (attendance.Record, error) {
	id, err := strconv.Atoi(strings.TrimSpace(r.WorkerID))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("employee id %q: %w", r.WorkerID, err)
	}
	date, err := time.Parse(fileDateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("date %q: %w", r.Date, err)
	}
	timeIn, err := parsePunch(r.TimeIn)
	if err != nil {
		return attendance.Record{}, err
	}
	timeOut, err := parsePunch(r.TimeOut)
	if err != nil {
		return attendance.Record{}, err
	}
	return attendance.NewRecord(id, date, timeIn, timeOut), nil
}

func parsePunch(s string) (*attendance.Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return nil, nil
	}
	c, err := attendance.ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func newAttendanceRow(rec attendance.Record) attendanceRow {
	row := attendanceRow{
		WorkerID: strconv.Itoa(rec.WorkerID),
		Date:     rec.Date.Format(fileDateLayout),
	}
	if rec.TimeIn != nil {
		row.TimeIn = rec.TimeIn.String()
	}
	if rec.TimeOut != nil {
		row.TimeOut = rec.TimeOut.String()
	}
	return row
}

type attendanceRepositoryImpl struct {
	path    string
	mu      sync.RWMutex
	records []attendance.Record
	dirty   bool
}

// NewAttendanceRepository loads the attendance file at path. A missing file starts empty.
func NewAttendanceRepository(path string) (attendance.AttendanceRepository, error) {
	r := &attendanceRepositoryImpl{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *attendanceRepositoryImpl) load() error {
	var rows []attendanceRow
	if err := readRows(r.path, &rows); err != nil {
		return err
	}

	records := make([]attendance.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			slog.Warn("Skipping attendance row", "file", r.path, "row", i+2, "error", err)
			continue
		}
		records = append(records, rec)
	}

	r.mu.Lock()
	r.records = records
	r.dirty = false
	r.mu.Unlock()
	return nil
}

// GetAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetAll(ctx context.Context) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return attendance.CloneRecords(r.records), nil
}

// GetByWorkerID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByWorkerID(ctx context.Context, workerID int) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.WorkerID == workerID
	}), nil
}

// GetByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByDateRange(ctx context.Context, workerID int, start, end time.Time) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.WorkerID == workerID && rec.InRange(start, end)
	}), nil
}

// Get implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Get(ctx context.Context, workerID int, date time.Time) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexLocked(workerID, date); i >= 0 {
		return r.records[i].Clone(), nil
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

// Add implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Add(ctx context.Context, rec attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(rec.WorkerID, rec.Date) >= 0 {
		return attendance.ErrAttendanceExists
	}
	r.records = append(r.records, rec.Clone())
	r.dirty = true
	return nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(rec.WorkerID, rec.Date)
	if i < 0 {
		return attendance.ErrAttendanceNotFound
	}
	r.records[i] = rec.Clone()
	r.dirty = true
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, workerID int, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(workerID, date)
	if i < 0 {
		return attendance.ErrAttendanceNotFound
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	r.dirty = true
	return nil
}

// Save implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		return nil
	}
	rows := make([]attendanceRow, 0, len(r.records))
	for _, rec := range r.records {
		rows = append(rows, newAttendanceRow(rec))
	}
	if err := writeRows(r.path, rows); err != nil {
		return err
	}
	r.dirty = false
	return nil
}

// filter returns matching records sorted by date. Never nil.
func (r *attendanceRepositoryImpl) filter(match func(attendance.Record) bool) []attendance.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, rec := range r.records {
		if match(rec) {
			out = append(out, rec.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *attendanceRepositoryImpl) indexLocked(workerID int, date time.Time) int {
	for i, rec := range r.records {
		if rec.SameDay(workerID, date) {
			return i
		}
	}
	return -1
}
