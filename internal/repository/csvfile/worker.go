package csvfile

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type workerRow struct {
	ID                   string `csv:"Employee #"`
	LastName             string `csv:"Last Name"`
	FirstName            string `csv:"First Name"`
	Birthday             string `csv:"Birthday"`
	Address              string `csv:"Address"`
	PhoneNumber          string `csv:"Phone Number"`
	SSSNumber            string `csv:"SSS #"`
	PhilHealthNumber     string `csv:"Philhealth #"`
	TINNumber            string `csv:"TIN #"`
	PagIBIGNumber        string `csv:"Pag-ibig #"`
	Status               string `csv:"Status"`
	Position             string `csv:"Position"`
	Supervisor           string `csv:"Immediate Supervisor"`
	BasicSalary          string `csv:"Basic Salary"`
	RiceSubsidy          string `csv:"Rice Subsidy"`
	PhoneAllowance       string `csv:"Phone Allowance"`
	ClothingAllowance    string `csv:"Clothing Allowance"`
	GrossSemiMonthlyRate string `csv:"Gross Semi-monthly Rate"`
	HourlyRate           string `csv:"Hourly Rate"`
	Department           string `csv:"Department"`
}

func (r workerRow) toWorker() (worker.Worker, error) {
	id, err := strconv.Atoi(strings.TrimSpace(r.ID))
	if err != nil {
		return worker.Worker{}, fmt.Errorf("employee id %q: %w", r.ID, err)
	}
	status, err := worker.ParseStatus(r.Status)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("employee %d: %w", id, err)
	}

	w := worker.Worker{
		ID:               id,
		LastName:         strings.TrimSpace(r.LastName),
		FirstName:        strings.TrimSpace(r.FirstName),
		Birthday:         strings.TrimSpace(r.Birthday),
		Address:          strings.TrimSpace(r.Address),
		PhoneNumber:      strings.TrimSpace(r.PhoneNumber),
		SSSNumber:        strings.TrimSpace(r.SSSNumber),
		PhilHealthNumber: strings.TrimSpace(r.PhilHealthNumber),
		TINNumber:        strings.TrimSpace(r.TINNumber),
		PagIBIGNumber:    strings.TrimSpace(r.PagIBIGNumber),
		Status:           status,
		Position:         strings.TrimSpace(r.Position),
		Supervisor:       strings.TrimSpace(r.Supervisor),
		Department:       strings.TrimSpace(r.Department),
	}
	if w.Department == "" {
		w.Department = worker.DefaultDepartment
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"Basic Salary", r.BasicSalary, &w.BasicSalary},
		{"Rice Subsidy", r.RiceSubsidy, &w.RiceSubsidy},
		{"Phone Allowance", r.PhoneAllowance, &w.PhoneAllowance},
		{"Clothing Allowance", r.ClothingAllowance, &w.ClothingAllowance},
		{"Gross Semi-monthly Rate", r.GrossSemiMonthlyRate, &w.GrossSemiMonthlyRate},
		{"Hourly Rate", r.HourlyRate, &w.HourlyRate},
	}
	for _, f := range fields {
		v, err := parseMoney(f.raw)
		if err != nil {
			return worker.Worker{}, fmt.Errorf("employee %d %s %q: %w", id, f.name, f.raw, err)
		}
		*f.dst = v
	}
	if w.HasNegativeMoney() {
		return worker.Worker{}, fmt.Errorf("employee %d: %w", id, worker.ErrNegativeAmount)
	}

	return w, nil
}

func newWorkerRow(w worker.Worker) workerRow {
	return workerRow{
		ID:                   strconv.Itoa(w.ID),
		LastName:             w.LastName,
		FirstName:            w.FirstName,
		Birthday:             w.Birthday,
		Address:              w.Address,
		PhoneNumber:          w.PhoneNumber,
		SSSNumber:            w.SSSNumber,
		PhilHealthNumber:     w.PhilHealthNumber,
		TINNumber:            w.TINNumber,
		PagIBIGNumber:        w.PagIBIGNumber,
		Status:               string(w.Status),
		Position:             w.Position,
		Supervisor:           w.Supervisor,
		BasicSalary:          formatMoney(w.BasicSalary),
		RiceSubsidy:          formatMoney(w.RiceSubsidy),
		PhoneAllowance:       formatMoney(w.PhoneAllowance),
		ClothingAllowance:    formatMoney(w.ClothingAllowance),
		GrossSemiMonthlyRate: formatMoney(w.GrossSemiMonthlyRate),
		HourlyRate:           formatMoney(w.HourlyRate),
		Department:           w.Department,
	}
}

type workerRepositoryImpl struct {
	path    string
	mu      sync.RWMutex
	workers []worker.Worker
	dirty   bool
}

// NewWorkerRepository loads the employee file at path. A missing file starts empty.
func NewWorkerRepository(path string) (worker.WorkerRepository, error) {
	r := &workerRepositoryImpl{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *workerRepositoryImpl) load() error {
	var rows []workerRow
	if err := readRows(r.path, &rows); err != nil {
		return err
	}

	workers := make([]worker.Worker, 0, len(rows))
	for i, row := range rows {
		w, err := row.toWorker()
		if err != nil {
			slog.Warn("Skipping employee row", "file", r.path, "row", i+2, "error", err)
			continue
		}
		workers = append(workers, w)
	}

	r.mu.Lock()
	r.workers = workers
	r.dirty = false
	r.mu.Unlock()
	return nil
}

// GetAll implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetAll(ctx context.Context) ([]worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]worker.Worker, len(r.workers))
	copy(out, r.workers)
	return out, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id int) (worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexLocked(id); i >= 0 {
		return r.workers[i], nil
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

// Add implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Add(ctx context.Context, w worker.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(w.ID) >= 0 {
		return worker.ErrWorkerIDExists
	}
	r.workers = append(r.workers, w)
	r.dirty = true
	return nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(w.ID)
	if i < 0 {
		return worker.ErrWorkerNotFound
	}
	r.workers[i] = w
	r.dirty = true
	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return worker.ErrWorkerNotFound
	}
	r.workers = append(r.workers[:i], r.workers[i+1:]...)
	r.dirty = true
	return nil
}

// Save implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		return nil
	}
	rows := make([]workerRow, 0, len(r.workers))
	for _, w := range r.workers {
		rows = append(rows, newWorkerRow(w))
	}
	if err := writeRows(r.path, rows); err != nil {
		return err
	}
	r.dirty = false
	return nil
}

func (r *workerRepositoryImpl) indexLocked(id int) int {
	for i, w := range r.workers {
		if w.ID == id {
			return i
		}
	}
	return -1
}
