package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
)

// Saver flushes a repository to its backing store.
type Saver interface {
	Save(ctx context.Context) error
}

// TokenPurger drops revoked tokens that have expired.
type TokenPurger interface {
	PurgeRevoked(now time.Time) int
}

type PayrollJobs struct {
	savers         map[string]Saver
	tokens         TokenPurger
	payrollService payroll.PayrollService
	loc            *time.Location
	now            func() time.Time

	lastCutoff string
}

// NewPayrollJobs builds the jobs. Cutoff days are judged on the wall clock
// in loc; nil means UTC.
func NewPayrollJobs(savers map[string]Saver, tokens TokenPurger, payrollService payroll.PayrollService, loc *time.Location) *PayrollJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollJobs{
		savers:         savers,
		tokens:         tokens,
		payrollService: payrollService,
		loc:            loc,
		now:            time.Now,
	}
}

// RegisterJobs adds the autosave and token jobs. The cutoff payslip job is
// added only when autoPayslips is set.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, autosaveInterval time.Duration, autoPayslips bool) {
	scheduler.AddJob(Job{Name: "autosave_repositories", Interval: autosaveInterval, Fn: j.SaveRepositories})
	scheduler.AddJob(Job{Name: "purge_revoked_tokens", Interval: time.Hour, Fn: j.PurgeRevokedTokens})
	if autoPayslips {
		scheduler.AddJob(Job{Name: "cutoff_payslips", Interval: time.Hour, Fn: j.GenerateCutoffPayslips, RunAtStart: true})
	}
}

// SaveRepositories flushes every repository, attempting all of them before
// reporting failures.
func (j *PayrollJobs) SaveRepositories(ctx context.Context) error {
	var errs []error
	for name, s := range j.savers {
		if err := s.Save(ctx); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (j *PayrollJobs) PurgeRevokedTokens(ctx context.Context) error {
	if n := j.tokens.PurgeRevoked(j.now()); n > 0 {
		slog.Info("Cron: purged revoked tokens", "count", n)
	}
	return nil
}

// GenerateCutoffPayslips saves payslips for every worker on the last day of
// each semi-monthly period (the 15th and month end), once per period.
func (j *PayrollJobs) GenerateCutoffPayslips(ctx context.Context) error {
	now := j.now().In(j.loc)

	var period payroll.Period
	switch {
	case now.Day() == 15:
		period = payroll.FirstHalf(now)
	case now.AddDate(0, 0, 1).Day() == 1:
		period = payroll.SecondHalf(now)
	default:
		return nil
	}

	key := period.Start.Format("2006-01-02")
	if j.lastCutoff == key {
		return nil
	}

	slog.Info("Cron: generating cutoff payslips", "start", key, "end", period.End.Format("2006-01-02"))
	resp, err := j.payrollService.GenerateBulkPayslips(ctx, payroll.BulkPayslipRequest{
		PeriodRequest: payroll.PeriodRequest{
			StartDate: key,
			EndDate:   period.End.Format("2006-01-02"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to generate cutoff payslips: %w", err)
	}
	j.lastCutoff = key

	slog.Info("Cron: cutoff payslips generated", "run_id", resp.RunID, "success", resp.SuccessCount, "errors", resp.ErrorCount)
	return nil
}
