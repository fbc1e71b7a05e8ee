// Command payslip computes payroll from the command line. It reads the
// same .env and data files as the API server.
//
//	payslip -id 10001 -period first-half
//	payslip -id 10001 -from 2024-03-01 -to 2024-03-15 -stdout
//	payslip -all -period previous-month
//	payslip -all -from 2024-03-01 -to 2024-03-15 -export register.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
	"github.com/motorph/payroll-backend-go/internal/repository"
	payrollService "github.com/motorph/payroll-backend-go/internal/service/payroll"
	workerService "github.com/motorph/payroll-backend-go/internal/service/worker"
)

func main() {
	var (
		workerID = flag.Int("id", 0, "worker ID")
		period   = flag.String("period", "", "first-half, second-half or previous-month")
		from     = flag.String("from", "", "period start, YYYY-MM-DD")
		to       = flag.String("to", "", "period end, YYYY-MM-DD")
		all      = flag.Bool("all", false, "generate payslips for every worker")
		toStdout = flag.Bool("stdout", false, "print the payslip instead of saving it")
		export   = flag.String("export", "", "write an XLSX payroll register to this path (with -all)")
	)
	flag.Parse()

	if err := run(*workerID, payroll.PeriodRequest{StartDate: *from, EndDate: *to, Period: *period}, *all, *toStdout, *export); err != nil {
		fmt.Fprintln(os.Stderr, "payslip:", err)
		os.Exit(1)
	}
}

func run(workerID int, period payroll.PeriodRequest, all, toStdout bool, export string) error {
	if !all && workerID <= 0 {
		return fmt.Errorf("either -id or -all is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.PayslipDir)
	if err != nil {
		return err
	}
	svc := payrollService.NewPayrollService(repos.Attendance, workerService.NewWorkerService(repos.Workers), fileStorage, cfg.Location())

	if all {
		return runBulk(ctx, svc, period, export)
	}

	resp, err := svc.GeneratePayslip(ctx, payroll.PayslipRequest{
		WorkerID:      workerID,
		Save:          !toStdout,
		PeriodRequest: period,
	})
	if err != nil {
		return err
	}
	if toStdout {
		fmt.Print(resp.Payslip)
		return nil
	}
	fmt.Println("Payslip saved to", resp.Filename)
	return nil
}

func runBulk(ctx context.Context, svc payroll.PayrollService, period payroll.PeriodRequest, export string) error {
	req := payroll.BulkPayslipRequest{PeriodRequest: period}

	if export != "" {
		data, _, err := svc.ExportPayrollRegister(ctx, req)
		if err != nil {
			return err
		}
		if err := os.WriteFile(export, data, 0o644); err != nil {
			return fmt.Errorf("write register: %w", err)
		}
		fmt.Println("Payroll register written to", export)
		return nil
	}

	resp, err := svc.GenerateBulkPayslips(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s (%s to %s): %d saved, %d failed\n",
		resp.RunID, resp.StartDate, resp.EndDate, resp.SuccessCount, resp.ErrorCount)
	for _, e := range resp.Errors {
		fmt.Printf("  worker %d: %s\n", e.WorkerID, e.Message)
	}
	if resp.ErrorCount > 0 {
		return fmt.Errorf("%d payslips failed", resp.ErrorCount)
	}
	return nil
}
