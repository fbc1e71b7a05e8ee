package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeesCSV = `Employee #,Last Name,First Name,Birthday,Address,Phone Number,SSS #,Philhealth #,TIN #,Pag-ibig #,Status,Position,Immediate Supervisor,Basic Salary,Rice Subsidy,Phone Allowance,Clothing Allowance,Gross Semi-monthly Rate,Hourly Rate
1,Test,Employee,01/01/1990,"Test Address, Manila",1234567890,11-1111111-1,111111111111,111-111-111-111,111111111111,Regular,Tester,Jane Doe,"20,000",1500,1000,1000,"10,000",119.05
2,Second,Worker,02/02/1992,Somewhere,9876543210,22-2222222-2,222222222222,222-222-222-222,222222222222,Probationary,Analyst,Jane Doe,30000,1500,800,800,15000,178.57
x,Broken,Row,,,,,,,,Regular,,,,,,,,
`

const attendanceCSV = `Employee #,Last Name,First Name,Date,Log In,Log Out
1,Test,Employee,03/01/2024,8:00,17:00
1,Test,Employee,03/02/2024,8:30,17:30
2,Second,Worker,03/01/2024,9:00,
`

const usersCSV = `Username,Password,UserType
admin,admin123,admin
1,12345,user
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func march(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestWorkerRepository_Load(t *testing.T) {
	ctx := context.Background()
	repo, err := NewWorkerRepository(writeFixture(t, "employees.csv", employeesCSV))
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	w, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Test", w.LastName)
	assert.Equal(t, "Test Address, Manila", w.Address)
	assert.Equal(t, worker.StatusRegular, w.Status)
	assert.True(t, w.BasicSalary.Equal(decimal.NewFromInt(20000)))
	assert.True(t, w.GrossSemiMonthlyRate.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, worker.DefaultDepartment, w.Department)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestWorkerRepository_CRUDAndSave(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t, "employees.csv", employeesCSV)
	repo, err := NewWorkerRepository(path)
	require.NoError(t, err)

	newWorker := worker.Worker{
		ID:                   3,
		LastName:             "New",
		FirstName:            "Employee",
		Status:               worker.StatusPartTime,
		Department:           "Sales",
		BasicSalary:          decimal.NewFromInt(28000),
		GrossSemiMonthlyRate: decimal.NewFromInt(14000),
		HourlyRate:           decimal.RequireFromString("159.09"),
	}
	require.NoError(t, repo.Add(ctx, newWorker))
	assert.ErrorIs(t, repo.Add(ctx, newWorker), worker.ErrWorkerIDExists)

	updated, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	updated.LastName = "Updated"
	updated.BasicSalary = decimal.NewFromInt(22000)
	require.NoError(t, repo.Update(ctx, updated))

	require.NoError(t, repo.Delete(ctx, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 2), worker.ErrWorkerNotFound)
	assert.ErrorIs(t, repo.Update(ctx, worker.Worker{ID: 42}), worker.ErrWorkerNotFound)

	require.NoError(t, repo.Save(ctx))

	reloaded, err := NewWorkerRepository(path)
	require.NoError(t, err)
	all, err := reloaded.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := reloaded.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.LastName)
	assert.True(t, got.BasicSalary.Equal(decimal.NewFromInt(22000)))

	got, err = reloaded.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, worker.StatusPartTime, got.Status)
	assert.Equal(t, "Sales", got.Department)
	assert.True(t, got.HourlyRate.Equal(decimal.RequireFromString("159.09")))
}

func TestWorkerRepository_MissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "employees.csv")

	repo, err := NewWorkerRepository(path)
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.Add(ctx, worker.Worker{ID: 1, LastName: "A", FirstName: "B", Status: worker.StatusRegular}))
	require.NoError(t, repo.Save(ctx))
	assert.FileExists(t, path)
}

func TestAttendanceRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo, err := NewAttendanceRepository(writeFixture(t, "attendance.csv", attendanceCSV))
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byWorker, err := repo.GetByWorkerID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byWorker, 2)

	none, err := repo.GetByWorkerID(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	oneDay, err := repo.GetByDateRange(ctx, 1, march(1), march(1))
	require.NoError(t, err)
	require.Len(t, oneDay, 1)
	assert.Equal(t, 8.0, oneDay[0].TotalHours())

	month, err := repo.GetByDateRange(ctx, 1, march(1), march(31))
	require.NoError(t, err)
	assert.Len(t, month, 2)

	april, err := repo.GetByDateRange(ctx, 1, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, april)
	assert.Empty(t, april)

	absent, err := repo.Get(ctx, 2, march(1))
	require.NoError(t, err)
	assert.Nil(t, absent.TimeOut)
	assert.Equal(t, attendance.StatusAbsent, absent.Status())
}

func TestAttendanceRepository_CRUDAndSave(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t, "attendance.csv", attendanceCSV)
	repo, err := NewAttendanceRepository(path)
	require.NoError(t, err)

	rec := attendance.NewRecord(1, march(3), attendance.NewClock(8, 0).Ptr(), attendance.NewClock(17, 0).Ptr())
	require.NoError(t, repo.Add(ctx, rec))
	assert.ErrorIs(t, repo.Add(ctx, rec), attendance.ErrAttendanceExists)

	changed := attendance.NewRecord(1, march(3), attendance.NewClock(8, 30).Ptr(), attendance.NewClock(17, 30).Ptr())
	require.NoError(t, repo.Update(ctx, changed))

	require.NoError(t, repo.Delete(ctx, 2, march(1)))
	assert.ErrorIs(t, repo.Delete(ctx, 2, march(1)), attendance.ErrAttendanceNotFound)

	require.NoError(t, repo.Save(ctx))

	reloaded, err := NewAttendanceRepository(path)
	require.NoError(t, err)

	got, err := reloaded.Get(ctx, 1, march(3))
	require.NoError(t, err)
	assert.Equal(t, attendance.NewClock(8, 30), *got.TimeIn)
	assert.Equal(t, attendance.NewClock(17, 30), *got.TimeOut)

	_, err = reloaded.Get(ctx, 2, march(1))
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := NewAttendanceRepository(filepath.Join(t.TempDir(), "attendance.csv"))
	require.NoError(t, err)

	rec := attendance.NewRecord(1, march(4), attendance.NewClock(8, 0).Ptr(), attendance.NewClock(17, 0).Ptr())
	require.NoError(t, repo.Add(ctx, rec))
	*rec.TimeOut = attendance.NewClock(10, 0)

	ranged, err := repo.GetByDateRange(ctx, 1, march(1), march(15))
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	*ranged[0].TimeOut = attendance.NewClock(12, 0)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	*all[0].TimeIn = attendance.NewClock(9, 0)

	single, err := repo.Get(ctx, 1, march(4))
	require.NoError(t, err)
	*single.TimeOut = attendance.NewClock(13, 0)

	stored, err := repo.Get(ctx, 1, march(4))
	require.NoError(t, err)
	assert.Equal(t, attendance.NewClock(8, 0), *stored.TimeIn)
	assert.Equal(t, attendance.NewClock(17, 0), *stored.TimeOut)
	assert.Equal(t, 8.0, stored.TotalHours())
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t, "user.csv", usersCSV)
	repo, err := NewUserRepository(path)
	require.NoError(t, err)

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	require.NoError(t, repo.Add(ctx, user.User{Username: "2", Password: "secret", Type: user.TypeUser}))
	assert.ErrorIs(t, repo.Add(ctx, user.User{Username: "2"}), user.ErrUsernameExists)
	require.NoError(t, repo.Delete(ctx, "1"))
	require.NoError(t, repo.Save(ctx))

	reloaded, err := NewUserRepository(path)
	require.NoError(t, err)
	all, err := reloaded.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	u, err := reloaded.GetByUsername(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "secret", u.Password)
	assert.Equal(t, user.TypeUser, u.Type)
}
