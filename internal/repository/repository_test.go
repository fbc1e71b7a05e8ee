package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CSV(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := &config.Config{Storage: config.StorageConfig{
		Driver:         config.DriverCSV,
		EmployeesFile:  filepath.Join(dir, "employees.csv"),
		AttendanceFile: filepath.Join(dir, "attendance.csv"),
		UsersFile:      filepath.Join(dir, "user.csv"),
	}}

	set, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer set.Close()

	workers, err := set.Workers.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, workers)

	require.NoError(t, set.Users.Add(ctx, user.User{Username: "admin", Password: "admin123", Type: user.TypeAdmin}))
	require.NoError(t, set.SaveAll(ctx))

	_, err = os.Stat(cfg.Storage.UsersFile)
	assert.NoError(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}})
	assert.ErrorContains(t, err, `unsupported repository driver "mongo"`)
}
