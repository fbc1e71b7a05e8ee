package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/motorph/payroll-backend-go/internal/domain/auth"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/motorph/payroll-backend-go/internal/repository/csvfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type authFixture struct {
	svc   auth.AuthService
	jwt   jwt.Service
	users user.UserRepository
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	users, err := csvfile.NewUserRepository(filepath.Join(dir, "user.csv"))
	require.NoError(t, err)
	require.NoError(t, users.Add(ctx, user.User{Username: "admin", Password: "admin123", Type: user.TypeAdmin}))
	require.NoError(t, users.Add(ctx, user.User{Username: "10001", Password: "12345", Type: user.TypeUser}))
	require.NoError(t, users.Add(ctx, user.User{Username: "10099", Password: "orphan", Type: user.TypeUser}))

	workers, err := csvfile.NewWorkerRepository(filepath.Join(dir, "employees.csv"))
	require.NoError(t, err)
	require.NoError(t, workers.Add(ctx, worker.Worker{ID: 10001, LastName: "Garcia", FirstName: "Manuel III", Status: worker.StatusRegular}))
	require.NoError(t, workers.Add(ctx, worker.Worker{ID: 10002, LastName: "Lim", FirstName: "Antonio", Status: worker.StatusRegular}))

	jwtService, err := jwt.NewJWTService(testSecret, "1h")
	require.NoError(t, err)

	return authFixture{
		svc:   NewAuthService(users, workers, jwtService),
		jwt:   jwtService,
		users: users,
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	t.Run("admin", func(t *testing.T) {
		resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, string(user.RoleAdmin), resp.Role)
		assert.Nil(t, resp.WorkerID)
	})

	t.Run("employee", func(t *testing.T) {
		resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "10001", Password: "12345"})
		require.NoError(t, err)
		assert.Equal(t, string(user.RoleEmployee), resp.Role)
		require.NotNil(t, resp.WorkerID)
		assert.Equal(t, 10001, *resp.WorkerID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "x"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("employee without worker", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "10099", Password: "orphan"})
		assert.ErrorIs(t, err, auth.ErrAccountNotLinked)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.svc.Login(ctx, auth.LoginRequest{})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, resp.AccessToken))
	assert.True(t, f.jwt.IsTokenRevoked(resp.AccessToken))
	assert.ErrorIs(t, f.svc.Logout(ctx, ""), auth.ErrInvalidToken)
}

func TestAccounts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateAccount(ctx, auth.CreateAccountRequest{Username: "10002", Password: "s3cret", UserType: "employee"})
	require.NoError(t, err)
	assert.Equal(t, string(user.RoleEmployee), created.Role)

	stored, err := f.users.GetByUsername(ctx, "10002")
	require.NoError(t, err)
	assert.True(t, stored.HasHashedPassword())

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "10002", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, 10002, *resp.WorkerID)

	_, err = f.svc.CreateAccount(ctx, auth.CreateAccountRequest{Username: "10002", Password: "again", UserType: "user"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = f.svc.CreateAccount(ctx, auth.CreateAccountRequest{Username: "20000", Password: "x", UserType: "user"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	accounts, err := f.svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	assert.Equal(t, "10001", accounts[0].Username)

	require.NoError(t, f.svc.DeleteAccount(ctx, "10099"))
	assert.ErrorIs(t, f.svc.DeleteAccount(ctx, "10099"), user.ErrUserNotFound)
}
