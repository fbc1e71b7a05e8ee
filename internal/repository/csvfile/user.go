package csvfile

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/motorph/payroll-backend-go/internal/domain/user"
)

type userRow struct {
	Username string `csv:"Username"`
	Password string `csv:"Password"`
	UserType string `csv:"UserType"`
}

type userRepositoryImpl struct {
	path  string
	mu    sync.RWMutex
	users []user.User
	dirty bool
}

// NewUserRepository loads the user file at path. A missing file starts empty.
func NewUserRepository(path string) (user.UserRepository, error) {
	r := &userRepositoryImpl{path: path}

	var rows []userRow
	if err := readRows(path, &rows); err != nil {
		return nil, err
	}
	for i, row := range rows {
		t, err := user.ParseType(row.UserType)
		if err != nil || strings.TrimSpace(row.Username) == "" {
			slog.Warn("Skipping user row", "file", path, "row", i+2, "error", err)
			continue
		}
		r.users = append(r.users, user.User{
			Username: strings.TrimSpace(row.Username),
			Password: strings.TrimSpace(row.Password),
			Type:     t,
		})
	}
	return r, nil
}

// GetAll implements user.UserRepository.
func (r *userRepositoryImpl) GetAll(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexLocked(username); i >= 0 {
		return r.users[i], nil
	}
	return user.User{}, user.ErrUserNotFound
}

// Add implements user.UserRepository.
func (r *userRepositoryImpl) Add(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(u.Username) >= 0 {
		return user.ErrUsernameExists
	}
	r.users = append(r.users, u)
	r.dirty = true
	return nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(u.Username)
	if i < 0 {
		return user.ErrUserNotFound
	}
	r.users[i] = u
	r.dirty = true
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(username)
	if i < 0 {
		return user.ErrUserNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	r.dirty = true
	return nil
}

// Save implements user.UserRepository.
func (r *userRepositoryImpl) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		return nil
	}
	rows := make([]userRow, 0, len(r.users))
	for _, u := range r.users {
		rows = append(rows, userRow{Username: u.Username, Password: u.Password, UserType: string(u.Type)})
	}
	if err := writeRows(r.path, rows); err != nil {
		return err
	}
	r.dirty = false
	return nil
}

func (r *userRepositoryImpl) indexLocked(username string) int {
	for i, u := range r.users {
		if u.Username == username {
			return i
		}
	}
	return -1
}
