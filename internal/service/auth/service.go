package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/motorph/payroll-backend-go/internal/domain/auth"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	worker.WorkerRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, workerRepository worker.WorkerRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:   userRepository,
		WorkerRepository: workerRepository,
		Service:          jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword accepts bcrypt hashes and the plain-text passwords of older user files.
func checkPassword(u user.User, password string) bool {
	if u.HasHashedPassword() {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !checkPassword(userData, req.Password) {
		slog.Warn("Failed login attempt", "username", req.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var workerID *int
	if !userData.IsAdmin() {
		id, ok := userData.WorkerID()
		if !ok {
			return auth.TokenResponse{}, auth.ErrAccountNotLinked
		}
		if _, err := a.WorkerRepository.GetByID(ctx, id); err != nil {
			if errors.Is(err, worker.ErrWorkerNotFound) {
				return auth.TokenResponse{}, auth.ErrAccountNotLinked
			}
			return auth.TokenResponse{}, fmt.Errorf("failed to get worker for account: %w", err)
		}
		workerID = &id
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.Username, userData.Role(), workerID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.Role = string(userData.Role())
	tokenResponse.WorkerID = workerID

	slog.Info("User logged in", "username", userData.Username, "role", userData.Role())
	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}

// CreateAccount implements auth.AuthService.
func (a *AuthServiceImpl) CreateAccount(ctx context.Context, req auth.CreateAccountRequest) (auth.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccountResponse{}, err
	}
	userType, _ := user.ParseType(req.UserType)

	u := user.User{Username: req.Username, Type: userType}
	if id, ok := u.WorkerID(); ok && userType == user.TypeUser {
		if _, err := a.WorkerRepository.GetByID(ctx, id); err != nil {
			return auth.AccountResponse{}, err
		}
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.AccountResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = hashed

	if err := a.UserRepository.Add(ctx, u); err != nil {
		return auth.AccountResponse{}, err
	}
	if err := a.UserRepository.Save(ctx); err != nil {
		return auth.AccountResponse{}, fmt.Errorf("failed to persist users: %w", err)
	}

	slog.Info("Account created", "username", u.Username, "type", u.Type)
	return toAccountResponse(u), nil
}

// DeleteAccount implements auth.AuthService.
func (a *AuthServiceImpl) DeleteAccount(ctx context.Context, username string) error {
	if err := a.UserRepository.Delete(ctx, username); err != nil {
		return err
	}
	if err := a.UserRepository.Save(ctx); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	slog.Info("Account deleted", "username", username)
	return nil
}

// ListAccounts implements auth.AuthService.
func (a *AuthServiceImpl) ListAccounts(ctx context.Context) ([]auth.AccountResponse, error) {
	users, err := a.UserRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	out := make([]auth.AccountResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toAccountResponse(u))
	}
	return out, nil
}

func toAccountResponse(u user.User) auth.AccountResponse {
	return auth.AccountResponse{
		Username: u.Username,
		UserType: string(u.Type),
		Role:     string(u.Role()),
	}
}
