package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
)

// Claim keys carried by access tokens.
const (
	ClaimUsername = "username"
	ClaimRole     = "role"
	ClaimWorkerID = "worker_id"
	ClaimType     = "type"
)

type Service interface {
	GenerateAccessToken(username string, role user.Role, workerID *int) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	// PurgeRevoked forgets revoked tokens that have expired anyway.
	PurgeRevoked(now time.Time) int
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime: expiration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}, nil
}

func (j *JWTService) GenerateAccessToken(username string, role user.Role, workerID *int) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"jti":         uuid.NewString(),
		ClaimUsername: username,
		ClaimRole:     string(role),
		ClaimType:     "access",
		"exp":         expiresAt,
	}
	if workerID != nil {
		claims[ClaimWorkerID] = *workerID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken remembers token until its expiry. Tokens that fail to decode
// are kept for one expiration window.
func (j *JWTService) RevokeToken(token string) {
	expiresAt := time.Now().Add(j.accessTokenExpirationTime).Unix()
	if t, err := j.tokenAuth.Decode(token); err == nil && !t.Expiration().IsZero() {
		expiresAt = t.Expiration().Unix()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) PurgeRevoked(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	purged := 0
	for token, expiresAt := range j.revokedTokens {
		if expiresAt <= now.Unix() {
			delete(j.revokedTokens, token)
			purged++
		}
	}
	return purged
}
