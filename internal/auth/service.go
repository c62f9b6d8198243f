package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/drapehaus/drapehaus/internal/shared"
)

const sessionKeyPrefix = "drapehaus:session:"

// Service wraps authentication business rules. Sessions live in redis keyed
// by an opaque token.
type Service struct {
	repo       Repository
	redis      *redis.Client
	sessionTTL time.Duration
}

func NewService(repo Repository, rdb *redis.Client, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{repo: repo, redis: rdb, sessionTTL: sessionTTL}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Admin, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return admin, nil
}

// StartSession issues a session token for an authenticated admin.
func (s *Service) StartSession(ctx context.Context, adminID int64) (string, error) {
	token := uuid.NewString()
	err := s.redis.Set(ctx, sessionKeyPrefix+token, strconv.FormatInt(adminID, 10), s.sessionTTL).Err()
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	return token, nil
}

// ResolveSession returns the admin a token belongs to, refreshing the TTL.
func (s *Service) ResolveSession(ctx context.Context, token string) (*Admin, error) {
	if token == "" {
		return nil, shared.ErrSessionExpired
	}
	raw, err := s.redis.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return nil, shared.ErrSessionExpired
	}
	adminID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, shared.ErrSessionExpired
	}
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil || !admin.IsActive {
		return nil, shared.ErrSessionExpired
	}
	_ = s.redis.Expire(ctx, sessionKeyPrefix+token, s.sessionTTL).Err()
	return admin, nil
}

// EndSession removes the session token.
func (s *Service) EndSession(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKeyPrefix+token).Err()
}
