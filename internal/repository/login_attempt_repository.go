package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=login_attempt_repository.go -destination=mock/login_attempt_repository.go -package=mock

// LoginAttemptRepository counts recent failed logins per username.
type LoginAttemptRepository interface {
	Failures(ctx context.Context, username string) (int64, error)
	RecordFailure(ctx context.Context, username string, window time.Duration) (int64, error)
	Reset(ctx context.Context, username string) error
}

type loginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository returns a Redis-backed implementation.
func NewLoginAttemptRepository(client *redis.Client) LoginAttemptRepository {
	return &loginAttemptRepository{client: client}
}

func loginAttemptKey(username string) string {
	return "login:failures:" + username
}

func (r *loginAttemptRepository) Failures(ctx context.Context, username string) (int64, error) {
	n, err := r.client.Get(ctx, loginAttemptKey(username)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// RecordFailure increments the counter. The window starts at the first failure.
func (r *loginAttemptRepository) RecordFailure(ctx context.Context, username string, window time.Duration) (int64, error) {
	key := loginAttemptKey(username)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *loginAttemptRepository) Reset(ctx context.Context, username string) error {
	return r.client.Del(ctx, loginAttemptKey(username)).Err()
}
