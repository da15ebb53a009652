package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yjpark/sns-service/internal/domain"
)

// RedisUserCache decorates a UserRepository with a read-through Redis
// cache on username lookups. Users are resolved on every authenticated
// request by the authentication gate and almost never change, which
// makes them the one entity worth caching.
type RedisUserCache struct {
	inner  UserRepository
	client *redis.Client
	ttl    time.Duration
}

// cachedUser is the Redis representation. It is separate from
// domain.User because the password hash must round-trip through the
// cache while staying out of every other serialization.
type cachedUser struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"password_hash"`
	Role         domain.Role `json:"role"`
	RegisteredAt time.Time   `json:"registered_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewRedisUserCache creates a caching decorator around inner
func NewRedisUserCache(inner UserRepository, client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{inner: inner, client: client, ttl: ttl}
}

func userKey(username string) string {
	return "user:" + username
}

// Create delegates to the wrapped repository. No invalidation is
// needed: usernames are unique and users are immutable after join.
func (r *RedisUserCache) Create(ctx context.Context, user *domain.User) error {
	return r.inner.Create(ctx, user)
}

// GetByID delegates to the wrapped repository
func (r *RedisUserCache) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.inner.GetByID(ctx, id)
}

// GetByUsername serves from cache when possible and falls back to the
// wrapped repository, populating the cache on a hit there. Cache
// errors degrade to a repository read, never to a request failure.
func (r *RedisUserCache) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	key := userKey(username)

	if data, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var cu cachedUser
		if err := json.Unmarshal(data, &cu); err == nil {
			return &domain.User{
				ID:           cu.ID,
				Username:     cu.Username,
				PasswordHash: cu.PasswordHash,
				Role:         cu.Role,
				RegisteredAt: cu.RegisteredAt,
				UpdatedAt:    cu.UpdatedAt,
			}, nil
		}
	}

	user, err := r.inner.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return user, err
	}

	if data, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		RegisteredAt: user.RegisteredAt,
		UpdatedAt:    user.UpdatedAt,
	}); err == nil {
		r.client.Set(ctx, key, data, r.ttl)
	}
	return user, nil
}
