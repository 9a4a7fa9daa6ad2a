package session

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"github.com/osa911/apexdrive/internal/logging"
)

const redisKeyPrefix = "apex:session:"

// redisClient is the subset of redis.UniversalClient the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisConfig configures the redis connection.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TLSEnabled  bool
	DialTimeout time.Duration
	// MaxTries bounds connection attempts at startup.
	MaxTries uint
}

// RedisStore keeps session state in redis with a key TTL equal to the
// session lifetime.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// OpenRedis connects to redis and retries the initial ping with
// exponential backoff.
func OpenRedis(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisStore, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	if cfg.DB < 0 {
		return nil, errors.New("redis: db must be >= 0")
	}

	opt := &redis.UniversalOptions{
		Addrs:       []string{addr},
		DB:          cfg.DB,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
	}
	if cfg.TLSEnabled {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewUniversalClient(opt)

	pingTimeout := cfg.DialTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	maxTries := cfg.MaxTries
	if maxTries == 0 {
		maxTries = 5
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		c, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return struct{}{}, rdb.Ping(c).Err()
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxTries))
	if err != nil {
		_ = rdb.Close()
		return nil, logging.WrapError(fmt.Errorf("%w: %w", logging.ErrConnection, err), "redis: ping "+addr)
	}

	return NewRedisStore(rdb, ttl), nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id + ":last_submission"
}

func (s *RedisStore) LastSubmission(ctx context.Context, id string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis: get session %s: %w", id, err)
	}

	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis: corrupt session value %q: %w", raw, err)
	}
	return time.Unix(unix, 0), true, nil
}

func (s *RedisStore) SetLastSubmission(ctx context.Context, id string, t time.Time) error {
	if err := s.client.Set(ctx, redisKey(id), strconv.FormatInt(t.Unix(), 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
