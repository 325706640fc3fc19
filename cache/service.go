package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-user-records/internal/cacheinfra"
	"github.com/goliatone/go-user-records/users"
	"github.com/sirupsen/logrus"
)

// ErrNilUser is returned when Set is asked to store a nil record.
var ErrNilUser = errors.New("cache: nil user")

// Service stores serialized user records by key. Misses are reported as a
// nil user with a nil error; transport and decode failures are returned.
type Service interface {
	// Check reports whether the backend answers. It never returns an error.
	Check(ctx context.Context) bool
	Get(ctx context.Context, key string) (*users.User, error)
	// Set stores user under key with the default TTL.
	Set(ctx context.Context, key string, user *users.User) error
	// SetWithTTL stores user under key for ttl. A non-positive ttl uses the default.
	SetWithTTL(ctx context.Context, key string, user *users.User, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type storeService struct {
	store  cacheinfra.Store
	codec  Codec
	ttl    time.Duration
	logger logrus.FieldLogger
}

// Option configures a Service built by NewService.
type Option func(*storeService)

// WithLogger sets the logger used to report failed health checks.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *storeService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService validates cfg and constructs a Service on the selected backend.
func NewService(cfg Config, opts ...Option) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	codec, err := CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}

	store, err := cacheinfra.NewStore(cfg.toInternal())
	if err != nil {
		return nil, err
	}

	s := &storeService{
		store:  store,
		codec:  codec,
		ttl:    cfg.TTL,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *storeService) Check(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.WithError(err).Error("cache health check failed")
		return false
	}
	return true
}

func (s *storeService) Get(ctx context.Context, key string) (*users.User, error) {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var u users.User
	if err := s.codec.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &u, nil
}

func (s *storeService) Set(ctx context.Context, key string, user *users.User) error {
	return s.SetWithTTL(ctx, key, user, s.ttl)
}

func (s *storeService) SetWithTTL(ctx context.Context, key string, user *users.User, ttl time.Duration) error {
	if user == nil {
		return ErrNilUser
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	data, err := s.codec.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(ctx, key, data, ttl)
}

func (s *storeService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

func (s *storeService) Close() error {
	return s.store.Close()
}
