package di

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-user-records/cache"
	"github.com/goliatone/go-user-records/internal/config"
	"github.com/goliatone/go-user-records/internal/logging"
	"github.com/goliatone/go-user-records/storage"
	"github.com/goliatone/go-user-records/usercache"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

// Container owns the process wide connection state: the database handle,
// the cache service and the components built on them. It is opened once at
// start up and closed once at shutdown.
type Container struct {
	config        config.Config
	logger        *logrus.Logger
	db            *bun.DB
	store         *storage.Store
	cacheService  cache.Service
	keySerializer cache.KeySerializer
	coordinator   *usercache.Coordinator

	closeOnce sync.Once
	closeErr  error
}

// Option customizes NewContainer.
type Option func(*containerOptions)

type containerOptions struct {
	logger *logrus.Logger
}

// WithLogger makes the container use logger instead of building one from
// the configuration.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *containerOptions) {
		o.logger = logger
	}
}

// NewContainer validates cfg, opens the database and the cache and wires the
// store and the coordinator on top of them. Anything opened before a
// failure is closed again.
func NewContainer(cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg.Log); err != nil {
			return nil, err
		}
	}

	db, err := storage.Open(storage.OpenOptions{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Logger:       logger.WithField("component", "storage"),
	})
	if err != nil {
		return nil, err
	}

	cacheService, err := cache.NewService(cfg.Cache, cache.WithLogger(logger.WithField("component", "cache")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	keySerializer := cache.NewDefaultKeySerializer()
	store := storage.New(db, storage.WithLogger(logger.WithField("component", "storage")))
	coordinator := usercache.New(store, cacheService,
		usercache.WithLogger(logger.WithField("component", "coordinator")),
		usercache.WithKeySerializer(keySerializer),
	)

	return &Container{
		config:        cfg,
		logger:        logger,
		db:            db,
		store:         store,
		cacheService:  cacheService,
		keySerializer: keySerializer,
		coordinator:   coordinator,
	}, nil
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// Logger returns the process logger.
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// DB returns the shared database handle.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Store returns the storage adapter.
func (c *Container) Store() *storage.Store {
	return c.store
}

// CacheService returns the cache adapter.
func (c *Container) CacheService() cache.Service {
	return c.cacheService
}

// KeySerializer returns the serializer used for cache keys.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Coordinator returns the record coordinator.
func (c *Container) Coordinator() *usercache.Coordinator {
	return c.coordinator
}

// EnsureSchema creates the tables if they are missing.
func (c *Container) EnsureSchema(ctx context.Context) error {
	return storage.EnsureSchema(ctx, c.db)
}

// Close releases the cache and then the database. Later calls return the
// result of the first.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = errors.Join(c.cacheService.Close(), c.db.Close())
	})
	return c.closeErr
}
