package usercache

import (
	"context"

	"github.com/goliatone/go-user-records/cache"
	"github.com/goliatone/go-user-records/internal/faults"
	"github.com/goliatone/go-user-records/storage"
	"github.com/goliatone/go-user-records/users"
	"github.com/sirupsen/logrus"
)

// Coordinator keeps the cache-aside path for user records.
type Coordinator struct {
	store  storage.Repository
	cache  cache.Service
	keys   cache.KeySerializer
	logger logrus.FieldLogger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for adapter failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKeySerializer replaces the serializer that builds cache keys.
func WithKeySerializer(keys cache.KeySerializer) Option {
	return func(c *Coordinator) {
		if keys != nil {
			c.keys = keys
		}
	}
}

// New creates a Coordinator over store and cacheService.
func New(store storage.Repository, cacheService cache.Service, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		cache:  cacheService,
		keys:   cache.NewDefaultKeySerializer(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reports the health of the cache and the store.
func (c *Coordinator) Check(ctx context.Context) (cacheUp, storeUp bool) {
	return c.cache.Check(ctx), c.store.Check(ctx)
}

// GetUser returns the record for id, or nil when it does not exist.
func (c *Coordinator) GetUser(ctx context.Context, id int64) (*users.User, error) {
	const op = "getUser"
	key := c.key(id)

	cached, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, c.adapterError(op, "cache", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	stored, err := c.store.SelectByID(ctx, id)
	if err != nil {
		return nil, c.adapterError(op, "storage", id, err)
	}
	if stored == nil {
		return nil, nil
	}

	if err := c.cache.Set(ctx, key, stored); err != nil {
		return nil, c.adapterError(op, "cache", id, err)
	}
	return stored, nil
}

// SetUser validates and creates user, then caches the stored record.
func (c *Coordinator) SetUser(ctx context.Context, user users.User) (*users.User, error) {
	const op = "setUser"

	if err := users.ValidateUser(user); err != nil {
		return nil, err
	}

	exists, err := c.store.ExistsByField(ctx, users.FieldEmail, user.Email)
	if err != nil {
		return nil, c.adapterError(op, "storage", 0, err)
	}
	if exists {
		return nil, users.ErrDuplicateEmail
	}

	if user.Mobile != "" {
		exists, err = c.store.ExistsByField(ctx, users.FieldMobile, user.Mobile)
		if err != nil {
			return nil, c.adapterError(op, "storage", 0, err)
		}
		if exists {
			return nil, users.ErrDuplicateMobile
		}
	}

	created, err := c.store.Create(ctx, user)
	if err != nil {
		if users.IsConflict(err) {
			return nil, err
		}
		return nil, c.adapterError(op, "storage", 0, err)
	}
	if created == nil {
		return nil, users.ErrCreateFailed
	}

	if err := c.cache.Set(ctx, c.key(created.ID), created); err != nil {
		return nil, c.adapterError(op, "cache", created.ID, err)
	}
	return created, nil
}

// UpdateUser applies the present fields of partial to record id.
func (c *Coordinator) UpdateUser(ctx context.Context, id int64, partial users.PartialUser) (*users.User, error) {
	const op = "updateUser"

	if err := users.ValidatePartial(partial); err != nil {
		return nil, err
	}

	updated, err := c.store.UpdatePartial(ctx, id, partial)
	if err != nil {
		if users.IsClientError(err) || users.IsConflict(err) {
			return nil, err
		}
		return nil, c.adapterError(op, "storage", id, err)
	}

	return c.refresh(ctx, op, id, updated)
}

// ReplaceUser overwrites record id with user.
func (c *Coordinator) ReplaceUser(ctx context.Context, id int64, user users.User) (*users.User, error) {
	const op = "replaceUser"

	if err := users.ValidateUser(user); err != nil {
		return nil, err
	}

	replaced, err := c.store.Replace(ctx, id, user)
	if err != nil {
		if users.IsConflict(err) {
			return nil, err
		}
		return nil, c.adapterError(op, "storage", id, err)
	}

	return c.refresh(ctx, op, id, replaced)
}

// DelUser drops the cache entry for id and deletes the record. It returns
// the deleted record, or nil when there was none.
func (c *Coordinator) DelUser(ctx context.Context, id int64) (*users.User, error) {
	const op = "delUser"

	if err := c.cache.Delete(ctx, c.key(id)); err != nil {
		return nil, c.adapterError(op, "cache", id, err)
	}

	deleted, err := c.store.DeleteByID(ctx, id)
	if err != nil {
		return nil, c.adapterError(op, "storage", id, err)
	}
	return deleted, nil
}

// refresh writes u to the cache unless the store matched no row.
func (c *Coordinator) refresh(ctx context.Context, op string, id int64, u *users.User) (*users.User, error) {
	if u == nil {
		return nil, nil
	}
	if err := c.cache.Set(ctx, c.key(id), u); err != nil {
		return nil, c.adapterError(op, "cache", id, err)
	}
	return u, nil
}

func (c *Coordinator) key(id int64) string {
	return c.keys.SerializeKey(cache.UserNamespace, id)
}

func (c *Coordinator) adapterError(op, adapter string, id int64, err error) error {
	code := faults.Classify(err)
	entry := c.logger.WithFields(logrus.Fields{
		"operation": op,
		"adapter":   adapter,
		"code":      string(code),
	})
	if id != 0 {
		entry = entry.WithField("id", id)
	}
	entry.WithError(err).Error(faults.Message(code))
	return err
}
