package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

// QueryHook logs every statement bun executes.
type QueryHook struct {
	logger logrus.FieldLogger
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook returns a hook logging statements at debug level and
// failures other than sql.ErrNoRows at warn level.
func NewQueryHook(logger logrus.FieldLogger) *QueryHook {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &QueryHook{logger: logger}
}

// BeforeQuery implements bun.QueryHook. It leaves the context unchanged.
func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook and logs the finished statement.
func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	entry := h.logger.WithFields(logrus.Fields{
		"operation": event.Operation(),
		"duration":  time.Since(event.StartTime).String(),
		"query":     event.Query,
	})

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		entry.WithError(event.Err).Warn("query failed")
		return
	}
	entry.Debug("query")
}
