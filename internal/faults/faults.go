// Package faults classifies adapter failures into stable codes for logging.
package faults

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/goliatone/go-user-records/internal/cacheinfra"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Code names a recognized failure.
type Code string

const (
	RedisConnectionClosed        Code = "redis_connection_closed"
	RedisAuthenticationFailed    Code = "redis_authentication_failed"
	PostgresConnectionClosed     Code = "postgres_connection_closed"
	PostgresAuthenticationFailed Code = "postgres_authentication_failed"
	ConnectionTimeout            Code = "connection_timeout"
	Unknown                      Code = "unknown"
)

var messages = map[Code]string{
	RedisConnectionClosed:        "Redis connection was closed",
	RedisAuthenticationFailed:    "Redis authentication failed",
	PostgresConnectionClosed:     "Database connection was closed",
	PostgresAuthenticationFailed: "Database authentication failed",
	ConnectionTimeout:            "Connection timed out",
	Unknown:                      "Unexpected error",
}

// Message returns the human readable text for code.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}

// Classify returns the code of the first recognized failure in err's chain.
func Classify(err error) Code {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, redis.ErrClosed) || errors.Is(err, cacheinfra.ErrClosed) {
		return RedisConnectionClosed
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "28P01" || pqErr.Code == "28000":
			return PostgresAuthenticationFailed
		case pqErr.Code == "57P01" || pqErr.Code.Class() == "08":
			return PostgresConnectionClosed
		}
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return PostgresConnectionClosed
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ConnectionTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ConnectionTimeout
	}

	msg := err.Error()
	if strings.Contains(msg, "NOAUTH") || strings.Contains(msg, "WRONGPASS") {
		return RedisAuthenticationFailed
	}

	return Unknown
}
