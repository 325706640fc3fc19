package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goliatone/go-user-records/internal/cacheinfra"
	"github.com/goliatone/go-user-records/users"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func memoryService(t *testing.T, codec string) Service {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Backend = BackendMemory
	cfg.Codec = codec
	cfg.TTL = time.Minute

	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func redisService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.MaxRetries = -1

	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc, mr
}

func sampleUser() *users.User {
	return &users.User{
		ID:      3,
		Name:    "Ann",
		Email:   "ann@example.com",
		Mobile:  "555-0100",
		City:    "Berlin",
		Country: "Germany",
	}
}

func TestService_RoundTrip(t *testing.T) {
	for _, codec := range []string{CodecJSON, CodecMsgpack} {
		t.Run(codec, func(t *testing.T) {
			ctx := context.Background()
			svc := memoryService(t, codec)
			key := UserKey(3)

			got, err := svc.Get(ctx, key)
			if err != nil || got != nil {
				t.Fatalf("expected miss, got %+v err=%v", got, err)
			}

			want := sampleUser()
			if err := svc.Set(ctx, key, want); err != nil {
				t.Fatalf("unexpected set error: %v", err)
			}

			got, err = svc.Get(ctx, key)
			if err != nil {
				t.Fatalf("unexpected get error: %v", err)
			}
			if got == nil || *got != *want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}

			if err := svc.Delete(ctx, key); err != nil {
				t.Fatalf("unexpected delete error: %v", err)
			}
			if got, _ := svc.Get(ctx, key); got != nil {
				t.Errorf("expected miss after delete, got %+v", got)
			}
		})
	}
}

func TestService_SetNilUser(t *testing.T) {
	svc := memoryService(t, CodecJSON)

	if err := svc.Set(context.Background(), UserKey(1), nil); !errors.Is(err, ErrNilUser) {
		t.Errorf("expected ErrNilUser, got %v", err)
	}
}

func TestService_RedisUsesDefaultTTL(t *testing.T) {
	ctx := context.Background()
	svc, mr := redisService(t)

	if err := svc.Set(ctx, UserKey(3), sampleUser()); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if ttl := mr.TTL("user:3"); ttl != 36000*time.Second {
		t.Errorf("expected default TTL of 36000s, got %v", ttl)
	}

	if err := svc.SetWithTTL(ctx, UserKey(4), sampleUser(), time.Minute); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if ttl := mr.TTL("user:4"); ttl != time.Minute {
		t.Errorf("expected override TTL of 1m, got %v", ttl)
	}

	if err := svc.SetWithTTL(ctx, UserKey(5), sampleUser(), 0); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if ttl := mr.TTL("user:5"); ttl != 36000*time.Second {
		t.Errorf("expected non-positive ttl to fall back to default, got %v", ttl)
	}
}

func TestService_RedisStoresJSON(t *testing.T) {
	ctx := context.Background()
	svc, mr := redisService(t)

	_ = svc.Set(ctx, UserKey(3), &users.User{ID: 3, Name: "Ann", Email: "ann@example.com"})

	raw, err := mr.Get("user:3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"id":3,"name":"Ann","email":"ann@example.com"}`
	if raw != want {
		t.Errorf("expected %s, got %s", want, raw)
	}
}

func TestService_DecodeFailurePropagates(t *testing.T) {
	svc, mr := redisService(t)

	_ = mr.Set("user:9", "not json")

	got, err := svc.Get(context.Background(), UserKey(9))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got != nil {
		t.Errorf("expected nil user on error, got %+v", got)
	}
}

func TestService_TransportFailurePropagates(t *testing.T) {
	ctx := context.Background()
	svc, mr := redisService(t)
	mr.SetError("LOADING")

	if _, err := svc.Get(ctx, UserKey(1)); err == nil {
		t.Error("expected get error")
	}
	if err := svc.Set(ctx, UserKey(1), sampleUser()); err == nil {
		t.Error("expected set error")
	}
	if err := svc.Delete(ctx, UserKey(1)); err == nil {
		t.Error("expected delete error")
	}
}

func TestService_Check(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.MaxRetries = -1

	logger, hook := logtest.NewNullLogger()
	svc, err := NewService(cfg, WithLogger(logger))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.Close()

	if !svc.Check(ctx) {
		t.Fatal("expected healthy cache")
	}

	mr.SetError("down")
	if svc.Check(ctx) {
		t.Fatal("expected unhealthy cache")
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log entry, got %+v", entry)
	}
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "unknown codec", mutate: func(c *Config) { c.Codec = "gob" }, field: "Codec"},
		{name: "zero ttl", mutate: func(c *Config) { c.TTL = 0 }, field: "TTL"},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "disk" }, field: "Backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := NewService(cfg)
			var cfgErr *cacheinfra.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected config error, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != BackendRedis {
		t.Errorf("expected redis backend, got %s", cfg.Backend)
	}
	if cfg.Codec != CodecJSON {
		t.Errorf("expected json codec, got %s", cfg.Codec)
	}
	if cfg.TTL != 36000*time.Second {
		t.Errorf("expected TTL 36000s, got %v", cfg.TTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}
