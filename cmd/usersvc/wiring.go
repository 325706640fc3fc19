package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	do "github.com/samber/do/v2"

	"github.com/goliatone/go-user-records/internal/config"
	"github.com/goliatone/go-user-records/internal/httpapi"
	"github.com/goliatone/go-user-records/pkg/di"
)

const readHeaderTimeout = 10 * time.Second

var Package = do.Package(
	do.Lazy[*di.Container](NewContainer),
	do.Lazy[*gin.Engine](NewEngine),
	do.Lazy[*http.Server](NewHTTPServer),
)

func newInjector(cfg config.Config) *do.RootScope {
	injector := do.New(Package)
	do.ProvideValue(injector, cfg)
	return injector
}

// NewContainer opens both adapters from the provided configuration.
func NewContainer(i do.Injector) (*di.Container, error) {
	cfg := do.MustInvoke[config.Config](i)

	container, err := di.NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}
	return container, nil
}

// NewEngine mounts the records API on a gin engine.
func NewEngine(i do.Injector) (*gin.Engine, error) {
	container := do.MustInvoke[*di.Container](i)
	logger := container.Logger().WithField("component", "http")

	return httpapi.NewEngine(container.Coordinator(), logger), nil
}

// NewHTTPServer creates the listener for the engine.
func NewHTTPServer(i do.Injector) (*http.Server, error) {
	cfg := do.MustInvoke[config.Config](i)
	engine := do.MustInvoke[*gin.Engine](i)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           engine,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}
