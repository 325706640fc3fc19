package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-user-records/internal/config"
	"github.com/goliatone/go-user-records/pkg/di"
)

var errUnhealthy = errors.New("one or more adapters are down")

func rootCmd(env config.LookupFunc) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "usersvc",
		Short: "User records API with a cache-aside read path",
		Long: `usersvc serves CRUD over user records kept in a relational store,
with a Redis or in-memory cache in front of reads.

Configuration is read from an optional YAML or TOML file and then
overridden by DATABASE_URL, DATABASE_DRIVER, REDIS_URL, LOG_LEVEL and PORT.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or TOML config file")

	load := func() (*do.RootScope, *di.Container, error) {
		cfg, err := config.LoadWithEnv(configPath, env)
		if err != nil {
			return nil, nil, err
		}
		injector := newInjector(cfg)
		container, err := do.Invoke[*di.Container](injector)
		if err != nil {
			return nil, nil, err
		}
		return injector, container, nil
	}

	cmd.AddCommand(
		serveCmd(load),
		checkCmd(load),
		schemaCmd(load),
	)

	return cmd
}

type loader func() (*do.RootScope, *di.Container, error)

func serveCmd(load loader) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			injector, container, err := load()
			if err != nil {
				return err
			}
			defer container.Close()

			if migrate {
				if err := container.EnsureSchema(cmd.Context()); err != nil {
					return err
				}
			}

			server, err := do.Invoke[*http.Server](injector)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), server, container)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create missing tables before serving")

	return cmd
}

func serve(ctx context.Context, server *http.Server, container *di.Container) error {
	logger := container.Logger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", server.Addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), container.Config().HTTP.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func checkCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the cache and the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, container, err := load()
			if err != nil {
				return err
			}
			defer container.Close()

			return check(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func check(ctx context.Context, out io.Writer, container *di.Container) error {
	var cacheUp, storeUp bool

	var g errgroup.Group
	g.Go(func() error {
		cacheUp = container.CacheService().Check(ctx)
		return nil
	})
	g.Go(func() error {
		storeUp = container.Store().Check(ctx)
		return nil
	})
	_ = g.Wait()

	fmt.Fprintf(out, "cache: %s\n", status(cacheUp))
	fmt.Fprintf(out, "database: %s\n", status(storeUp))

	if !cacheUp || !storeUp {
		return errUnhealthy
	}
	return nil
}

func status(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

func schemaCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the users, cities and countries tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, container, err := load()
			if err != nil {
				return err
			}
			defer container.Close()

			if err := container.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
