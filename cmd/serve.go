// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/bookverse/bookverse-core/internal/config"
	"github.com/bookverse/bookverse-core/internal/db"
	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring/prometheus"
	"github.com/bookverse/bookverse-core/internal/tracing"
	"github.com/bookverse/bookverse-core/pkg/authentication"
	"github.com/bookverse/bookverse-core/pkg/status"
	"github.com/bookverse/bookverse-core/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("bookverse-core", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	readinessChecks := make([]status.ReadinessCheck, 0)
	if specs.DSN != "" {
		dbConfig := db.Config{
			DSN:             specs.DSN,
			MaxConns:        specs.DBMaxConns,
			MinConns:        specs.DBMinConns,
			MaxConnLifetime: time.Duration(specs.DBMaxConnLifetime) * time.Second,
			MaxConnIdleTime: time.Duration(specs.DBMaxConnIdleTime) * time.Second,
			TracingEnabled:  specs.TracingEnabled,
		}
		dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to create database client: %v", err)
		}
		defer dbClient.Close()

		readinessChecks = append(readinessChecks, func(r *http.Request) error {
			return dbClient.Ping(r.Context())
		})
	}

	authConfig := authentication.NewConfig(
		specs.OIDCAuthority,
		specs.OIDCAudience,
		specs.JWTAlgorithm,
		specs.RequiredScope,
		specs.JWKSCacheDuration,
		specs.AuthEnabled,
		specs.DevelopmentMode,
	)
	jwtVerifier, err := authentication.NewAuthenticator(authConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to setup JWT authenticator: %v", err)
	}

	router := web.NewRouter(jwtVerifier, readinessChecks, tracer, monitor, logger)
	logger.Infof("Starting server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
