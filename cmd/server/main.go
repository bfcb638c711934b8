// Package main initializes and starts the AVA OLO gatekeeper server,
// setting up configuration, logging, the deployment provenance snapshot,
// the optional field store, and the authenticated HTTP router.
package main

import (
	"cmp"
	"fmt"
	"os"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avaolo/gatekeeper/internal/auth"
	"github.com/avaolo/gatekeeper/internal/config"
	"github.com/avaolo/gatekeeper/internal/db"
	"github.com/avaolo/gatekeeper/internal/logger"
	"github.com/avaolo/gatekeeper/internal/provenance"
	"github.com/avaolo/gatekeeper/internal/repository"
	"github.com/avaolo/gatekeeper/internal/server/handler/http"
	"github.com/avaolo/gatekeeper/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Pick up a local .env before reading configuration.
	_ = godotenv.Load()

	// Parse command-line, config-file, and environment configuration.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Capture deployment provenance once; untrusted deployments are
	// advisory only and never block startup.
	snapshot := provenance.Capture()
	if snapshot.Trusted {
		zapLogger.Info("deployment provenance verified",
			zap.String("commit_sha", snapshot.CommitSHA),
			zap.String("ref", snapshot.Ref),
		)
	} else {
		zapLogger.Warn("deployment provenance unverified",
			zap.String("warning", snapshot.Warning),
		)
	}

	// Build the immutable auth configuration.
	users, err := options.Credentials()
	if err != nil {
		zapLogger.Fatal("cannot parse AUTH_USERS", zap.Error(err))
	}
	if len(users) == 0 {
		zapLogger.Warn("no credentials configured; every protected request will be rejected")
	}
	creds := auth.NewCredentials(users)
	public := auth.NewPublicPaths(options.PublicPaths)

	// Initialize the optional PostgreSQL field store.
	var fieldService http.FieldService
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		fieldRepo := repository.NewPostgresFieldRepository(postgresDB)
		fieldService = service.NewFieldService(fieldRepo)
	} else {
		zapLogger.Warn("no database configured; field endpoints will report unavailable")
	}

	fieldHandler := &http.FieldHandler{FieldService: fieldService}
	deploymentHandler := &http.DeploymentHandler{Snapshot: snapshot}

	// Build the router with middleware and routes.
	router := http.NewRouter(fieldHandler, deploymentHandler, creds, public, options.Realm, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Port),
		zap.Int("accounts", creds.Count()),
		zap.Strings("public_paths", options.PublicPaths),
	)
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
