package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-archive-backend/internal/api/routes"
	"study-archive-backend/internal/auth"
	"study-archive-backend/internal/config"
	"study-archive-backend/internal/database"
	"study-archive-backend/internal/kvstore"
	"study-archive-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var (
	tokenUser string
	tokenTTL  time.Duration

	rootCmd = &cobra.Command{
		Use:          "server",
		Short:        "Study group directory backend",
		SilenceUsage: true,
		RunE:         runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Probe every live group link once and print the report",
		RunE:  runSweep,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token",
		RunE:  runToken,
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "username recorded in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", auth.DefaultTokenTTL, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(serveCmd, sweepCmd, tokenCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Setup(cfg.LogLevel)
	return cfg, nil
}

// openKV opens the directory store. A missing configuration is not fatal: the
// returned store is nil and directory operations report it as unavailable.
func openKV(cfg *config.Config) (kvstore.Store, error) {
	kvCfg := kvstore.DefaultConfig(cfg.KVPath)
	if cfg.KVInMemory {
		kvCfg = kvstore.InMemoryConfig()
	}
	kvCfg.Logger = logrus.WithField("component", "badger")

	store, err := kvstore.Open(kvCfg)
	if errors.Is(err, kvstore.ErrNotConfigured) {
		logrus.Warn("KV_PATH is not set; the group directory is unavailable")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if cfg.KVInMemory {
		logrus.Warn("Using an in-memory key-value store; the directory is lost on restart")
	}
	return store, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kv, err := openKV(cfg)
	if err != nil {
		return fmt.Errorf("failed to open key-value store: %w", err)
	}
	if kv != nil {
		defer kv.Close()
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router, err := routes.SetupRoutes(db, kv, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kv, err := openKV(cfg)
	if err != nil {
		return fmt.Errorf("failed to open key-value store: %w", err)
	}
	if kv == nil {
		return kvstore.ErrNotConfigured
	}
	defer kv.Close()

	sweep, err := routes.NewSweepService(kv, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sweep.Run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg))
	if err != nil {
		return err
	}

	token, err := authService.GenerateJWT(tokenUser, tokenTTL)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
