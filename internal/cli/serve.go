package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/maxwharris/Produck/internal/config"
	"github.com/maxwharris/Produck/internal/handlers"
	"github.com/maxwharris/Produck/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var (
		port   string
		driver string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, func(cfg *config.Config) {
				if port != "" {
					cfg.Port = port
				}
				if driver != "" {
					cfg.StoreDriver = strings.ToLower(driver)
				}
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&driver, "driver", "", "Store driver: mongo or memory (overrides STORE_DRIVER)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Close(closeCtx); err != nil {
			log.Warnw("store close failed", "error", err)
		}
	}()

	deps := handlers.NewDeps(s, session.NewSigner(cfg.SigningSecret(), cfg.AccessTokenTTL), cfg.PublicDir, log)
	deps.UploadLimitBytes = cfg.UploadLimitBytes()
	deps.CORSOrigins = cfg.CORSOrigins
	deps.AllowClaimedIdentity = cfg.AllowClaimedIdentity
	if cfg.AllowClaimedIdentity {
		log.Warnw("claimed identities are accepted; only expose this server to trusted callers")
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", srv.Addr, "driver", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Infow("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Infow("server stopped")
	return nil
}
