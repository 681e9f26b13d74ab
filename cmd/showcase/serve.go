package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/internal/greeting"
	"showcase/internal/playlist"
	"showcase/internal/server"
)

const shutdownTimeout = 10 * time.Second

// serveCmd serves the site, the playlist API and baked-on-request pages.
func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and the carousel API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if fi, err := os.Stat(cfg.Site.Root); err != nil || !fi.IsDir() {
				return fmt.Errorf("invalid site root: %s", cfg.Site.Root)
			}

			res, cache, err := newResolver(cfg, logger, serveCacheOptions(cfg)...)
			if err != nil {
				return err
			}
			srv := server.New(server.Options{
				Root:           cfg.Site.Root,
				Resolver:       res,
				Cache:          cache,
				AssetBase:      cfg.Naming.Base,
				Lightbox:       cfg.Carousel.Lightbox,
				Hero:           cfg.Carousel.Hero,
				SwipeThreshold: cfg.Carousel.SwipeThreshold,
				Greetings:      greeting.NewStore(cfg.Greeting.StatePath),
				Logger:         logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// --- Screenshot watcher ---
			if cfg.Server.Watch {
				w, err := playlist.NewWatcher(cfg.ImagesPath(), srv.Refresh, logger)
				if err != nil {
					return fmt.Errorf("watcher init: %w", err)
				}
				defer w.Stop()
				go func() {
					if err := w.Start(ctx); err != nil {
						logger.Warn("watcher stopped", zap.Error(err))
					}
				}()
			}

			httpSrv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadTimeout:       10 * time.Second,
				ReadHeaderTimeout: 5 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("root", cfg.Site.Root))
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// --- Graceful Shutdown ---
			select {
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("listen: %w", err)
				}
			}

			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(sctx); err != nil {
				logger.Warn("graceful shutdown failed", zap.Error(err))
				_ = httpSrv.Close()
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
