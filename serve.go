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

	"eve-navigator/internal/api"
	"eve-navigator/internal/dataset"
	"eve-navigator/internal/db"
	"eve-navigator/internal/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the HTTP query API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				cfg.Listen = listen
			}
			return runServe()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	return cmd
}

func runServe() error {
	logger.Banner(version)

	var registry *db.Registry
	if cfg.RegistryPath != "" {
		r, err := db.Open(cfg.RegistryPath)
		if err != nil {
			return err
		}
		registry = r
		defer registry.Close()
	}

	data, loadedPath, err := loadWithFallback(registry)
	if err != nil {
		return err
	}
	recordGood(registry, data, loadedPath)

	server := api.NewServer(cfg)
	server.SetDataset(data)

	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Server(cfg.Listen)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Server", "Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// loadWithFallback loads the configured dataset; when that fails and the
// registry holds a known-good prior version, it boots from that instead of
// refusing to start.
func loadWithFallback(registry *db.Registry) (*dataset.Data, string, error) {
	data, err := dataset.Load(cfg.DatasetPath, cfg.ManifestPath)
	if err == nil {
		return data, cfg.DatasetPath, nil
	}
	if registry == nil || !cfg.FallbackToLastGood {
		return nil, "", err
	}
	logger.Warn("Dataset", fmt.Sprintf("Load failed (%v), trying last known-good version", err))

	last, lastErr := registry.LastGood()
	if lastErr != nil {
		logger.Error("Dataset", lastErr.Error())
		return nil, "", err
	}
	if last.Path == cfg.DatasetPath {
		// The recorded version is the file that just failed; nothing to fall
		// back to.
		return nil, "", err
	}
	data, fallbackErr := dataset.Load(last.Path, "")
	if fallbackErr != nil {
		logger.Error("Dataset", fallbackErr.Error())
		return nil, "", err
	}
	logger.Warn("Dataset", fmt.Sprintf("Serving prior dataset %s (recorded %s)", last.Path, last.RecordedAt.Format(time.RFC3339)))
	return data, last.Path, nil
}

func recordGood(registry *db.Registry, data *dataset.Data, path string) {
	if registry == nil {
		return
	}
	u := data.Universe
	err := registry.RecordGood(db.Version{
		Path:          path,
		SHA256:        data.Checksum,
		SchemaVersion: data.SchemaVersion,
		Systems:       u.Len(),
		Links:         u.Links(),
		Borders:       u.Borders(),
	})
	if err != nil {
		logger.Warn("DB", err.Error())
	}
}
