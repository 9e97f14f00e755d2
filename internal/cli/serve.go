package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/L1nMay/vulnassess/internal/assessment"
	"github.com/L1nMay/vulnassess/internal/events"
	"github.com/L1nMay/vulnassess/internal/fixtures"
	"github.com/L1nMay/vulnassess/internal/logger"
	"github.com/L1nMay/vulnassess/internal/notifier"
	"github.com/L1nMay/vulnassess/internal/storage"
	"github.com/L1nMay/vulnassess/internal/webui"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the assessment API",
		Long: `Start the HTTP API used by the dashboard.

Endpoints:
  POST /api/assessment          resolve a target and return mock results
  POST /api/vulnerabilities     look up fixture CVEs by device type
  POST /api/cpe-mapping         look up fixture CPE rows by device type
  GET  /api/assessments         recent assessment history
  GET  /api/stats               history totals
  GET  /api/assessment/stream   live assessment feed (SSE)
  GET  /api/health              liveness`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	f := cmd.Flags()
	f.StringP("listen", "l", "", "Listen address (default 127.0.0.1:5173)")
	f.String("fixtures", "", "YAML fixtures file replacing the built-in dataset")
	f.Int("demo-latency", 0, "Artificial API latency in milliseconds")
	for _, name := range []string{"listen", "fixtures", "demo-latency"} {
		_ = v.BindPFlag(name, f.Lookup(name))
	}
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	logger.SetDebug(cfg.Debug)

	ds, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := webui.NewServer(cfg, assessment.NewComposer(ds), store, events.NewHub(), notifier.New(cfg.Telegram))

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	color.New(color.FgCyan, color.Bold).Printf("Vulnerability assessment demo service started: http://%s\n", cfg.Listen)
	logger.Infof("Web UI listening on http://%s", cfg.Listen)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web ui server error: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
