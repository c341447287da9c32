// Command conhost runs the console input host: it attaches to the
// controlling terminal, translates terminal events into input records,
// and drains them through the console input queue, reporting activity
// through structured logs and optional Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/conhost/pkg/backend"
	tcellbackend "github.com/odvcencio/conhost/pkg/backend/tcell"
	"github.com/odvcencio/conhost/pkg/config"
	"github.com/odvcencio/conhost/pkg/console"
	"github.com/odvcencio/conhost/pkg/input"
	"github.com/odvcencio/conhost/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "conhost: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default ~/.conhost/config.yaml)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	var log *logging.Logger
	if cfg.Logging.Dir != "" {
		log, err = logging.NewLogger(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
		if err != nil {
			return err
		}
		defer log.Close()
	}

	queue := input.New(input.Options{
		Capacity:        cfg.Input.BufferSize,
		GrowthIncrement: cfg.Input.GrowthIncrement,
		WaiterLimit:     cfg.Input.WaiterLimit,
	})
	host := console.New(queue, log)

	src, err := tcellbackend.New()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := src.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer src.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if log != nil {
		log.Info(logging.CategoryLifecycle, "started", "", map[string]any{
			"capacity":     cfg.Input.BufferSize,
			"waiter_limit": cfg.Input.WaiterLimit,
		})
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.Metrics.Bind)
		})
	}

	g.Go(func() error {
		return backend.Pump(ctx, src, host)
	})

	g.Go(func() error {
		return drain(ctx, host, log)
	})

	err = g.Wait()
	if log != nil {
		log.Info(logging.CategoryLifecycle, "stopped", "", nil)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// drain consumes queued records in blocking batches. Each batch is
// logged at debug level; the loop ends when ctx is cancelled.
func drain(ctx context.Context, host *console.Console, log *logging.Logger) error {
	dst := make([]input.InputRecord, 32)
	for {
		n, err := host.ReadInput(ctx, dst, input.ReadOptions{}, true)
		if err != nil {
			return err
		}
		if log != nil && n > 0 {
			log.Debug(logging.CategoryAPI, "input_batch", "", map[string]any{
				"records": n,
				"first":   fmt.Sprintf("%#x", dst[0].Type),
			})
		}
	}
}

// serveMetrics exposes the Prometheus registry until ctx is cancelled.
func serveMetrics(ctx context.Context, bind string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: bind, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
