package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/wclscrape/internal/adapters/storage"
	"github.com/okian/wclscrape/internal/adapters/wcl"
	"github.com/okian/wclscrape/internal/adapters/worker"
	app "github.com/okian/wclscrape/internal/app"
	"github.com/okian/wclscrape/internal/config"
	"github.com/okian/wclscrape/internal/domain/enrich"
	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
	"github.com/okian/wclscrape/pkg/telemetry"
)

const (
	serviceName     = "wclscrape"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		stop()
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Get().Error(ctx, "invalid configuration", logger.Error(err))
		stop()
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		logger.Get().Warn(ctx, "invalid log_format; keeping text", logger.String("log_format", cfg.LogFormat), logger.Error(err))
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	log := logger.Named("wclscrape")

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, serviceName)
	if err != nil {
		log.Warn(ctx, "tracing disabled", logger.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn(ctx, "trace shutdown failed", logger.Error(err))
		}
	}()

	m := metrics.NewManager(metrics.WithConstLabels(map[string]string{"report": cfg.ReportCode}))

	svc, err := buildService(ctx, cfg, log, m)
	if err != nil {
		log.Error(ctx, "failed to build service", logger.Error(err))
		return
	}

	// Failures past this point are logged; the process still exits normally.
	res, err := svc.Run(ctx)
	if err != nil {
		log.Error(ctx, "scrape failed", logger.String("run_id", res.RunID), logger.Error(err))
	} else if res.Written {
		log.Info(ctx, "scrape finished",
			logger.String("run_id", res.RunID),
			logger.String("path", res.Path),
			logger.Int("records", res.Records),
		)
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "failed to write metrics file", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}
}

// buildService wires the API client, enrichment engine and sinks from cfg.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger, m *metrics.Manager) (*app.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	client := wcl.NewClient(cfg.APIURL, cfg.AccessToken,
		wcl.WithTimeout(cfg.RequestTimeout()),
		wcl.WithLogger(logger.Named("wcl")),
		wcl.WithMetrics(m),
	)

	pool := worker.NewPool(cfg.Workers,
		worker.WithLogger(logger.Named("worker")),
		worker.WithMetrics(m),
	)

	engine := enrich.NewEngine(client, cfg.SiteURL,
		enrich.WithPageLimit(cfg.PageLimit),
		enrich.WithSampleSize(cfg.DeathSample),
		enrich.WithWindow(cfg.DeathWindow()),
		enrich.WithRunner(pool),
		enrich.WithLogger(logger.Named("enrich")),
		enrich.WithMetrics(m),
	)

	opts := []app.Option{
		app.WithLogger(logger.Named("service")),
		app.WithMetrics(m),
		app.WithLocation(loc),
	}
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewS3Client(ctx, cfg.S3Region)
		if err != nil {
			log.Warn(ctx, "S3 mirror disabled", logger.Error(err))
		} else {
			opts = append(opts, app.WithMirrors(storage.NewS3Sink(s3Client, cfg.S3Bucket, cfg.S3Prefix)))
		}
	}

	return app.New(client, engine, storage.NewFileSink(cfg.OutputDir), cfg.ReportCode, opts...), nil
}
