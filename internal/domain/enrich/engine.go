// Package enrich attaches sampled death telemetry to selected fights.
package enrich

import (
	"context"
	"time"

	"github.com/okian/wclscrape/internal/domain/model"
	"github.com/okian/wclscrape/internal/domain/roster"
	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
)

// Default enrichment parameters.
const (
	DefaultPageLimit  = 500
	DefaultSampleSize = 3
	DefaultWindow     = 5 * time.Second
)

// Data quality kinds reported to metrics.
const (
	QualityMissingStart  = "missing_start_time"
	QualityNegativeTime  = "death_before_start"
	QualityUnknownPlayer = "unknown_player"
	QualityNoDeaths      = "no_deaths"
	QualityFetchFailed   = "death_fetch_failed"
	QualityTruncatedFeed = "truncated_feed"
)

// Fetcher retrieves one page of death events for a fight.
type Fetcher interface {
	FetchDeaths(ctx context.Context, code string, fightID, limit int) (model.DeathPage, error)
}

// Runner executes n independent jobs. Implementations may run jobs
// concurrently; each job writes only its own result slot.
type Runner interface {
	Run(ctx context.Context, n int, job func(ctx context.Context, i int))
}

// sequential runs jobs one after another on the calling goroutine.
type sequential struct{}

func (sequential) Run(ctx context.Context, n int, job func(ctx context.Context, i int)) {
	for i := 0; i < n; i++ {
		job(ctx, i)
	}
}

// Engine turns selected segments into records.
type Engine struct {
	fetcher   Fetcher
	siteURL   string
	pageLimit int
	sample    int
	window    time.Duration
	runner    Runner
	logger    logger.Logger
	metrics   *metrics.Manager
}

// NewEngine creates an Engine reading deaths from fetcher and linking to siteURL.
func NewEngine(fetcher Fetcher, siteURL string, opts ...Option) *Engine {
	e := &Engine{
		fetcher:   fetcher,
		siteURL:   siteURL,
		pageLimit: DefaultPageLimit,
		sample:    DefaultSampleSize,
		window:    DefaultWindow,
		runner:    sequential{},
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnrichAll returns one record per segment, in segment order. A failure on
// one segment never affects the others.
func (e *Engine) EnrichAll(ctx context.Context, code string, segments []model.Segment, r roster.Roster) []model.Record {
	records := make([]model.Record, len(segments))
	e.runner.Run(ctx, len(segments), func(ctx context.Context, i int) {
		records[i] = e.Enrich(ctx, code, segments[i], r)
	})
	return records
}

// Enrich fetches the first page of deaths for seg and builds its record.
func (e *Engine) Enrich(ctx context.Context, code string, seg model.Segment, r roster.Roster) model.Record {
	log := e.logger.With(logger.Int("fight", seg.ID), logger.String("boss", seg.Name))

	rec := model.Record{
		SegmentID:  seg.ID,
		SummaryURL: SummaryURL(e.siteURL, code, seg.ID),
		Opponent:   seg.Name,
		Outcome:    model.Outcome{Kill: seg.Kill, Percentage: seg.FightPercentage},
		Deaths:     []model.DeathSummary{},
	}

	page, err := e.fetcher.FetchDeaths(ctx, code, seg.ID, e.pageLimit)
	if err != nil {
		log.Warn(ctx, "could not fetch deaths; keeping fight without deaths", logger.Error(err))
		e.metrics.RecordSegmentFailure()
		e.metrics.RecordDataQuality(QualityFetchFailed)
		rec.Failed = true
		return rec
	}

	if len(page.Events) == 0 {
		log.Warn(ctx, "no deaths recorded for fight")
		e.metrics.RecordDataQuality(QualityNoDeaths)
		e.metrics.RecordDeaths(0, 0)
		return rec
	}
	if page.NextPageTimestamp.Valid() && len(page.Events) >= e.pageLimit {
		e.metrics.RecordDataQuality(QualityTruncatedFeed)
	}

	if !seg.StartTime.Valid() {
		log.Warn(ctx, "fight has no start time; death times are unknown")
		e.metrics.RecordDataQuality(QualityMissingStart)
	}

	events := page.Events
	if len(events) > e.sample {
		events = events[:e.sample]
	}

	for i, ev := range events {
		ordinal := i + 1
		player := r.Name(ev.TargetID)
		if !player.Valid() {
			log.Warn(ctx, "death target is not a known player", logger.Int("target_id", ev.TargetID))
			e.metrics.RecordDataQuality(QualityUnknownPlayer)
		}

		elapsed := Elapsed(seg.StartTime, ev.Timestamp)
		if start, ok := seg.StartTime.Get(); ok && !elapsed.Valid() {
			log.Warn(ctx, "death precedes fight start",
				logger.Int64("start_time", start),
				logger.Int64("timestamp", ev.Timestamp),
			)
			e.metrics.RecordDataQuality(QualityNegativeTime)
		}

		rec.Deaths = append(rec.Deaths, model.DeathSummary{
			Player:  player,
			Elapsed: elapsed,
			URL:     DeathURL(e.siteURL, code, seg.ID, ev.Timestamp, e.window, ordinal),
		})
	}

	e.metrics.RecordDeaths(len(page.Events), len(rec.Deaths))
	log.Debug(ctx, "fight enriched",
		logger.Int("deaths_fetched", len(page.Events)),
		logger.Int("deaths_kept", len(rec.Deaths)),
	)
	return rec
}
