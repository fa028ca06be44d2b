// Package service runs one scrape of a report from fetch to persisted document.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/wclscrape/internal/adapters/storage"
	"github.com/okian/wclscrape/internal/domain/document"
	"github.com/okian/wclscrape/internal/domain/model"
	"github.com/okian/wclscrape/internal/domain/roster"
	"github.com/okian/wclscrape/internal/domain/segment"
	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
)

const (
	tracerName = "github.com/okian/wclscrape/internal/app"

	// QualityNoEncounters is reported when a report has no encounter fights.
	QualityNoEncounters = "no_encounters"
)

// SessionFetcher loads report metadata.
type SessionFetcher interface {
	FetchSession(ctx context.Context, code string) (model.Session, error)
}

// Enricher produces one record per selected segment.
type Enricher interface {
	EnrichAll(ctx context.Context, code string, segments []model.Segment, r roster.Roster) []model.Record
}

// Result summarizes a finished run.
type Result struct {
	RunID    string
	Title    string
	Path     string
	Mirrors  []string
	Records  int
	Failed   int
	Segments int
	Written  bool
}

// Service wires the scrape pipeline. It holds no state between runs.
type Service struct {
	fetcher  SessionFetcher
	enricher Enricher
	sink     storage.Sink
	mirrors  []storage.Sink
	code     string
	now      func() time.Time
	location *time.Location
	logger   logger.Logger
	metrics  *metrics.Manager
	tracer   trace.Tracer
}

// New constructs a Service scraping report code.
func New(fetcher SessionFetcher, enricher Enricher, sink storage.Sink, code string, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		enricher: enricher,
		sink:     sink,
		code:     code,
		now:      time.Now,
		location: time.Local,
		logger:   logger.Nop(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run fetches the report, enriches its encounter fights and writes the
// document. A report without encounter fights is not an error; nothing is
// written. Session fetch failures and primary sink failures are returned.
func (s *Service) Run(ctx context.Context) (res Result, err error) {
	res.RunID = uuid.NewString()
	log := s.logger.With(logger.String("run_id", res.RunID), logger.String("report", s.code))

	ctx, span := s.tracer.Start(ctx, "scrape.run", trace.WithAttributes(
		attribute.String("run.id", res.RunID),
		attribute.String("report.code", s.code),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRun(time.Since(start), err == nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	log.Info(ctx, "fetching report")
	session, err := s.fetcher.FetchSession(ctx, s.code)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrFetchSession, err)
	}
	res.Title = session.Title

	segments := segment.Select(session.Segments)
	res.Segments = len(segments)
	s.metrics.RecordSegments(len(session.Segments), len(segments))
	log.Info(ctx, "report loaded",
		logger.String("title", session.Title),
		logger.Int("fights", len(session.Segments)),
		logger.Int("encounters", len(segments)),
		logger.Int("participants", len(session.Participants)),
	)

	if len(segments) == 0 {
		log.Warn(ctx, "no encounter fights found; nothing written")
		s.metrics.RecordDataQuality(QualityNoEncounters)
		return res, nil
	}

	records := s.enricher.EnrichAll(ctx, s.code, segments, roster.Build(session.Participants))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
	}
	res.Records = len(records)
	for _, r := range records {
		if r.Failed {
			res.Failed++
		}
	}

	doc := document.Assemble(session.Title, s.now().In(s.location), records)
	data, err := doc.Encode()
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	path, err := s.sink.Write(ctx, doc.FileName, data)
	if err != nil {
		s.metrics.RecordSinkError(s.sink.Name())
		return res, err
	}
	s.metrics.RecordDocumentWritten(s.sink.Name())
	res.Path = path
	res.Written = true

	for _, m := range s.mirrors {
		loc, mErr := m.Write(ctx, doc.FileName, data)
		if mErr != nil {
			log.Warn(ctx, "mirror write failed", logger.String("sink", m.Name()), logger.Error(mErr))
			s.metrics.RecordSinkError(m.Name())
			continue
		}
		s.metrics.RecordDocumentWritten(m.Name())
		res.Mirrors = append(res.Mirrors, loc)
	}

	log.Info(ctx, "fights written",
		logger.String("path", path),
		logger.Int("records", res.Records),
		logger.Int("failed", res.Failed),
	)
	return res, nil
}

// IsCanceled reports whether err came from a canceled run.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
