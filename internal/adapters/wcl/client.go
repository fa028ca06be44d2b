// Package wcl talks to the Warcraft Logs v2 GraphQL client endpoint.
package wcl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/wclscrape/internal/domain/model"
	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
)

// Operation names used for logs, metrics and spans.
const (
	OpReport = "report"
	OpDeaths = "deaths"
)

const tracerName = "github.com/okian/wclscrape/internal/adapters/wcl"

// Client issues authenticated GraphQL requests, one round trip per call.
// It never retries.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	timeout    time.Duration
	logger     logger.Logger
	metrics    *metrics.Manager
	tracer     trace.Tracer
}

// NewClient creates a client for endpoint authenticating with a bearer token.
func NewClient(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		token:      token,
		logger:     logger.Nop(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestBody struct {
	Query string `json:"query"`
}

// Do posts query and decodes the response body into out.
func (c *Client) Do(ctx context.Context, op, query string, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "wcl."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		c.metrics.RecordRequest(op, outcome, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	payload, err := json.Marshal(requestBody{Query: query})
	if err != nil {
		outcome = metrics.OutcomeDecode
		return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		outcome = metrics.OutcomeNetwork
		return &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug(ctx, "sending API request", logger.String("op", op), logger.Int("bytes", len(payload)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = metrics.OutcomeNetwork
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeHTTPError
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = metrics.OutcomeDecode
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// FetchSession loads the report title, fights and player roster for code.
// A response without data.reportData.report yields ErrReportNotFound.
func (c *Client) FetchSession(ctx context.Context, code string) (model.Session, error) {
	var env envelope[sessionReport]
	if err := c.Do(ctx, OpReport, SessionQuery(code), &env); err != nil {
		return model.Session{}, err
	}

	report := env.report()
	if report == nil {
		return model.Session{}, notFound(code, env.Errors)
	}
	if len(env.Errors) > 0 {
		c.logger.Warn(ctx, "report returned with API errors", logger.String("errors", env.Errors.String()))
	}
	return report.toModel(code), nil
}

// FetchDeaths loads a single page of death events for fightID. The
// continuation token is returned but never followed. API errors without an
// events object yield ErrFeedRejected.
func (c *Client) FetchDeaths(ctx context.Context, code string, fightID, limit int) (model.DeathPage, error) {
	var env envelope[deathsReport]
	if err := c.Do(ctx, OpDeaths, DeathsQuery(code, fightID, limit), &env); err != nil {
		return model.DeathPage{}, err
	}

	report := env.report()
	if report == nil {
		return model.DeathPage{}, notFound(code, env.Errors)
	}
	if len(env.Errors) > 0 {
		if report.Events == nil {
			return model.DeathPage{}, fmt.Errorf("%w: fight %d: %s", ErrFeedRejected, fightID, env.Errors.String())
		}
		c.logger.Warn(ctx, "death feed returned with API errors",
			logger.Int("fight", fightID),
			logger.String("errors", env.Errors.String()),
		)
	}
	page := report.toModel()
	if next, ok := page.NextPageTimestamp.Get(); ok {
		c.logger.Debug(ctx, "death feed has more pages; not following",
			logger.Int("fight", fightID),
			logger.Int64("next_page_timestamp", next),
		)
	}
	return page, nil
}

func notFound(code string, errs gqlErrors) error {
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrReportNotFound, code, errs.String())
	}
	return fmt.Errorf("%w: %s", ErrReportNotFound, code)
}

// IsTransport reports whether err came from a failed round trip.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
