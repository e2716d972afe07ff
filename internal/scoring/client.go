// internal/scoring/client.go
//
// Client talks to the external scoring service. The service owns the
// arithmetic and the severity thresholds; this package only moves payloads
// across the wire and checks that what comes back has the agreed shape.
//
//	POST {base}/api/score        submission -> ScoreResult
//	GET  {base}/api/assessments  recent assessment summaries
//	GET  {base}/test             system check

package scoring

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kingrea/dass-check/internal/assessment"
	"github.com/kingrea/dass-check/internal/instrument"
)

const (
	PathScore       = "/api/score"
	PathAssessments = "/api/assessments"
	PathSystemCheck = "/test"

	HeaderRequestID = "X-Request-ID"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// SystemStatus is the outcome of a system check.
type SystemStatus struct {
	Reachable bool
	Fields    map[string]string
}

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a zap logger. Nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithLimiter replaces the request pacing limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithRequestIDGenerator overrides how X-Request-ID values are produced.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newRequestID = gen
		}
	}
}

// Client is safe for concurrent use.
type Client struct {
	baseURL      string
	http         *http.Client
	log          *zap.Logger
	limiter      *rate.Limiter
	newRequestID func() string
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: defaultTimeout},
		log:          zap.NewNop(),
		limiter:      rate.NewLimiter(rate.Limit(2), 5),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Score submits one completed answer set and returns the service's result.
func (c *Client) Score(ctx context.Context, payload assessment.SubmissionPayload) (assessment.ScoreResult, error) {
	if len(payload.Answers) != instrument.ItemCount {
		return assessment.ScoreResult{}, fmt.Errorf("%w: %d answers", ErrInvalidPayload, len(payload.Answers))
	}
	for i, v := range payload.Answers {
		if !instrument.Response(v).Valid() {
			return assessment.ScoreResult{}, fmt.Errorf("%w: answer %d = %d", ErrInvalidPayload, i+1, v)
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return assessment.ScoreResult{}, fmt.Errorf("scoring: encode payload: %w", err)
	}

	data, requestID, err := c.do(ctx, http.MethodPost, PathScore, body)
	if err != nil {
		return assessment.ScoreResult{}, err
	}
	result, err := decodeScoreResult(data)
	if err != nil {
		c.log.Error("scoringClient.Score error decoding response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return assessment.ScoreResult{}, err
	}
	c.log.Info("scoringClient.Score succeeded",
		zap.String("request_id", requestID),
		zap.String("assessment_id", result.AssessmentID),
		zap.Int("total_score", result.TotalScore),
	)
	return result, nil
}

// RecentAssessments fetches the recent-assessments list. Elements are
// decoded leniently; only a non-array body fails.
func (c *Client) RecentAssessments(ctx context.Context) ([]assessment.RecentAssessmentSummary, error) {
	data, requestID, err := c.do(ctx, http.MethodGet, PathAssessments, nil)
	if err != nil {
		return nil, err
	}
	summaries, err := decodeSummaries(data)
	if err != nil {
		c.log.Warn("scoringClient.RecentAssessments error decoding response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}
	c.log.Info("scoringClient.RecentAssessments succeeded",
		zap.String("request_id", requestID),
		zap.Int("count", len(summaries)),
	)
	return summaries, nil
}

// SystemCheck probes the service's health endpoint. Reachable is only true
// for a 2xx answer; anything else comes back as an error.
func (c *Client) SystemCheck(ctx context.Context) (SystemStatus, error) {
	data, requestID, err := c.do(ctx, http.MethodGet, PathSystemCheck, nil)
	if err != nil {
		return SystemStatus{Fields: map[string]string{}}, err
	}
	status := SystemStatus{Reachable: true, Fields: decodeStatus(data)}
	c.log.Info("scoringClient.SystemCheck succeeded",
		zap.String("request_id", requestID),
		zap.Int("fields", len(status.Fields)),
	)
	return status, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, string, error) {
	requestID := c.newRequestID()
	started := time.Now()
	c.log.Info("scoringClient request called",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		c.log.Warn("scoringClient request rate limit wait aborted",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, requestID, fmt.Errorf("scoring: %s %s: %w", method, path, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.log.Error("scoringClient error creating HTTP request",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, requestID, fmt.Errorf("scoring: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("scoringClient error sending HTTP request",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return nil, requestID, fmt.Errorf("scoring: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Error("scoringClient error reading response body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, requestID, fmt.Errorf("scoring: read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("scoringClient unexpected status",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(started)),
		)
		return nil, requestID, &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	c.log.Debug("scoringClient response received",
		zap.String("request_id", requestID),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)
	return data, requestID, nil
}
