package solanatracker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UpstreamError describes a failed SolanaTracker call. StatusCode is zero
// for transport failures.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solanatracker request failed: %v", e.Err)
	}
	return fmt.Sprintf("solanatracker returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Details is the text echoed to proxy callers
func (e *UpstreamError) Details() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Body
}

// Client talks to the SolanaTracker data API. Outbound calls share a
// token bucket so the API key quota is not exhausted.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a new SolanaTracker client using apiKey
func NewClient(cfg config.SolanaTrackerConfig, apiKey string, logger *zap.Logger) *Client {
	limit := rate.Limit(cfg.RateLimitRPS)
	if cfg.RateLimitRPS <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		client:  &fasthttp.Client{Name: "ivg-dashboard"},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  apiKey,
		timeout: cfg.RequestTimeout,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.Named("solanatracker"),
	}
}

// FetchPnlRaw performs GET {base}/pnl/{wallet} with the x-api-key header
// and returns the body of a 2xx response
func (c *Client) FetchPnlRaw(ctx context.Context, wallet string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/pnl/%s", c.baseURL, url.PathEscape(wallet))

	// waiting is bounded by ctx; it is not a retry
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("rate limiter: %w", err)}
	}

	start := time.Now()
	body, err := c.get(ctx, requestURL)
	observability.ObserveUpstream(observability.SourceSolanaTracker, start, err)
	if err != nil {
		c.logger.Warn("SolanaTracker request failed", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("SolanaTracker response received", zap.String("wallet", wallet), zap.Int("bytes", len(body)))
	return body, nil
}

// FetchPnl fetches and decodes the wallet PnL document
func (c *Client) FetchPnl(ctx context.Context, wallet string) (*entities.WalletPnl, error) {
	body, err := c.FetchPnlRaw(ctx, wallet)
	if err != nil {
		return nil, err
	}
	return DecodePnl(body)
}

// get performs one GET. fasthttp only honours deadlines: a ctx deadline
// bounds the call, but cancelling ctx does not abort a request in flight.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UpstreamError{Err: err}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	body := append([]byte(nil), resp.Body()...)

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, &UpstreamError{StatusCode: status, Body: string(body)}
	}
	return body, nil
}

// DecodePnl decodes a PnL body. The body must be a JSON object; fields
// with unexpected types are left absent.
func DecodePnl(body []byte) (*entities.WalletPnl, error) {
	if !json.Valid(body) || !entities.IsObject(body) {
		return nil, errors.New("failed to decode solanatracker response: body is not a JSON object")
	}
	var pnl entities.WalletPnl
	if err := json.Unmarshal(body, &pnl); err != nil {
		return nil, fmt.Errorf("failed to decode solanatracker response: %w", err)
	}
	return &pnl, nil
}

// ValidJSON reports whether body is a well-formed JSON document
func ValidJSON(body []byte) bool {
	return json.Valid(body)
}
