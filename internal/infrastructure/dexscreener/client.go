package dexscreener

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UpstreamError describes a failed DexScreener call. StatusCode is zero
// for transport failures.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dexscreener request failed: %v", e.Err)
	}
	return fmt.Sprintf("dexscreener returned status %d: %s", e.StatusCode, e.Body)
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

// Client talks to the DexScreener token-pairs API
type Client struct {
	client  *fasthttp.Client
	baseURL string
	chainID string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new DexScreener client
func NewClient(cfg config.DexScreenerConfig, logger *zap.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{Name: "ivg-dashboard"},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		chainID: cfg.ChainID,
		timeout: cfg.RequestTimeout,
		logger:  logger.Named("dexscreener"),
	}
}

// FetchPairsRaw performs GET {base}/token-pairs/v1/{chain}/{mint} and
// returns the body of a 2xx response
func (c *Client) FetchPairsRaw(ctx context.Context, mint string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/token-pairs/v1/%s/%s", c.baseURL, c.chainID, url.PathEscape(mint))
	start := time.Now()

	body, err := c.get(ctx, requestURL)
	observability.ObserveUpstream(observability.SourceDexScreener, start, err)
	if err != nil {
		c.logger.Warn("DexScreener request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("DexScreener response received", zap.String("url", requestURL), zap.Int("bytes", len(body)))
	return body, nil
}

// FetchPairs fetches and decodes the pairs for mint
func (c *Client) FetchPairs(ctx context.Context, mint string) ([]entities.MarketPair, error) {
	body, err := c.FetchPairsRaw(ctx, mint)
	if err != nil {
		return nil, err
	}
	return DecodePairs(body)
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

	// resp is released on return
	body := append([]byte(nil), resp.Body()...)

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, &UpstreamError{StatusCode: status, Body: string(body)}
	}
	return body, nil
}

// DecodeRawPairs returns the pair objects of a token-pairs body untouched.
// Both a bare array and a {"pairs": [...]} wrapper are accepted.
func DecodeRawPairs(body []byte) ([]jsoniter.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty dexscreener response")
	}

	var pairs []jsoniter.RawMessage
	if trimmed[0] == '{' {
		var wrapper struct {
			Pairs []jsoniter.RawMessage `json:"pairs"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode dexscreener response: %w", err)
		}
		pairs = wrapper.Pairs
	} else if err := json.Unmarshal(trimmed, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode dexscreener response: %w", err)
	}

	if pairs == nil {
		pairs = []jsoniter.RawMessage{}
	}
	return pairs, nil
}

// DecodePairs decodes a token-pairs body into MarketPair values. Entries
// that are not JSON objects are skipped; malformed fields inside a pair
// are left absent.
func DecodePairs(body []byte) ([]entities.MarketPair, error) {
	raw, err := DecodeRawPairs(body)
	if err != nil {
		return nil, err
	}

	pairs := make([]entities.MarketPair, 0, len(raw))
	for _, item := range raw {
		if !entities.IsObject(item) {
			continue
		}
		var pair entities.MarketPair
		if err := json.Unmarshal(item, &pair); err != nil {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
