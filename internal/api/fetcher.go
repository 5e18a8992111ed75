package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bfv-tracker/internal/config"
	"bfv-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const userAgent = "bfv-tracker/1.0"

// Fetcher performs single-attempt GET requests against the upstream
// providers. It owns the process-wide connection pool.
type Fetcher struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  zerolog.Logger
}

func NewFetcher(cfg *config.Config, logger zerolog.Logger) *Fetcher {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = constants.ExternalAPITimeout
	}
	return &Fetcher{
		client: &fasthttp.Client{
			MaxConnsPerHost:     constants.FetchMaxConnsPerHost,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: constants.FetchMaxIdleConnDuration,
		},
		timeout: timeout,
		logger:  logger.With().Str("component", "fetcher").Logger(),
	}
}

// Close releases idle upstream connections.
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}

// Fetch issues one GET for url and decodes the JSON body into T. A non-2xx
// status, transport error, timeout or undecodable body all yield nil.
func Fetch[T any](ctx context.Context, f *Fetcher, url string) *T {
	start := time.Now()

	body, err := f.get(ctx, url)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", url).Dur("elapsed", time.Since(start)).Msg("upstream fetch failed")
		return nil
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		f.logger.Warn().Err(err).Str("url", url).Msg("upstream returned undecodable body")
		return nil
	}

	f.logger.Debug().Str("url", url).Dur("elapsed", time.Since(start)).Msg("upstream fetch succeeded")
	return &result
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetUserAgent(userAgent)

	deadline := time.Now().Add(f.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("upstream status: %d", code)
	}

	// resp is released on return
	return append([]byte(nil), resp.Body()...), nil
}
