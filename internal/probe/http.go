package probe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single HTTP probe.
const DefaultTimeout = 5 * time.Second

// HTTPChecker probes assets over HTTP. Relative URLs are resolved
// against Base.
type HTTPChecker struct {
	base    *url.URL
	httpCli *http.Client
	log     *zap.Logger
}

// NewHTTPChecker creates a checker for assets served under base.
// A nil client gets one with DefaultTimeout.
func NewHTTPChecker(base string, client *http.Client, logger *zap.Logger) (*HTTPChecker, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPChecker{base: u, httpCli: client, log: logger.Named("probe-http")}, nil
}

// Exists issues a HEAD request, retrying as GET when the server does not
// allow HEAD. Only a 2xx response counts as present.
func (c *HTTPChecker) Exists(ctx context.Context, raw string) bool {
	target, err := c.base.Parse(raw)
	if err != nil {
		c.log.Debug("bad url", zap.String("url", raw), zap.Error(err))
		return false
	}

	code, err := c.do(ctx, http.MethodHead, target.String())
	if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		code, err = c.do(ctx, http.MethodGet, target.String())
	}
	if err != nil {
		c.log.Debug("probe failed", zap.String("url", target.String()), zap.Error(err))
		return false
	}

	ok := code >= 200 && code < 300
	c.log.Debug("probe", zap.String("url", target.String()), zap.Int("status", code), zap.Bool("exists", ok))
	return ok
}

func (c *HTTPChecker) do(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}
	if method == http.MethodGet {
		// Only the status matters; avoid pulling whole screenshots.
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, nil
}
