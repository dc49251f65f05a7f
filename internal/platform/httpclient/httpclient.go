// Package httpclient builds the outbound *http.Client shared by the image job
// client and image downloads.
package httpclient

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// Options tunes the outbound client.
type Options struct {
	// PreferIPv4 forces tcp4 dialing for hosts with broken IPv6 routes.
	PreferIPv4 bool
	// Timeout bounds each request end to end. Zero uses 60s.
	Timeout time.Duration
	// Logger, when set, logs every request at debug level.
	Logger *slog.Logger
}

// New creates an *http.Client with pooled connections and bounded handshakes.
func New(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if opts.PreferIPv4 {
				return dialer.DialContext(ctx, "tcp4", addr)
			}
			return dialer.DialContext(ctx, network, addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if opts.Logger != nil {
		transport = &loggingTransport{next: transport, logger: opts.Logger}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// loggingTransport logs method, host, path, status and latency. Query strings
// are never logged because they can carry API keys.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	attrs := []any{
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		t.logger.DebugContext(req.Context(), "outbound request failed", append(attrs, "error", err.Error())...)
		return nil, err
	}
	t.logger.DebugContext(req.Context(), "outbound request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
