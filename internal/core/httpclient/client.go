package httpclient

import (
	"net/http"
	"time"

	"cargo-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// RayIDHeader carries the server-side request identifier.
const RayIDHeader = "X-Ray-ID"

// LoggingRoundTripper logs outbound requests together with the Ray ID the API answered with.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// UserAgent is set on requests that do not carry one.
	UserAgent string
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	if lrt.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", lrt.UserAgent)
	}

	log := logger.Named("httpclient")
	log.Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.String("ray_id", resp.Header.Get(RayIDHeader)),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied:   http.DefaultTransport,
			UserAgent: userAgent,
		},
		Timeout: timeout,
	}
}
