package fetcher

import (
	"time"

	"github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	// DefaultTimeout bounds a single page fetch
	DefaultTimeout = 20 * time.Second

	// DefaultUserAgent is sent when no user agent is configured
	DefaultUserAgent = "Mozilla/5.0 (compatible; cryptoprice)"

	maxRedirects = 10
)

// ClientOptions configures the shared HTTP client
type ClientOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewHTTPClient creates the HTTP client used for upstream page fetches.
// Each request is attempted exactly once; redirects are followed.
func NewHTTPClient(opts ClientOptions) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetHeader("User-Agent", opts.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetRetryCount(0).
		AddResponseMiddleware(logResponse)

	return client
}

// logResponse logs every upstream response for observability
func logResponse(_ *resty.Client, r *resty.Response) error {
	logrus.WithFields(logrus.Fields{
		"url":     r.Request.URL,
		"status":  r.StatusCode(),
		"elapsed": r.Duration().String(),
	}).Debug("Upstream response received")
	return nil
}
