package coingecko

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"resty.dev/v3"

	"cryptoprice/internal/fetcher"
	"cryptoprice/internal/metrics"
)

const (
	// DefaultBaseURL is the public CoinGecko site
	DefaultBaseURL = "https://www.coingecko.com"

	// SourceName identifies CoinGecko in logs and metrics
	SourceName = "coingecko"

	coinPagePath = "/en/coins/{identifier}"
)

// CoinExtractor reads coin prices from the JSON-LD embedded in CoinGecko
// coin pages.
type CoinExtractor struct {
	client  *resty.Client
	metrics *metrics.Collector
}

// NewCoinExtractor creates a new coin page extractor.
// collector may be nil.
func NewCoinExtractor(opts fetcher.ClientOptions, collector *metrics.Collector) *CoinExtractor {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	return &CoinExtractor{
		client:  fetcher.NewHTTPClient(opts),
		metrics: collector,
	}
}

// Source implements fetcher.Extractor
func (e *CoinExtractor) Source() string {
	return SourceName
}

// Extract fetches the coin page for identifier and extracts its price
func (e *CoinExtractor) Extract(ctx context.Context, identifier string) (*fetcher.PriceRecord, error) {
	start := time.Now()
	record, err := e.extract(ctx, identifier)

	outcome := metrics.OutcomeOK
	entry := logrus.WithFields(logrus.Fields{
		"identifier": identifier,
		"elapsed":    time.Since(start).String(),
	})
	if err != nil {
		outcome = string(fetcher.TypeOf(err))
		entry = entry.WithError(err)
	}
	entry.WithField("outcome", outcome).Debug("Extraction finished")
	e.metrics.ObserveExtraction(SourceName, outcome, time.Since(start))

	return record, err
}

func (e *CoinExtractor) extract(ctx context.Context, identifier string) (*fetcher.PriceRecord, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetPathParam("identifier", identifier).
		Get(coinPagePath)

	if err != nil {
		return nil, fetcher.ClassifyRequestError(identifier, err)
	}

	if resp.StatusCode() != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"identifier": identifier,
			"status":     resp.StatusCode(),
			"class":      fetcher.ClassifyStatus(resp.StatusCode()),
		}).Warn("CoinGecko returned a non-success status")
		return nil, fetcher.NewStatusError(identifier, resp.StatusCode())
	}

	record, err := ExtractFromHTML(bytes.NewReader(resp.Bytes()))
	if err != nil {
		failure := fetcher.NewNoDataError(identifier)
		failure.Cause = err
		return nil, failure
	}

	return record, nil
}
