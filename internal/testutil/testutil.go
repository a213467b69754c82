package testutil

import (
	"context"
	"fmt"
	"strings"

	"cryptoprice/internal/fetcher"
)

// MockExtractor is a mock implementation of the Extractor interface for testing
type MockExtractor struct {
	ExtractFunc func(ctx context.Context, identifier string) (*fetcher.PriceRecord, error)
	SourceName  string
}

// Extract implements the Extractor interface
func (m *MockExtractor) Extract(ctx context.Context, identifier string) (*fetcher.PriceRecord, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, identifier)
	}
	return nil, fetcher.NewNoDataError(identifier)
}

// Source implements the Extractor interface
func (m *MockExtractor) Source() string {
	if m.SourceName != "" {
		return m.SourceName
	}
	return "mock"
}

// NewMockExtractor creates a mock extractor that serves records from a map.
// Identifiers missing from records fail with a no-data failure.
func NewMockExtractor(records map[string]*fetcher.PriceRecord) *MockExtractor {
	return &MockExtractor{
		ExtractFunc: func(ctx context.Context, identifier string) (*fetcher.PriceRecord, error) {
			if record, ok := records[identifier]; ok {
				return record, nil
			}
			return nil, fetcher.NewNoDataError(identifier)
		},
	}
}

// Record builds a fully populated PriceRecord
func Record(name, symbol, price, quoteCurrency string) *fetcher.PriceRecord {
	return &fetcher.PriceRecord{
		Name:          &name,
		Symbol:        &symbol,
		Price:         &price,
		QuoteCurrency: &quoteCurrency,
	}
}

// JSONLD wraps body in a JSON-LD script element
func JSONLD(body string) string {
	return `<script type="application/ld+json">` + body + `</script>`
}

// ExchangeRateBlock renders a JSON-LD ExchangeRateSpecification object.
// price is inserted verbatim, so pass `"123.4"` for a string or `123.4` for a number.
func ExchangeRateBlock(name, currency, price, priceCurrency string) string {
	return fmt.Sprintf(`{
		"@context": "https://schema.org/",
		"@type": "ExchangeRateSpecification",
		"name": %q,
		"url": "https://www.coingecko.com/en/coins/x",
		"currency": %q,
		"currentExchangeRate": {
			"@type": "UnitPriceSpecification",
			"price": %s,
			"priceCurrency": %q
		}
	}`, name, currency, price, priceCurrency)
}

// Page renders an HTML page with the given fragments inside <head>
func Page(fragments ...string) string {
	return `<!DOCTYPE html><html><head><title>coin</title>` +
		strings.Join(fragments, "\n") +
		`</head><body><h1>coin</h1></body></html>`
}
