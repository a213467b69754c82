// Package lookup implements the price queries exposed to callers: a single
// lookup, a comma-separated batch lookup, a resource lookup addressed by a
// crypto:// URI and a prompt generator. Every extraction failure is turned
// into text here, so callers only ever receive strings.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"cryptoprice/internal/coordinator"
	"cryptoprice/internal/fetcher"
)

// Placeholder is rendered for any field the source did not provide
const Placeholder = "N/A"

// Service answers price queries using an extractor
type Service struct {
	extractor   fetcher.Extractor
	coordinator *coordinator.Coordinator
}

// NewService creates a Service. concurrency bounds batch lookups.
func NewService(extractor fetcher.Extractor, concurrency int) *Service {
	return &Service{
		extractor:   extractor,
		coordinator: coordinator.New(extractor, concurrency),
	}
}

// Price returns the formatted price line for one identifier, or the
// failure message if the extraction failed.
func (s *Service) Price(ctx context.Context, identifier string) string {
	record, err := s.extractor.Extract(ctx, identifier)
	if err != nil {
		return err.Error()
	}
	return FormatRecord(record)
}

// Prices looks up every comma-separated identifier in ids and returns one
// line per token, in input order. Tokens are trimmed; empty tokens are
// looked up like any other.
func (s *Service) Prices(ctx context.Context, ids string) string {
	results := s.Results(ctx, SplitIdentifiers(ids))

	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, FormatResult(result))
	}
	return strings.Join(lines, "\n")
}

// Results runs the batch lookup and returns the raw results
func (s *Service) Results(ctx context.Context, identifiers []string) []fetcher.Result {
	return s.coordinator.Run(ctx, identifiers)
}

// Resource answers a crypto://{identifier}/price resource read
func (s *Service) Resource(ctx context.Context, uri string) (string, error) {
	identifier, err := ParseResourceURI(uri)
	if err != nil {
		return "", err
	}
	return s.Price(ctx, identifier), nil
}

// Prompt builds the price-check prompt for identifier
func Prompt(identifier string) string {
	return fmt.Sprintf("What is the current price of %s?", identifier)
}

// SplitIdentifiers splits a comma-separated list and trims every token
func SplitIdentifiers(ids string) []string {
	tokens := strings.Split(ids, ",")
	for i, token := range tokens {
		tokens[i] = strings.TrimSpace(token)
	}
	return tokens
}

// FormatRecord renders "{name} ({symbol}): {price} {quoteCurrency}"
func FormatRecord(record *fetcher.PriceRecord) string {
	return fmt.Sprintf("%s (%s): %s %s",
		orPlaceholder(record.Name),
		orPlaceholder(record.Symbol),
		orPlaceholder(record.Price),
		orPlaceholder(record.QuoteCurrency),
	)
}

// FormatResult renders one batch line
func FormatResult(result fetcher.Result) string {
	if result.Err != nil {
		return fmt.Sprintf("%s: %s", result.Identifier, result.Err.Error())
	}
	return FormatRecord(result.Record)
}

func orPlaceholder(s *string) string {
	if s == nil {
		return Placeholder
	}
	return *s
}
