package fetcher

import "context"

// Extractor is the core interface that price sources must implement.
// Each extractor knows how to turn a coin identifier into a normalized
// price record by fetching and parsing some upstream document.
type Extractor interface {
	// Extract looks up the current price for identifier.
	// Exactly one of the returned values is non-nil. Failures are always
	// reported as *ExtractionFailure.
	Extract(ctx context.Context, identifier string) (*PriceRecord, error)

	// Source returns a short name for the upstream source, e.g. "coingecko".
	Source() string
}
