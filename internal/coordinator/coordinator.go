package coordinator

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"

	"cryptoprice/internal/fetcher"
)

// DefaultConcurrency is the number of extractions a batch runs at once
const DefaultConcurrency = 4

// Coordinator runs one extraction per identifier and aggregates results
type Coordinator struct {
	extractor   fetcher.Extractor
	concurrency int
}

// New creates a new Coordinator around the given extractor.
// A concurrency below 1 falls back to DefaultConcurrency; 1 runs the
// extractions sequentially.
func New(extractor fetcher.Extractor, concurrency int) *Coordinator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Coordinator{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// Run extracts every identifier and returns one Result per identifier,
// in the same order. A failing identifier never affects the others.
func (c *Coordinator) Run(ctx context.Context, identifiers []string) []fetcher.Result {
	mapper := iter.Mapper[string, fetcher.Result]{MaxGoroutines: c.concurrency}

	return mapper.Map(identifiers, func(identifier *string) fetcher.Result {
		record, err := c.extractor.Extract(ctx, *identifier)
		if err != nil {
			logrus.WithError(err).
				WithField("source", c.extractor.Source()).
				Warnf("Failed to get price for %q", *identifier)
		}

		return fetcher.Result{
			Identifier: *identifier,
			Record:     record,
			Err:        err,
		}
	})
}
