package fetcher

// PriceRecord is the normalized outcome of a successful extraction.
// Every field is optional because the upstream block may omit any of them.
type PriceRecord struct {
	// Name is the display name of the asset, e.g. "Bitcoin".
	Name *string

	// Symbol is the ticker of the asset itself, e.g. "BTC".
	Symbol *string

	// Price is the magnitude exactly as the source wrote it, e.g. "67012.5".
	Price *string

	// QuoteCurrency is the currency Price is denominated in, e.g. "USD".
	QuoteCurrency *string
}

// Result represents the outcome of one extraction in a batch.
// It is produced by the coordinator for every requested identifier,
// in the order the identifiers were requested.
type Result struct {
	// Identifier is the coin identifier as it was requested
	Identifier string

	// Record is the extracted price data.
	// If Err is not nil, Record is nil.
	Record *PriceRecord

	// Err contains the failure for this identifier, if any.
	Err error
}

// OK reports whether the extraction succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.Record != nil
}
