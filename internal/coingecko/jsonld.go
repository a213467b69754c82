package coingecko

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/buger/jsonparser"
	"github.com/sirupsen/logrus"

	"cryptoprice/internal/fetcher"
)

const (
	jsonLDSelector = `script[type="application/ld+json"]`

	// exchangeRateType is the schema.org type that carries the coin price
	exchangeRateType = "ExchangeRateSpecification"
)

// ErrNoPriceBlock is returned when a document has no usable
// ExchangeRateSpecification block.
var ErrNoPriceBlock = errors.New("no ExchangeRateSpecification block found")

// ExtractFromHTML scans an HTML document for JSON-LD script blocks in
// document order and projects the first ExchangeRateSpecification object
// into a PriceRecord. Blocks that are empty, are not valid JSON, are not
// objects or carry another @type are skipped.
func ExtractFromHTML(r io.Reader) (*fetcher.PriceRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var record *fetcher.PriceRecord
	doc.Find(jsonLDSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		block := bytes.TrimSpace([]byte(s.Text()))
		if !isJSONObject(block) {
			logrus.WithField("block", i).Debug("Skipping JSON-LD block that is not a JSON object")
			return true
		}
		if typ, err := jsonparser.GetString(block, "@type"); err != nil || typ != exchangeRateType {
			return true
		}
		record = projectRecord(block)
		return false
	})

	if record == nil {
		return nil, ErrNoPriceBlock
	}
	return record, nil
}

// isJSONObject reports whether block is a complete, valid JSON object
func isJSONObject(block []byte) bool {
	if len(block) == 0 || block[0] != '{' {
		return false
	}
	return json.Valid(block)
}

// projectRecord maps an ExchangeRateSpecification object onto a PriceRecord.
// Missing or wrong-typed fields become nil.
func projectRecord(block []byte) *fetcher.PriceRecord {
	return &fetcher.PriceRecord{
		Name:          stringField(block, "name"),
		Symbol:        stringField(block, "currency"),
		Price:         magnitudeField(block, "currentExchangeRate", "price"),
		QuoteCurrency: stringField(block, "currentExchangeRate", "priceCurrency"),
	}
}

// stringField returns the string at keys, or nil if it is absent or not a string
func stringField(data []byte, keys ...string) *string {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil || dataType != jsonparser.String {
		return nil
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return nil
	}
	return &s
}

// magnitudeField returns a number or numeric string at keys as text
func magnitudeField(data []byte, keys ...string) *string {
	value, dataType, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return nil
	}
	switch dataType {
	case jsonparser.Number:
		s := string(value)
		return &s
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil
		}
		return &s
	default:
		return nil
	}
}
