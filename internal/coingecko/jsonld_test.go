package coingecko

import (
	"errors"
	"strings"
	"testing"

	"cryptoprice/internal/testutil"
)

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestExtractFromHTML_Success(t *testing.T) {
	page := testutil.Page(
		testutil.JSONLD(testutil.ExchangeRateBlock("Bitcoin", "BTC", `67012.45`, "USD")),
	)

	record, err := ExtractFromHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractFromHTML() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  *string
		want string
	}{
		{"Name", record.Name, "Bitcoin"},
		{"Symbol", record.Symbol, "BTC"},
		{"Price", record.Price, "67012.45"},
		{"QuoteCurrency", record.QuoteCurrency, "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if deref(tt.got) != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, deref(tt.got), tt.want)
			}
		})
	}
}

func TestExtractFromHTML_StringPrice(t *testing.T) {
	page := testutil.Page(
		testutil.JSONLD(testutil.ExchangeRateBlock("Ethereum", "ETH", `"3120.10"`, "EUR")),
	)

	record, err := ExtractFromHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractFromHTML() returned unexpected error: %v", err)
	}
	if got := deref(record.Price); got != "3120.10" {
		t.Errorf("Price = %q, want %q", got, "3120.10")
	}
	if got := deref(record.QuoteCurrency); got != "EUR" {
		t.Errorf("QuoteCurrency = %q, want %q", got, "EUR")
	}
}

func TestExtractFromHTML_SkipsOtherBlocks(t *testing.T) {
	page := testutil.Page(
		testutil.JSONLD(`{"@context": "https://schema.org", "@type": "Product", "name": "Not a price"}`),
		testutil.JSONLD(`{ this is not json`),
		testutil.JSONLD(``),
		testutil.JSONLD(`[{"@type": "ExchangeRateSpecification", "name": "Inside an array"}]`),
		testutil.JSONLD(`{"name": "No type at all"}`),
		testutil.JSONLD(`{"@type": ["ExchangeRateSpecification"], "name": "Type is a list"}`),
		testutil.JSONLD(testutil.ExchangeRateBlock("Solana", "SOL", `142.8`, "USD")),
		testutil.JSONLD(testutil.ExchangeRateBlock("Second Match", "XXX", `1`, "USD")),
	)

	record, err := ExtractFromHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractFromHTML() returned unexpected error: %v", err)
	}
	if got := deref(record.Name); got != "Solana" {
		t.Errorf("Name = %q, want %q (first matching block in document order)", got, "Solana")
	}
	if got := deref(record.Symbol); got != "SOL" {
		t.Errorf("Symbol = %q, want %q", got, "SOL")
	}
}

func TestExtractFromHTML_IgnoresOtherScriptTypes(t *testing.T) {
	page := testutil.Page(
		`<script type="application/json">` + testutil.ExchangeRateBlock("Wrong", "W", `1`, "USD") + `</script>`,
		`<script>var x = 1;</script>`,
	)

	_, err := ExtractFromHTML(strings.NewReader(page))
	if !errors.Is(err, ErrNoPriceBlock) {
		t.Errorf("ExtractFromHTML() error = %v, want ErrNoPriceBlock", err)
	}
}

func TestExtractFromHTML_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		wantName  string
		wantSym   string
		wantPrice string
		wantQuote string
	}{
		{
			name:      "only type",
			block:     `{"@type": "ExchangeRateSpecification"}`,
			wantName:  "<nil>",
			wantSym:   "<nil>",
			wantPrice: "<nil>",
			wantQuote: "<nil>",
		},
		{
			name:      "rate without price",
			block:     `{"@type": "ExchangeRateSpecification", "name": "Dogecoin", "currentExchangeRate": {"priceCurrency": "USD"}}`,
			wantName:  "Dogecoin",
			wantSym:   "<nil>",
			wantPrice: "<nil>",
			wantQuote: "USD",
		},
		{
			name:      "wrong typed fields",
			block:     `{"@type": "ExchangeRateSpecification", "name": 42, "currency": {"code": "X"}, "currentExchangeRate": {"price": true, "priceCurrency": null}}`,
			wantName:  "<nil>",
			wantSym:   "<nil>",
			wantPrice: "<nil>",
			wantQuote: "<nil>",
		},
		{
			name:      "rate is not an object",
			block:     `{"@type": "ExchangeRateSpecification", "name": "Tether", "currency": "USDT", "currentExchangeRate": "1.00"}`,
			wantName:  "Tether",
			wantSym:   "USDT",
			wantPrice: "<nil>",
			wantQuote: "<nil>",
		},
		{
			name:      "escaped characters",
			block:     `{"@type": "ExchangeRateSpecification", "name": "Café \"Coin\"", "currency": "CAFE", "currentExchangeRate": {"price": 0.5, "priceCurrency": "USD"}}`,
			wantName:  `Café "Coin"`,
			wantSym:   "CAFE",
			wantPrice: "0.5",
			wantQuote: "USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := testutil.Page(testutil.JSONLD(tt.block))

			record, err := ExtractFromHTML(strings.NewReader(page))
			if err != nil {
				t.Fatalf("ExtractFromHTML() returned unexpected error: %v", err)
			}
			if got := deref(record.Name); got != tt.wantName {
				t.Errorf("Name = %q, want %q", got, tt.wantName)
			}
			if got := deref(record.Symbol); got != tt.wantSym {
				t.Errorf("Symbol = %q, want %q", got, tt.wantSym)
			}
			if got := deref(record.Price); got != tt.wantPrice {
				t.Errorf("Price = %q, want %q", got, tt.wantPrice)
			}
			if got := deref(record.QuoteCurrency); got != tt.wantQuote {
				t.Errorf("QuoteCurrency = %q, want %q", got, tt.wantQuote)
			}
		})
	}
}

func TestExtractFromHTML_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no blocks", testutil.Page()},
		{"only malformed blocks", testutil.Page(testutil.JSONLD(`{"@type": "ExchangeRateSpecification",`), testutil.JSONLD(`nope`))},
		{"only other types", testutil.Page(testutil.JSONLD(`{"@type": "Organization"}`), testutil.JSONLD(`{"@type": "BreadcrumbList"}`))},
		{"not html at all", `{"@type": "ExchangeRateSpecification"}`},
		{"empty document", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ExtractFromHTML(strings.NewReader(tt.page))
			if !errors.Is(err, ErrNoPriceBlock) {
				t.Errorf("ExtractFromHTML() error = %v, want ErrNoPriceBlock", err)
			}
			if record != nil {
				t.Errorf("ExtractFromHTML() record = %+v, want nil", record)
			}
		})
	}
}
