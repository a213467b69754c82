package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"cryptoprice/internal/fetcher"
	"cryptoprice/internal/lookup"
)

var tableHeaders = []string{"Identifier", "Name", "Symbol", "Price", "Currency", "Error"}

var faint = color.New(color.Faint).SprintFunc()

// renderTable writes one row per result, failures highlighted in red
func renderTable(w io.Writer, results []fetcher.Result) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	headers := make([]string, len(tableHeaders))
	for i, hdr := range tableHeaders {
		headers[i] = color.YellowString(hdr)
	}
	table.SetHeader(headers)
	table.SetCenterSeparator(faint("+"))
	table.SetColumnSeparator(faint("|"))
	table.SetRowSeparator(faint("-"))

	for _, result := range results {
		table.Append(tableRow(result))
	}

	table.Render()
}

func tableRow(result fetcher.Result) []string {
	if result.Err != nil {
		return []string{result.Identifier, "", "", "", "", color.RedString(result.Err.Error())}
	}

	r := result.Record
	return []string{
		result.Identifier,
		cell(r.Name),
		cell(r.Symbol),
		color.GreenString(cell(r.Price)),
		cell(r.QuoteCurrency),
		"",
	}
}

func cell(s *string) string {
	if s == nil {
		return faint(lookup.Placeholder)
	}
	return *s
}
