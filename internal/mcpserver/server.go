// Package mcpserver exposes the lookup service over the Model Context
// Protocol: two tools, a price resource template and a prompt.
package mcpserver

import (
	"context"
	"io"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"cryptoprice/internal/lookup"
)

const (
	// Name is the MCP server name advertised during initialization
	Name = "CryptoPrice"

	ToolPrice       = "get_crypto_price"
	ToolPrices      = "get_multiple_crypto_prices"
	PromptPriceName = "price_check_prompt"

	argCryptoID  = "crypto_id"
	argCryptoIDs = "crypto_ids"
)

// New builds an MCP server backed by svc
func New(svc *lookup.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	h := &handlers{svc: svc}

	s.AddTool(mcp.NewTool(ToolPrice,
		mcp.WithDescription("Get the current price of a cryptocurrency from CoinGecko"),
		mcp.WithString(argCryptoID,
			mcp.Required(),
			mcp.Description("CoinGecko coin identifier, e.g. bitcoin"),
		),
	), h.price)

	s.AddTool(mcp.NewTool(ToolPrices,
		mcp.WithDescription("Get the current prices of several cryptocurrencies from CoinGecko"),
		mcp.WithString(argCryptoIDs,
			mcp.Required(),
			mcp.Description("Comma-separated CoinGecko coin identifiers, e.g. bitcoin,ethereum"),
		),
	), h.prices)

	s.AddResourceTemplate(mcp.NewResourceTemplate(
		lookup.ResourceTemplate,
		"Cryptocurrency price",
		mcp.WithTemplateDescription("Current price of a cryptocurrency"),
		mcp.WithTemplateMIMEType("text/plain"),
	), h.resource)

	s.AddPrompt(mcp.NewPrompt(PromptPriceName,
		mcp.WithPromptDescription("Ask for the current price of a cryptocurrency"),
		mcp.WithArgument(argCryptoID,
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("CoinGecko coin identifier"),
		),
	), h.prompt)

	return s
}

// Serve runs s over stdin/stdout until ctx is cancelled or stdin closes
func Serve(ctx context.Context, s *server.MCPServer, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(logrus.StandardLogger().WriterLevel(logrus.ErrorLevel), "", 0))

	logrus.WithField("server", Name).Info("Serving MCP over stdio")
	return stdio.Listen(ctx, stdin, stdout)
}

type handlers struct {
	svc *lookup.Service
}

func (h *handlers) price(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString(argCryptoID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(h.svc.Price(ctx, id)), nil
}

func (h *handlers) prices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := req.RequireString(argCryptoIDs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(h.svc.Prices(ctx, ids)), nil
}

func (h *handlers) resource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	text, err := h.svc.Resource(ctx, uri)
	if err != nil {
		logrus.WithField("uri", uri).WithError(err).Warn("Rejected resource read")
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

func (h *handlers) prompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id := req.Params.Arguments[argCryptoID]
	return mcp.NewGetPromptResult(
		"Price check",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(lookup.Prompt(id))),
		},
	), nil
}
