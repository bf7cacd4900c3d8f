package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/caredesk/internal/apierror"
	"github.com/rpggio/caredesk/internal/app"
)

// Config contains server configuration.
type Config struct {
	Resources []app.Resource
	Rates     RateService
	// Resolver is consulted for HTTP calls only; stdio calls are anonymous.
	Resolver SessionResolver
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "caredesk",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(actorMiddleware(cfg.Resolver, logger))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, buildToolCatalog(cfg.Resources), NewHandler(cfg.Resources, cfg.Rates))

	return server
}

func registerTools(server *sdkmcp.Server, catalog []ToolDefinition, handler *Handler) {
	for _, def := range catalog {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			out, err := handler.Handle(ctx, name, args)
			if err != nil {
				return errorResult(apierror.Map(err)), nil
			}
			return jsonResult(out), nil
		})
	}
}

func jsonResult(v any) *sdkmcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(apierror.Map(err))
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func errorResult(apiErr *apierror.Error) *sdkmcp.CallToolResult {
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
