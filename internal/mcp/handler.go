package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/caredesk/internal/apierror"
	"github.com/rpggio/caredesk/internal/app"
	"github.com/rpggio/caredesk/internal/domain/collection"
)

// ErrUnknownTool indicates a tool name no collection answers to.
var ErrUnknownTool = fmt.Errorf("%w: unknown tool", collection.ErrNotSupported)

// RateService defines rate operations needed by MCP.
type RateService interface {
	Quote(ctx context.Context, hours, distance float64) (float64, error)
}

// Handler dispatches MCP tool calls.
type Handler struct {
	resources []app.Resource
	rates     RateService
}

// NewHandler creates a new MCP handler.
func NewHandler(resources []app.Resource, rates RateService) *Handler {
	return &Handler{resources: resources, rates: rates}
}

// Handle dispatches a tool call to the collection it names.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch {
	case method == quoteTool:
		var req QuoteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.Hours < 0 || req.Distance < 0 {
			return nil, fmt.Errorf("%w: hours and distance must not be negative", apierror.ErrBadRequest)
		}
		if h.rates == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, method)
		}
		pay, err := h.rates.Quote(ctx, req.Hours, req.Distance)
		if err != nil {
			return nil, err
		}
		return QuoteResponse{Hours: req.Hours, Distance: req.Distance, DriverPaid: pay}, nil

	case strings.HasPrefix(method, listPrefix):
		res, ok := app.Find(h.resources, strings.TrimPrefix(method, listPrefix))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, method)
		}
		var req ListParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return res.List(ctx, req.query())

	case strings.HasPrefix(method, deletePrefix):
		res, ok := app.Find(h.resources, strings.TrimPrefix(method, deletePrefix))
		if !ok || res.SoftDelete == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, method)
		}
		var req DeleteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		m, err := res.SoftDelete(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return DeleteResponse{ID: m.Document.ID, From: string(m.From), To: string(m.To)}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %w", apierror.ErrBadRequest, err)
	}
	return nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
