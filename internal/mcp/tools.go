package mcp

import (
	"fmt"

	"github.com/rpggio/caredesk/internal/app"
)

const (
	listPrefix   = "list_"
	deletePrefix = "delete_"
	quoteTool    = "quote_driver_pay"
)

// ToolDefinition describes one tool with a JSON schema for its input.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog(resources []app.Resource) []ToolDefinition {
	var tools []ToolDefinition
	for _, res := range resources {
		tools = append(tools, ToolDefinition{
			Name:        listPrefix + res.Name,
			Description: fmt.Sprintf("List one page of active %s, filtered or sorted", res.Name),
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sort": map[string]any{
						"type":        "string",
						"description": "Column to sort by (ignored while filter is set)",
					},
					"order": map[string]any{
						"type":        "string",
						"enum":        []string{"asc", "desc"},
						"description": "Sort direction",
					},
					"filter": map[string]any{
						"type":        "string",
						"description": "Case-insensitive text matched against the table's filter column",
					},
					"page": map[string]any{
						"type":        "integer",
						"minimum":     0,
						"description": "Zero-based page index",
					},
					"rowsPerPage": map[string]any{
						"type":        "integer",
						"enum":        []int{5, 10, 25},
						"description": "Rows per page",
					},
				},
			},
		})
		if res.SoftDelete == nil {
			continue
		}
		tools = append(tools, ToolDefinition{
			Name:        deletePrefix + res.Name,
			Description: fmt.Sprintf("Soft-delete one of %s; the record is kept with a retired status", res.Name),
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Record ID",
					},
				},
				"required": []string{"id"},
			},
		})
	}

	tools = append(tools, ToolDefinition{
		Name:        quoteTool,
		Description: "Compute driver pay for a trip with the current rates",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hours": map[string]any{
					"type":        "number",
					"minimum":     0,
					"description": "Trip duration in hours",
				},
				"distance": map[string]any{
					"type":        "number",
					"minimum":     0,
					"description": "Trip distance in kilometres",
				},
			},
			"required": []string{"hours", "distance"},
		},
	})
	return tools
}
