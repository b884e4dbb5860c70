package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// countLinesTool returns the tool definition for count_lines
func countLinesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "count_lines",
		Description: "Count source lines below one or more directories, filtered by extension and excluded substrings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"roots": map[string]interface{}{
					"type":        "array",
					"description": "Absolute paths of the root directories to count",
					"items": map[string]interface{}{
						"type": "string",
					},
					"minItems": 1,
				},
				"extensions": map[string]interface{}{
					"type":        "array",
					"description": "File extensions to count, without leading dot (default: server configuration)",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"exclude": map[string]interface{}{
					"type":        "array",
					"description": "Paths containing any of these substrings are skipped (default: server configuration)",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"roots"},
		},
	}
}

// getDefaultsTool returns the tool definition for get_defaults
func getDefaultsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_defaults",
		Description: "Show the extensions and exclusions count_lines uses when none are given",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
