package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/linecount/internal/counter"
	"github.com/dshills/linecount/internal/report"
	"github.com/dshills/linecount/internal/traverser"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

// handleCountLines handles the count_lines tool invocation
func (s *Server) handleCountLines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Extract and validate parameters
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	roots, err := getStringSlice(args, "roots", nil)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid roots", map[string]interface{}{
			"param":  "roots",
			"reason": err.Error(),
		})
	}
	if len(roots) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "roots parameter is required", map[string]interface{}{
			"param":  "roots",
			"reason": "missing or empty",
		})
	}
	for _, root := range roots {
		if err := validatePath(root); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid root", map[string]interface{}{
				"param":  "roots",
				"value":  root,
				"reason": err.Error(),
			})
		}
	}

	// Optional parameters fall back to the server configuration
	extensions, err := getStringSlice(args, "extensions", s.cfg.Extensions)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid extensions", map[string]interface{}{
			"param":  "extensions",
			"reason": err.Error(),
		})
	}
	exclusions, err := getStringSlice(args, "exclude", s.cfg.Exclusions)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid exclude", map[string]interface{}{
			"param":  "exclude",
			"reason": err.Error(),
		})
	}

	c := counter.New(s.fs, traverser.NewFilter(extensions, exclusions),
		counter.WithLogger(s.logger),
		counter.WithWorkers(s.cfg.Workers),
		counter.WithRootResolver(filepath.Abs),
	)

	rep, err := c.CountAll(ctx, roots)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "counting failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	var out strings.Builder
	if err := report.Write(&out, rep); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to render report", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := report.WriteDiagnostics(&out, rep); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to render diagnostics", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(out.String()), nil
}

// handleGetDefaults handles the get_defaults tool invocation
func (s *Server) handleGetDefaults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"extensions": s.cfg.Extensions,
		"exclude":    s.cfg.Exclusions,
		"workers":    s.cfg.Workers,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks that a root is usable as a tool argument.
// Existence is not checked: a missing root is reported in the result like
// any other access failure.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathRequired
	}

	// The server's working directory is not the client's, so relative paths are ambiguous
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getStringSlice extracts a string array parameter with a default value
func getStringSlice(args map[string]interface{}, key string, defaultValue []string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return defaultValue, nil
	}

	switch val := raw.(type) {
	case []string:
		return val, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for i, item := range val {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, want string", i, item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w (got %T)", ErrNotStringArray, raw)
	}
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrNotStringArray  = errors.New("expected an array of strings")
)
