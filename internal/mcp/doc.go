// Package mcp implements the Model Context Protocol (MCP) server for linecount.
//
// The MCP server exposes two tools to AI coding assistants:
//   - count_lines: Count lines below one or more root directories
//   - get_defaults: Show the extensions and exclusions used when none are given
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport. The server is started
// with the serve command:
//
//	linecount serve
//
// It then listens on stdin for MCP protocol messages and writes responses to
// stdout. Logs go to stderr.
//
// # Tool: count_lines
//
//	Request:
//	{
//	  "name": "count_lines",
//	  "arguments": {
//	    "roots": ["/path/to/client", "/path/to/server"],
//	    "extensions": ["ts", "tsx"],
//	    "exclude": ["node_modules"]
//	  }
//	}
//
//	Response (text content):
//	Total lines in specified directory (/path/to/client): 5210
//	Total lines in specified directory (/path/to/server): 3377
//	Total Lines in Project: 8587
//
// When paths were skipped a "Skipped N path(s):" section follows the totals.
// A root that does not exist is one of those skipped paths, not an error.
//
// # Error Handling
//
// Error codes:
//   - -32602: Invalid params (missing roots, relative paths, non-string items)
//   - -32603: Internal error (counting interrupted)
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "linecount": {
//	      "command": "/usr/local/bin/linecount",
//	      "args": ["serve"],
//	      "env": {
//	        "LINECOUNT_EXTENSIONS": "go,ts"
//	      }
//	    }
//	  }
//	}
package mcp
