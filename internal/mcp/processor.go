// Package mcp exposes the inspection operations as MCP tools over the
// JSON-RPC lifecycle methods initialize, tools/list and tools/call.
package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"fs-inspect-server/internal/codec"
	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/inspect"
	"fs-inspect-server/internal/models"
)

const (
	serverName    = "fs-inspect-server"
	serverVersion = "1.0.0"

	toolReadLines     = "read_lines"
	toolListDirectory = "list_directory"
	toolSearchFiles   = "search_files"
)

// ToolCallParams represents the parameters of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Processor handles MCP requests on top of the inspection service.
type Processor struct {
	service inspect.InspectorService
}

// NewProcessor creates a new Processor.
func NewProcessor(svc inspect.InspectorService) *Processor {
	return &Processor{service: svc}
}

// ProcessRequest handles one MCP method and returns its result, or a
// JSON-RPC error for protocol-level failures. Tool-level failures are
// reported inside the tool result with IsError set.
func (p *Processor) ProcessRequest(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	switch req.Method {
	case "initialize":
		return p.handleInitialize(), nil
	case "tools/list":
		return p.handleToolsList(), nil
	case "tools/call":
		var params ToolCallParams
		if err := codec.Unmarshal(req.Params, &params); err != nil {
			return nil, errors.ToJSONRPCError(errors.ToErrorDetail(
				errors.NewInvalidParams("invalid parameters for tools/call: " + err.Error())))
		}
		return p.handleToolCall(params)
	default:
		return nil, errors.ToJSONRPCError(errors.NewMethodNotFoundDetail(req.Method))
	}
}

func (p *Processor) handleInitialize() *models.InitializeResponse {
	return &models.InitializeResponse{
		ProtocolVersion: "2024-11-05",
		Capabilities:    models.Capabilities{Tools: models.ToolsCapabilities{}},
		ServerInfo: models.ServerInfo{
			Name:        serverName,
			Version:     serverVersion,
			Description: "Read-only file inspection: line ranges, directory listings and pattern search.",
		},
	}
}

func (p *Processor) handleToolsList() *models.ToolsListResponse {
	readOnly := models.ToolAnnotations{ReadOnlyHint: true, DestructiveHint: false}
	return &models.ToolsListResponse{
		Tools: []models.ToolDefinition{
			{
				Name:        toolReadLines,
				Description: "Read a range of lines from a file. Negative line numbers count back from the end of the file.",
				ArgumentsSchema: models.Schema{
					"type": "object",
					"properties": models.Schema{
						"path":       models.Schema{"type": "string"},
						"start_line": models.Schema{"type": "integer"},
						"end_line":   models.Schema{"type": "integer"},
					},
					"required": []string{"path"},
				},
				Annotations: readOnly,
			},
			{
				Name:        toolListDirectory,
				Description: "List directory contents up to a depth, skipping hidden and conventionally ignored names.",
				ArgumentsSchema: models.Schema{
					"type": "object",
					"properties": models.Schema{
						"path":  models.Schema{"type": "string"},
						"depth": models.Schema{"type": "integer", "minimum": 0},
					},
					"required": []string{"path"},
				},
				Annotations: readOnly,
			},
			{
				Name:        toolSearchFiles,
				Description: "Search a file or directory tree with a regular expression, returning matches with surrounding context lines.",
				ArgumentsSchema: models.Schema{
					"type": "object",
					"properties": models.Schema{
						"path":          models.Schema{"type": "string"},
						"pattern":       models.Schema{"type": "string"},
						"context_lines": models.Schema{"type": "integer", "minimum": 0},
					},
					"required": []string{"path", "pattern"},
				},
				Annotations: readOnly,
			},
		},
	}
}

func (p *Processor) handleToolCall(params ToolCallParams) (interface{}, *models.JSONRPCError) {
	req, errDetail := toolRequest(params)
	if errDetail != nil {
		return nil, errDetail
	}

	result, inspectErr := p.service.FsRead(*req)
	if inspectErr != nil {
		return toolError(inspectErr), nil
	}
	return toolText(formatResult(result)), nil
}

// toolRequest maps a tool name and its arguments onto a ReadRequest.
func toolRequest(params ToolCallParams) (*models.ReadRequest, *models.JSONRPCError) {
	req, err := codec.DecodeRequest(params.Arguments)
	if err != nil {
		return nil, errors.ToJSONRPCError(errors.ToErrorDetail(
			errors.NewInvalidParams(fmt.Sprintf("invalid arguments for %s: %v", params.Name, err))))
	}

	switch params.Name {
	case toolReadLines:
		req.Mode = models.ModeLine
	case toolListDirectory:
		req.Mode = models.ModeDirectory
	case toolSearchFiles:
		req.Mode = models.ModeSearch
	default:
		return nil, errors.ToJSONRPCError(errors.ToErrorDetail(
			errors.NewInvalidParams(fmt.Sprintf("unknown tool %q", params.Name))))
	}
	return req, nil
}

func toolText(text string) *models.MCPToolResult {
	return &models.MCPToolResult{
		Content: []models.MCPToolContent{{Type: "text", Text: text}},
		IsError: false,
	}
}

func toolError(errDetail *errors.Error) *models.MCPToolResult {
	detail := errors.ToErrorDetail(errDetail)
	return &models.MCPToolResult{
		Content: []models.MCPToolContent{{
			Type: "text",
			Text: fmt.Sprintf("Error: %s (Code: %d)", detail.Message, detail.Code),
		}},
		IsError: true,
	}
}

// formatResult renders a result as human-readable text for the tool
// content block.
func formatResult(result models.ReadResult) string {
	switch r := result.(type) {
	case *models.LineResult:
		return fmt.Sprintf("Total lines: %d\nLines returned: %d\n\n%s",
			r.TotalLines, r.LinesReturned, r.Content)
	case *models.DirectoryResult:
		var b strings.Builder
		fmt.Fprintf(&b, "Entries: %d\n", r.TotalCount)
		for _, entry := range r.Entries {
			kind := "file"
			if entry.IsDir {
				kind = "dir"
			}
			fmt.Fprintf(&b, "- %s (%s, %d bytes)\n", entry.Path, kind, entry.Size)
		}
		return b.String()
	case *models.SearchResult:
		var b strings.Builder
		fmt.Fprintf(&b, "Matches: %d\n", r.TotalMatches)
		for _, m := range r.Matches {
			fmt.Fprintf(&b, "\n%s:%d: %s\n", m.FilePath, m.LineNumber, m.LineContent)
			for _, line := range m.ContextBefore {
				fmt.Fprintf(&b, "  before | %s\n", line)
			}
			for _, line := range m.ContextAfter {
				fmt.Fprintf(&b, "  after  | %s\n", line)
			}
		}
		return b.String()
	default:
		return fmt.Sprintf("%v", result)
	}
}
