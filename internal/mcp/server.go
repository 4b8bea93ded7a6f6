// Package mcp exposes the task-creation pipeline as an MCP tool over
// stdio, so the orchestrating assistant can invoke it via tool calls.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Atiwari330/asana-agent/internal/agent"
	"github.com/Atiwari330/asana-agent/internal/ledger"
	"github.com/google/uuid"
)

// Server implements the MCP server for task creation
type Server struct {
	orch      *agent.Orchestrator
	ledger    *ledger.Storage // nil when the ledger is disabled
	sessionID string
}

// NewServer creates a new task-creation MCP server. The ledger may be
// nil when disabled.
func NewServer(orch *agent.Orchestrator, store *ledger.Storage) *Server {
	return &Server{
		orch:      orch,
		ledger:    store,
		sessionID: uuid.New().String(),
	}
}

// MCP Protocol Types
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
	Capabilities    ServerCapabilities `json:"capabilities"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"inputSchema"`
}

type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type CallToolResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Run starts the MCP server on stdio
func (s *Server) Run(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	writer := os.Stdout

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Read line (JSON-RPC message)
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.sendError(writer, nil, -32700, "Parse error")
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := s.sendResponse(writer, resp); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(ctx, req)
	case "notifications/initialized":
		return nil // Notification, no response
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32601, Message: "Method not found"},
		}
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: "2024-11-05",
			ServerInfo: ServerInfo{
				Name:    "asana-agent",
				Version: "1.0.0",
			},
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{},
			},
		},
	}
}

func (s *Server) handleListTools(req *MCPRequest) *MCPResponse {
	tools := []Tool{
		{
			Name:        "create_task",
			Description: "Create a single Asana task in an allowlisted project for an allowlisted assignee",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project": map[string]interface{}{
						"type":        "string",
						"description": "Project name, alias, or routing keyword",
					},
					"assignee": map[string]interface{}{
						"type":        "string",
						"description": "Assignee email, name, or alias",
					},
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Task title",
					},
					"notes": map[string]interface{}{
						"type":        "string",
						"description": "Optional task notes",
					},
					"due_on": map[string]interface{}{
						"type":        "string",
						"description": "Optional due date phrase (e.g. tomorrow, next friday, in 5 days, 2026-10-01)",
					},
				},
				"required": []string{"project", "assignee", "title"},
			},
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  ListToolsResult{Tools: tools},
	}
}

func (s *Server) handleCallTool(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32602, Message: "Invalid params"},
		}
	}

	if params.Name != "create_task" {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32601, Message: "Unknown tool"},
		}
	}

	result := s.handleCreateTask(ctx, params.Arguments)
	resultJSON, _ := json.Marshal(result)

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: CallToolResult{
			Content: []ToolContent{{Type: "text", Text: string(resultJSON)}},
			IsError: !result.Success,
		},
	}
}

func (s *Server) handleCreateTask(ctx context.Context, args map[string]interface{}) *agent.Result {
	str := func(key string) string {
		v, _ := args[key].(string)
		return v
	}

	result := s.orch.CreateTask(ctx, &agent.Request{
		Project:  str("project"),
		Assignee: str("assignee"),
		Title:    str("title"),
		Notes:    str("notes"),
		DueOn:    str("due_on"),
	})

	if result.Success && s.ledger != nil {
		// Ledger failure shouldn't fail the tool call; the task exists
		s.ledger.Record(&ledger.Entry{
			TaskGID:   result.TaskID,
			Permalink: result.Permalink,
			Project:   result.Details.Project,
			Assignee:  result.Details.Assignee,
			Title:     result.Details.Title,
			DueOn:     result.Details.DueDate,
		})
	}

	return result
}

func (s *Server) sendResponse(w io.Writer, resp *MCPResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func (s *Server) sendError(w io.Writer, id interface{}, code int, message string) error {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &MCPError{Code: code, Message: message},
	}
	return s.sendResponse(w, resp)
}
