// Package mcpserver hosts the tool registry behind the MCP wire protocol
// (JSON-RPC 2.0). Two transports share one dispatch path: stdio with
// Content-Length framing, and HTTP POST.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nimbusmcp/nimbus/internal/tools"
)

const (
	serverName    = "nimbus-weather"
	serverVersion = "0.1.0"
)

// Server dispatches protocol requests to a tool registry. The registry is
// built at startup and never mutated, so a Server may serve concurrent
// requests without coordination.
type Server struct {
	registry *tools.Registry
}

// New returns a Server exposing the given registry.
func New(registry *tools.Registry) *Server {
	return &Server{registry: registry}
}

// --- Protocol data types ---

type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonrpcResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id,omitempty"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonrpcError `json:"error,omitempty"`
}

// tools/call params
type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func makeResult(id any, result any) *jsonrpcResponse {
	return &jsonrpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func makeError(id any, code int, msg string) *jsonrpcResponse {
	return &jsonrpcResponse{JSONRPC: "2.0", ID: id, Error: &jsonrpcError{Code: code, Message: msg}}
}

// isNotification reports whether the request expects no response.
func isNotification(req *jsonrpcRequest) bool {
	return req.ID == nil
}

// respond runs one request through the protocol methods. A nil return
// means the request was a notification and produces no reply.
func (s *Server) respond(ctx context.Context, req *jsonrpcRequest) *jsonrpcResponse {
	if isNotification(req) {
		return nil
	}

	switch req.Method {
	case "initialize":
		result := map[string]any{
			"serverInfo":   map[string]any{"name": serverName, "version": serverVersion},
			"capabilities": map[string]any{"tools": map[string]any{"list": true, "call": true}},
		}
		return makeResult(req.ID, result)

	case "ping":
		return makeResult(req.ID, map[string]any{})

	case "tools/list":
		return makeResult(req.ID, map[string]any{"tools": s.registry.Definitions()})

	case "tools/call":
		var p toolsCallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, -32602, "Invalid params")
			}
		}
		if p.Arguments == nil {
			p.Arguments = map[string]any{}
		}
		content := s.registry.Call(ctx, p.Name, p.Arguments)
		return makeResult(req.ID, map[string]any{"content": content})
	}

	return makeError(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method))
}
