package mcpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nimbusmcp/nimbus/internal/logging"
)

// httpTransport serves the same JSON-RPC surface over HTTP POST. A single
// session id is minted lazily and echoed on every response.
type httpTransport struct {
	server *Server

	sessionLock sync.Mutex
	sessionID   string
}

// HTTPHandler returns an http.Handler exposing the protocol at /mcp.
func (s *Server) HTTPHandler() http.Handler {
	t := &httpTransport{server: s}
	router := mux.NewRouter()
	router.HandleFunc("/mcp", t.handleJSONRPC).Methods(http.MethodPost)
	return router
}

func (t *httpTransport) ensureSessionID() string {
	t.sessionLock.Lock()
	defer t.sessionLock.Unlock()
	if t.sessionID == "" {
		t.sessionID = uuid.NewString()
	}
	return t.sessionID
}

func (t *httpTransport) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	sessionID := t.ensureSessionID()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeHTTPError(w, sessionID, nil, -32700, "failed to read request body")
		return
	}

	payload := strings.TrimSpace(string(body))
	if payload == "" {
		writeHTTPError(w, sessionID, nil, -32700, "empty request body")
		return
	}
	if strings.HasPrefix(payload, "[") {
		writeHTTPError(w, sessionID, nil, -32600, "batch requests not supported")
		return
	}

	var req jsonrpcRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		writeHTTPError(w, sessionID, nil, -32700, "invalid json")
		return
	}

	resp := t.server.respond(r.Context(), &req)
	if resp == nil {
		// Notification: acknowledge with no body.
		w.Header().Set("Mcp-Session-Id", sessionID)
		w.WriteHeader(http.StatusOK)
		return
	}
	writeHTTPResponse(w, sessionID, resp)
}

func writeHTTPResponse(w http.ResponseWriter, sessionID string, resp *jsonrpcResponse) {
	w.Header().Set("Mcp-Session-Id", sessionID)
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to marshal jsonrpc response", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.Errorf("failed to write jsonrpc response: %v", err)
	}
}

func writeHTTPError(w http.ResponseWriter, sessionID string, id any, code int, message string) {
	writeHTTPResponse(w, sessionID, makeError(id, code, message))
}
