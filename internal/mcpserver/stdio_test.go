package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nimbusmcp/nimbus/internal/appconfig"
	"github.com/nimbusmcp/nimbus/internal/tools"
	"github.com/nimbusmcp/nimbus/internal/upstream"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/air-quality", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"pm2_5":12.5,"pm10":20.1,"carbon_monoxide":210,"nitrogen_dioxide":14.2,"ozone":61}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := appconfig.Config{AirQualityURL: srv.URL + "/air-quality"}
	svc := tools.NewService(cfg, upstream.New(2*time.Second, cfg.UserAgentOrDefault()))
	return New(tools.NewRegistry(svc))
}

func frame(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return []byte(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data))
}

func readResponses(t *testing.T, data []byte) []jsonrpcResponse {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(data))
	var out []jsonrpcResponse
	for {
		var length int
		found := false
		for {
			line, err := reader.ReadString('\n')
			if err == io.EOF {
				return out
			}
			if err != nil {
				t.Fatalf("read header: %v", err)
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				break
			}
			if strings.HasPrefix(strings.ToLower(line), "content-length:") {
				n, err := strconv.Atoi(strings.TrimSpace(line[len("content-length:"):]))
				if err != nil {
					t.Fatalf("bad content length: %v", err)
				}
				length = n
				found = true
			}
		}
		if !found {
			t.Fatal("frame without Content-Length")
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(reader, body); err != nil {
			t.Fatalf("read body: %v", err)
		}
		var resp jsonrpcResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		out = append(out, resp)
	}
}

func TestServeStdio(t *testing.T) {
	server := newTestServer(t)

	var in bytes.Buffer
	in.Write(frame(t, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize"}))
	in.Write(frame(t, map[string]any{"jsonrpc": "2.0", "method": "notifications/initialized"}))
	in.Write(frame(t, map[string]any{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}))
	in.Write(frame(t, map[string]any{
		"jsonrpc": "2.0", "id": 3, "method": "tools/call",
		"params": map[string]any{"name": "get_air_quality", "arguments": map[string]any{"latitude": 13.08, "longitude": 80.27}},
	}))
	in.Write(frame(t, map[string]any{"jsonrpc": "2.0", "id": 4, "method": "resources/list"}))

	var out bytes.Buffer
	if err := server.ServeStdio(context.Background(), &in, &out); err != nil {
		t.Fatalf("ServeStdio returned error: %v", err)
	}

	responses := readResponses(t, out.Bytes())
	// The notification produces no frame.
	if len(responses) != 4 {
		t.Fatalf("expected 4 responses, got %d", len(responses))
	}

	// initialize advertises the tool capabilities.
	init := responses[0]
	if init.Error != nil {
		t.Fatalf("initialize failed: %+v", init.Error)
	}
	initResult, _ := json.Marshal(init.Result)
	if !strings.Contains(string(initResult), serverName) {
		t.Errorf("initialize result missing server name: %s", initResult)
	}

	// tools/list carries all four definitions.
	listResult, _ := json.Marshal(responses[1].Result)
	for _, name := range []string{"get_weather_by_city", "get_precipitation_chance", "get_air_quality", "get_alerts_by_type"} {
		if !strings.Contains(string(listResult), name) {
			t.Errorf("tools/list missing %s: %s", name, listResult)
		}
	}

	// tools/call returns text content.
	callResult, _ := json.Marshal(responses[2].Result)
	if !strings.Contains(string(callResult), "PM2.5: 12.5") {
		t.Errorf("tools/call missing formatted result: %s", callResult)
	}

	// Unknown method yields -32601.
	if responses[3].Error == nil || responses[3].Error.Code != -32601 {
		t.Errorf("expected method-not-found, got %+v", responses[3])
	}
}

func TestServeStdioInvalidParams(t *testing.T) {
	server := newTestServer(t)

	body := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":"oops"}`
	var in bytes.Buffer
	in.WriteString(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body))

	var out bytes.Buffer
	if err := server.ServeStdio(context.Background(), &in, &out); err != nil {
		t.Fatalf("ServeStdio returned error: %v", err)
	}
	responses := readResponses(t, out.Bytes())
	if len(responses) != 1 || responses[0].Error == nil || responses[0].Error.Code != -32602 {
		t.Fatalf("expected invalid-params error, got %+v", responses)
	}
}

func TestServeStdioFramingError(t *testing.T) {
	server := newTestServer(t)

	var out bytes.Buffer
	err := server.ServeStdio(context.Background(), strings.NewReader("not a frame\r\n\r\n"), &out)
	if err == nil {
		t.Fatal("expected framing error")
	}
	responses := readResponses(t, out.Bytes())
	if len(responses) != 1 || responses[0].Error == nil || responses[0].Error.Code != -32000 {
		t.Fatalf("expected best-effort -32000 frame, got %+v", responses)
	}
}
