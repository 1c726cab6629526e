package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestGetJSONSetsHeadersAndParams(t *testing.T) {
	var gotUA, gotAccept, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := New(5*time.Second, "weather-mcp/1.0")
	params := url.Values{}
	params.Set("name", "Chennai")
	params.Set("count", "1")

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.GetJSON(context.Background(), srv.URL, params, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK {
		t.Fatal("expected decoded body")
	}
	if gotUA != "weather-mcp/1.0" {
		t.Errorf("unexpected User-Agent: %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("unexpected Accept: %q", gotAccept)
	}
	if gotQuery != "count=1&name=Chennai" {
		t.Errorf("unexpected query string: %q", gotQuery)
	}
}

func TestGetJSONNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(5*time.Second, "weather-mcp/1.0")
	var out map[string]any
	if err := client.GetJSON(context.Background(), srv.URL, nil, &out); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"broken": `))
	}))
	defer srv.Close()

	client := New(5*time.Second, "weather-mcp/1.0")
	var out map[string]any
	if err := client.GetJSON(context.Background(), srv.URL, nil, &out); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(20*time.Millisecond, "weather-mcp/1.0")
	var out map[string]any
	if err := client.GetJSON(context.Background(), srv.URL, nil, &out); err == nil {
		t.Fatal("expected timeout error")
	}
}
