package ark

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/clipdigest/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ArkConfig
		wantErr bool
	}{
		{"missing key", config.ArkConfig{Model: "ep-123"}, true},
		{"missing model", config.ArkConfig{APIKey: "k"}, true},
		{"valid", config.ArkConfig{APIKey: "k", Model: "ep-123"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && s == nil {
				t.Error("New() returned nil summarizer")
			}
		})
	}
}

func newTestServer(t *testing.T, status int, body string, gotBody *map[string]interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if gotBody != nil {
			_ = json.NewDecoder(r.Body).Decode(gotBody)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSummarize(t *testing.T) {
	var gotBody map[string]interface{}
	server := newTestServer(t, http.StatusOK,
		`{"id":"c1","object":"chat.completion","model":"ep-123","choices":[{"index":0,"message":{"role":"assistant","content":"  ark summary "},"finish_reason":"stop"}]}`,
		&gotBody)

	s, err := New(config.ArkConfig{APIKey: "k", BaseURL: server.URL, Model: "ep-123"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Summarize(context.Background(), "the transcript")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "ark summary" {
		t.Errorf("got %q", got)
	}
	if gotBody["model"] != "ep-123" {
		t.Errorf("model = %v", gotBody["model"])
	}
	messages, _ := gotBody["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	user, _ := messages[1].(map[string]interface{})
	if content, _ := user["content"].(string); !strings.Contains(content, "the transcript") {
		t.Errorf("user content = %q", content)
	}
}

func TestSummarizeWithoutContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"id":"c1","object":"chat.completion","model":"ep-123","choices":[]}`},
		{"null choices", `{"id":"c1","object":"chat.completion","model":"ep-123","choices":null}`},
		{"null content", `{"id":"c1","object":"chat.completion","model":"ep-123","choices":[{"index":0,"message":{"role":"assistant"},"finish_reason":"stop"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, http.StatusOK, tt.body, nil)
			s, err := New(config.ArkConfig{APIKey: "k", BaseURL: server.URL, Model: "ep-123"})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := s.Summarize(context.Background(), "t"); err == nil {
				t.Error("expected error for a response without content")
			}
		})
	}
}

func TestSummarizeAPIError(t *testing.T) {
	server := newTestServer(t, http.StatusBadRequest,
		`{"error":{"code":"InvalidParameter","message":"bad request","type":"BadRequest"}}`, nil)

	s, err := New(config.ArkConfig{APIKey: "k", BaseURL: server.URL, Model: "ep-123"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Summarize(context.Background(), "t"); err == nil {
		t.Error("expected error for a 400 response")
	}
}
