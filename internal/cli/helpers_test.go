package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

// recordedRequest captures one API request received by the fake server.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// newTestContainer creates an app.Container whose client talks to a fake
// server driven by handler.
func newTestContainer(t *testing.T, handler http.HandlerFunc) *app.Container {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &youtrack.Config{BaseURL: server.URL, Token: "perm:test"}
	client := youtrack.New(server.URL, cfg.Token)
	return app.NewWithDeps(cfg, client, nil)
}

// newCapturingContainer records every request and answers each with the
// fixed JSON response.
func newCapturingContainer(t *testing.T, rec *recordedRequest, response string) *app.Container {
	t.Helper()
	return newTestContainer(t, func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		body, _ := io.ReadAll(r.Body)
		rec.Body = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	})
}

// jsonBody unmarshals a recorded request body for assertions.
func jsonBody(t *testing.T, rec recordedRequest) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body, &m); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	return m
}
