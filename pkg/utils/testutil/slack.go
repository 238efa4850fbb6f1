package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"
)

// SlackRequest is a request received by SlackServer.
type SlackRequest struct {
	Path   string
	Method string // Web API method such as chat.postMessage, empty for webhooks
	Header http.Header
	Body   map[string]any
}

// SlackServer imitates the Slack Web API under /api and incoming webhooks
// under /webhook.
type SlackServer struct {
	*httptest.Server

	mutex    sync.Mutex
	requests []SlackRequest
}

func NewSlackServer(t *testing.T, reply http.HandlerFunc) *SlackServer {
	t.Helper()

	srv := &SlackServer{}
	route := chi.NewRouter()
	route.Use(srv.record(t))
	route.Post("/api/{method}", reply)
	route.Post("/webhook/*", reply)

	srv.Server = httptest.NewServer(route)
	t.Cleanup(srv.Close)
	return srv
}

func (x *SlackServer) APIURL() string     { return x.URL + "/api" }
func (x *SlackServer) WebhookURL() string { return x.URL + "/webhook/T000/B000/XXXX" }

func (x *SlackServer) Requests() []SlackRequest {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	return append([]SlackRequest{}, x.requests...)
}

func (x *SlackServer) record(t *testing.T) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := gt.R1(io.ReadAll(r.Body)).NoError(t)

			req := SlackRequest{
				Path:   r.URL.Path,
				Header: r.Header.Clone(),
			}
			if method, ok := strings.CutPrefix(r.URL.Path, "/api/"); ok {
				req.Method = method
			}
			if len(raw) > 0 {
				gt.NoError(t, json.Unmarshal(raw, &req.Body))
			}

			x.mutex.Lock()
			x.requests = append(x.requests, req)
			x.mutex.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

func ReplyJSON(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func ReplyText(status int, text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(text))
	}
}
