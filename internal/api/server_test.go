package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

const testDefinition = `{
  "title": "Revenue",
  "axes": [
    {"name": "year", "orientation": "horizontal", "type": "category", "categories": ["2023", "2024"]},
    {"name": "revenue", "orientation": "vertical"}
  ],
  "series": [
    {"name": "north", "type": "column", "x_axis": "year", "y_axis": "revenue", "values": [12, 17.5]}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger, opts...)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Error("missing request ID header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t)
	const id = "0b6c1f0e-8d5e-4a45-9a0c-5b2f3a1e7d11"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got == "not-a-uuid" || got == "" {
		t.Errorf("request ID = %q, want a fresh uuid", got)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/layout?width=640&height=480", "application/json", testDefinition)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(HeaderCache); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	runID := rec.Header().Get(HeaderRunID)
	if runID == "" {
		t.Error("missing run ID")
	}

	l, err := model.UnmarshalLayout(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.Width != 640 || l.Height != 480 {
		t.Errorf("size = %gx%g, want 640x480", l.Width, l.Height)
	}
	if l.RunID != runID {
		t.Errorf("layout run ID = %q, header = %q", l.RunID, runID)
	}
	if len(l.Axes) != 2 || len(l.Series) != 1 {
		t.Errorf("got %d axes, %d series", len(l.Axes), len(l.Series))
	}

	rec = do(t, s, http.MethodPost, "/v1/layout?width=640&height=480", "application/json", testDefinition)
	if got := rec.Header().Get(HeaderCache); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if got := rec.Header().Get(HeaderRunID); got == runID {
		t.Error("run ID reused across requests")
	}
}

func TestLayoutYAML(t *testing.T) {
	s := newTestServer(t)
	body := `
axes:
  - name: x
    orientation: horizontal
  - name: y
    orientation: vertical
series:
  - name: s
    type: line
    x_axis: x
    y_axis: y
    values: [1, 2, 3]
`
	for _, tc := range []struct {
		name, target, contentType string
	}{
		{"query", "/v1/layout?input=yaml", ""},
		{"content type", "/v1/layout", "application/yaml"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tc.target, tc.contentType, body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLayoutErrors(t *testing.T) {
	s := newTestServer(t, WithMaxBodySize(64))

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		wantStatus  int
		wantCode    errors.Code
	}{
		{"empty body", "/v1/layout", "application/json", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad json", "/v1/layout", "application/json", "{", http.StatusBadRequest, errors.ErrCodeInvalidDefinition},
		{"bad content type", "/v1/layout", "image/png", "{}", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad input", "/v1/layout?input=xml", "", "{}", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad width", "/v1/layout?width=wide", "application/json", "{}", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad side by side", "/v1/layout?side_by_side=maybe", "application/json", "{}", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too large", "/v1/layout", "application/json", testDefinition, http.StatusRequestEntityTooLarge, errors.ErrCodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.contentType, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := decodeError(t, rec); got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestLayoutInvalidDefinition(t *testing.T) {
	s := newTestServer(t)
	body := `{"axes": [{"name": "x", "orientation": "diagonal"}], "series": []}`
	rec := do(t, s, http.MethodPost, "/v1/layout", "application/json", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != errors.ErrCodeInvalidAxis {
		t.Errorf("code = %q, want %q", got.Code, errors.ErrCodeInvalidAxis)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/v1/layout", "", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target      string
		contentType string
		prefix      string
	}{
		{"/v1/render", "image/svg+xml", "<svg"},
		{"/v1/render?format=svg&labels=true&grid=true&title=true", "image/svg+xml", "<svg"},
		{"/v1/render?format=dot&detailed=true", "text/vnd.graphviz", "digraph chart {"},
		{"/v1/render?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, "application/json", testDefinition)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts with %.20q, want %q", rec.Body.String(), tt.prefix)
			}
			if rec.Header().Get(HeaderRunID) == "" {
				t.Error("missing run ID")
			}
		})
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/render?format=gif", "application/json", testDefinition)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", got.Code, errors.ErrCodeInvalidFormat)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidSize, "bad"), http.StatusBadRequest},
		{&errors.TooLargeError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{errors.New(errors.ErrCodeCache, "down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got, _ := classify(tt.err); got != tt.want {
			t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
