package levelserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vovakirdan/courier-levels/internal/genclient"
	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/logging"
	"github.com/vovakirdan/courier-levels/internal/procgen"
	"github.com/vovakirdan/courier-levels/internal/synth"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func newTestServer(t *testing.T, gen Generator) *Server {
	t.Helper()
	quick := synth.NewService(nil, synth.Options{Generator: procgen.New(procgen.NewRNG(1))})
	srv, err := New(Options{Generator: gen, Quick: quick})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateLevel(t *testing.T) {
	gen := &stubGenerator{text: `{"name":"Ice Run"}`}
	h := newTestServer(t, gen).Handler()

	rec := do(t, h, http.MethodPost, "/generate-level", `{"prompt":"icy hills"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, `{"name":"Ice Run"}`, resp.Level)
	assert.Equal(t, "icy hills", gen.prompt)
}

func TestGenerateLevelFailures(t *testing.T) {
	cases := map[string]struct {
		gen  *stubGenerator
		body string
		want string
	}{
		"bad json":     {&stubGenerator{}, `{prompt`, "invalid request body"},
		"model failed": {&stubGenerator{err: errors.New("groq unavailable")}, `{"prompt":"x"}`, "groq unavailable"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, newTestServer(t, tc.gen).Handler(), http.MethodPost, "/generate-level", tc.body)
			require.Equal(t, http.StatusInternalServerError, rec.Code)

			var resp generateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tc.want)
		})
	}
}

func TestPreflight(t *testing.T) {
	srv, err := New(Options{Generator: &stubGenerator{}, AllowOrigin: "https://game.example"})
	require.NoError(t, err)

	rec := do(t, srv.Handler(), http.MethodOptions, "/anything", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://game.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t, &stubGenerator{}).Handler()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/generate-level"},
		{http.MethodPost, "/other"},
		{http.MethodPut, "/generate-level"},
		{http.MethodPost, "/quick-level"},
	} {
		rec := do(t, h, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), "Not Found")
	}
}

func TestQuickLevel(t *testing.T) {
	h := newTestServer(t, &stubGenerator{}).Handler()

	rec := do(t, h, http.MethodGet, "/quick-level?tier=hard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg level.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	require.NoError(t, cfg.Check())
	assert.Equal(t, "Random Hard Level", cfg.Name)
	assert.Equal(t, 8, cfg.DeliveriesNeeded)
}

func TestQuickLevelDisabledWithoutSource(t *testing.T) {
	srv, err := New(Options{Generator: &stubGenerator{}})
	require.NoError(t, err)

	rec := do(t, srv.Handler(), http.MethodGet, "/quick-level", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRequiresGenerator(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestRecoverFromPanic(t *testing.T) {
	gen := panicGenerator{}
	srv, err := New(Options{Generator: gen})
	require.NoError(t, err)

	rec := do(t, srv.Handler(), http.MethodPost, "/generate-level", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

type panicGenerator struct{}

func (panicGenerator) Generate(context.Context, string) (string, error) { panic("boom") }

func TestServeWithClientAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := newTestServer(t, &stubGenerator{text: `{"name":"Served"}`})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := genclient.New("http://"+ln.Addr().String()+"/generate-level", 2*time.Second)
	text, err := client.Generate(context.Background(), "served")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Served"}`, text)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3002/generate-level", URL(":3002"))
	assert.Equal(t, "http://10.0.0.2:80/generate-level", URL("10.0.0.2:80"))
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
	code   int
}

func (w *brokenWriter) Header() http.Header       { return w.header }
func (w *brokenWriter) WriteHeader(code int)      { w.code = code }
func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs strings.Builder
	srv, err := New(Options{
		Generator: &stubGenerator{},
		Logger:    logging.NewTo(&logs, "test", "debug"),
	})
	require.NoError(t, err)

	w := &brokenWriter{header: http.Header{}}
	srv.writeJSON(w, http.StatusOK, generateResponse{Success: true})

	assert.Equal(t, http.StatusOK, w.code)
	assert.Contains(t, logs.String(), "cannot write response")
	assert.Contains(t, logs.String(), "connection reset")
}
