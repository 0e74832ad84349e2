package webserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/promptlens/promptlens/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, dir string) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv, err := New(Config{
		DataDir:        dir,
		Registry:       reg,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	require.NoError(t, err)
	return srv, reg
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServesGeneratedData(t *testing.T) {
	res, err := synth.Generate(context.Background(), synth.Options{Seed: 1, Entries: 60})
	require.NoError(t, err)
	dir := t.TempDir()
	_, err = synth.WriteOutputs(dir, res, synth.OutputOptions{Gzip: true})
	require.NoError(t, err)

	srv, _ := newTestServer(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+res.Dataset.ID+"/entries?limit=5", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Total   int               `json:"total"`
		Entries []json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 60, page.Total)
	assert.Len(t, page.Entries, 5)
}

func TestNew_FailsOnMalformedData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, synth.DatasetFile), []byte("not json"), 0o644))

	_, err := New(Config{DataDir: dir, Registry: prometheus.NewRegistry()})
	require.Error(t, err)
}

func TestMetricsRecordedByRoutePattern(t *testing.T) {
	srv, reg := newTestServer(t, t.TempDir())
	h := srv.Handler()

	for _, path := range []string{"/api/datasets/1", "/api/datasets/2", "/nowhere"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `promptlens_api_requests_total{code="404",route="GET /api/datasets/{id}"} 2`)
	assert.Contains(t, body, `route="unmatched"`)

	n, err := testutil.GatherAndCount(reg, "promptlens_api_request_duration_seconds")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 2)
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET /api/health", 200, 0.1)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, t.TempDir())

	req := httptest.NewRequest(http.MethodOptions, "/api/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_GracefulShutdown(t *testing.T) {
	srv, _ := newTestServer(t, t.TempDir())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close() //nolint:errcheck
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.Contains(string(b), "ok")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
