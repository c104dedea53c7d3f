package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mirrorbot-hq/tgmirror/pkg/cache"
	"mirrorbot-hq/tgmirror/pkg/config"
	"mirrorbot-hq/tgmirror/pkg/proxy/handlers"
	"mirrorbot-hq/tgmirror/pkg/recorder"
	"mirrorbot-hq/tgmirror/pkg/telemetry/metrics"
	"mirrorbot-hq/tgmirror/pkg/upstream"
)

func newTestServer(t *testing.T, collector *metrics.Collector) *Server {
	t.Helper()

	store := cache.NewMemoryStore()
	rec := recorder.NewRecorder(store, collector, nil)
	t.Cleanup(func() { rec.Close() })

	client := upstream.NewClient(upstream.Config{BaseURL: "http://127.0.0.1:0"})
	handler := handlers.New(client, store, rec, nil, collector)

	cfg := config.NewDefault()
	return NewServer(&cfg.Server, &cfg.Telemetry.Metrics, handler, store, collector)
}

func TestServer_Routes(t *testing.T) {
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Path: "/metrics"}, prometheus.NewRegistry())
	srv := newTestServer(t, collector)
	handler := srv.Handler()

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/health", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{path: "/ready", wantStatus: http.StatusOK, wantBody: `"status":"ready"`},
		{path: "/metrics", wantStatus: http.StatusOK, wantBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q: %s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestServer_MetricsUnmountedWithoutCollector(t *testing.T) {
	srv := newTestServer(t, nil)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Without a collector the path falls through to the bot-method
	// catch-all and is rejected there.
	if rec.Code == http.StatusOK {
		t.Errorf("got status %d, expected /metrics to be unmounted", rec.Code)
	}
}

func TestServer_RequestIDOnEveryResponse(t *testing.T) {
	srv := newTestServer(t, nil)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on the response")
	}
}

func TestServer_ConfigureTLS(t *testing.T) {
	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	os.WriteFile(certFile, []byte("cert"), 0o600)
	os.WriteFile(keyFile, []byte("key"), 0o600)

	srv := newTestServer(t, nil)

	srv.config.TLS = config.TLSConfig{Enabled: true, CertFile: certFile, KeyFile: keyFile}
	tlsCfg, err := srv.configureTLS()
	if err != nil {
		t.Fatalf("configureTLS failed: %v", err)
	}
	if tlsCfg.MinVersion != 0x0304 { // TLS 1.3
		t.Errorf("got MinVersion %x, want TLS 1.3", tlsCfg.MinVersion)
	}

	srv.config.TLS.CertFile = filepath.Join(dir, "missing.pem")
	if _, err := srv.configureTLS(); err == nil {
		t.Error("expected error for missing cert file")
	}

	srv.config.TLS.CertFile = ""
	if _, err := srv.configureTLS(); err == nil {
		t.Error("expected error for unset cert file")
	}
}

func TestServer_IsRunning(t *testing.T) {
	srv := newTestServer(t, nil)
	if srv.IsRunning() {
		t.Error("new server must not report running")
	}
}

func TestServer_StartStopsOnContextCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.config.ListenAddress = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	// Let the listener come up before asking it to stop.
	deadline := time.Now().Add(5 * time.Second)
	for !srv.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !srv.IsRunning() {
		t.Fatal("server never reported running")
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Start returned error on cancellation: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
	if srv.IsRunning() {
		t.Error("server still reports running after shutdown")
	}
}
