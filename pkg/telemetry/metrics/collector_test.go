package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mirrorbot-hq/tgmirror/pkg/config"
)

func newCollector(t *testing.T, enabled bool) *Collector {
	t.Helper()
	return NewCollector(&config.MetricsConfig{Enabled: enabled}, prometheus.NewRegistry())
}

func TestCollector_RecordRequest(t *testing.T) {
	c := newCollector(t, true)

	c.RecordRequest("sendMessage", "upstream", "200", 0.1)
	c.RecordRequest("sendMessage", "upstream", "200", 0.2)
	c.RecordRequest("getMessage", "local", "404", 0.01)

	got := testutil.ToFloat64(c.requestMetrics.requestsTotal.WithLabelValues("sendMessage", "upstream", "200"))
	if got != 2 {
		t.Errorf("got %v sendMessage requests, want 2", got)
	}
	got = testutil.ToFloat64(c.requestMetrics.requestsTotal.WithLabelValues("getMessage", "local", "404"))
	if got != 1 {
		t.Errorf("got %v getMessage requests, want 1", got)
	}
}

func TestCollector_MiningCounters(t *testing.T) {
	c := newCollector(t, true)

	c.RecordMined("message", 3)
	c.RecordMined("chat", 0) // zero counts are not recorded
	c.RecordUpserts("message", 3)
	c.RecordMiningFailure("decode")

	if got := testutil.ToFloat64(c.miningMetrics.minedTotal.WithLabelValues("message")); got != 3 {
		t.Errorf("got %v mined messages, want 3", got)
	}
	if got := testutil.ToFloat64(c.miningMetrics.minedTotal.WithLabelValues("chat")); got != 0 {
		t.Errorf("got %v mined chats, want 0", got)
	}
	if got := testutil.ToFloat64(c.miningMetrics.upsertsTotal.WithLabelValues("message")); got != 3 {
		t.Errorf("got %v upserts, want 3", got)
	}
	if got := testutil.ToFloat64(c.miningMetrics.failuresTotal.WithLabelValues("decode")); got != 1 {
		t.Errorf("got %v decode failures, want 1", got)
	}
}

func TestCollector_DisabledRecordsNothing(t *testing.T) {
	c := newCollector(t, false)

	c.RecordRequest("sendMessage", "upstream", "200", 0.1)
	c.RecordMined("message", 5)
	c.RecordMiningFailure("store")

	if got := testutil.ToFloat64(c.requestMetrics.requestsTotal.WithLabelValues("sendMessage", "upstream", "200")); got != 0 {
		t.Errorf("disabled collector recorded %v requests", got)
	}
	if got := testutil.ToFloat64(c.miningMetrics.minedTotal.WithLabelValues("message")); got != 0 {
		t.Errorf("disabled collector recorded %v mined entities", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := newCollector(t, true)
	c.RecordRequest("getChats", "local", "200", 0.05)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "tgmirror_requests_total") {
		t.Errorf("exposition output missing tgmirror_requests_total:\n%s", body)
	}
	if !strings.Contains(body, `source="local"`) {
		t.Errorf("exposition output missing the source label:\n%s", body)
	}
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	c := NewCollector(cfg, nil)

	if cfg.Namespace != "tgmirror" {
		t.Errorf("got namespace %q, want tgmirror", cfg.Namespace)
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		t.Error("expected default duration buckets")
	}
	if c.Registry() == nil {
		t.Error("expected a registry to be created")
	}
}
