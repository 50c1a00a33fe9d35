package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues(SourceDexScreener, OutcomeError))

	ObserveUpstream(SourceDexScreener, time.Now(), errors.New("boom"))

	after := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues(SourceDexScreener, OutcomeError))
	if after != before+1 {
		t.Errorf("expected error counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestObserveCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("token", "hit"))

	ObserveCacheLookup("token", true)
	ObserveCacheLookup("token", false)

	if got := testutil.ToFloat64(cacheLookupsTotal.WithLabelValues("token", "hit")); got != before+1 {
		t.Errorf("expected hit counter %v, got %v", before+1, got)
	}
}

func TestHandler(t *testing.T) {
	ObservePartialHolding()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "holding_partial_reads_total") {
		t.Error("expected holding_partial_reads_total in metrics output")
	}
}
