package metric

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTP(t *testing.T) {
	m := New()

	m.ObserveHTTP("POST", "/api/register", 200, 5*time.Millisecond)
	m.ObserveHTTP("POST", "/api/register", 200, 7*time.Millisecond)
	m.ObserveHTTP("GET", "/api/stats", 500, time.Millisecond)

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/register", "200"))
	if got != 2 {
		t.Errorf("register requests = %v, want 2", got)
	}
	got = testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/stats", "500"))
	if got != 1 {
		t.Errorf("stats requests = %v, want 1", got)
	}
}

func TestCounters(t *testing.T) {
	m := New()

	m.ParticipantRegistered()
	m.AnswersSubmitted()
	m.AnswersSubmitted()
	m.MatchRun("matched")
	m.MatchRun("failed")
	m.SnapshotSave(nil)

	if got := testutil.ToFloat64(m.registrations); got != 1 {
		t.Errorf("registrations = %v", got)
	}
	if got := testutil.ToFloat64(m.submissions); got != 2 {
		t.Errorf("submissions = %v", got)
	}
	if got := testutil.ToFloat64(m.matchRuns.WithLabelValues("matched")); got != 1 {
		t.Errorf("matched runs = %v", got)
	}
	if got := testutil.ToFloat64(m.snapshotSaves.WithLabelValues("ok")); got != 1 {
		t.Errorf("snapshot ok = %v", got)
	}
}

func TestRelayGauges(t *testing.T) {
	m := New()

	m.RelayRoomOpened()
	m.RelayClientConnected()
	m.RelayClientConnected()
	m.RelayClientDisconnected()

	if got := testutil.ToFloat64(m.relayRooms); got != 1 {
		t.Errorf("rooms = %v", got)
	}
	if got := testutil.ToFloat64(m.relayClients); got != 1 {
		t.Errorf("clients = %v", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.ParticipantRegistered()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "kkokko_registrations_total 1") {
		t.Error("exposition missing kkokko_registrations_total")
	}
}
