package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MONGU38/kkokko-project/internal/core/service"
	"github.com/MONGU38/kkokko-project/internal/storage"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	store, err := storage.New(storage.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("storage.New error: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := New(Config{
		ParticipantService: service.NewParticipantService(store),
		AnswerService:      service.NewAnswerService(store),
		MatchService:       service.NewMatchService(store),
	})

	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return rec, decoded
}

func registerParticipant(t *testing.T, mux *http.ServeMux, nickname, category string) string {
	t.Helper()

	rec, body := doJSON(t, mux, http.MethodPost, "/api/register", map[string]any{
		"nickname": nickname,
		"category": category,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %v", rec.Code, body)
	}
	participant, ok := body["participant"].(map[string]any)
	if !ok {
		t.Fatalf("register response missing participant: %v", body)
	}
	id, _ := participant["id"].(string)
	if id == "" {
		t.Fatalf("register response missing participant id: %v", body)
	}
	return id
}

func submitAnswers(t *testing.T, mux *http.ServeMux, participantID, category string, answers map[string]any) {
	t.Helper()

	rec, body := doJSON(t, mux, http.MethodPost, "/api/answers", map[string]any{
		"participant_id": participantID,
		"category":       category,
		"answers":        answers,
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("answers status = %d, body %v", rec.Code, body)
	}
}

func TestRegister(t *testing.T) {
	mux := newTestMux(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/register", map[string]any{
		"nickname": "mina",
		"category": "separated",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}

	participant := body["participant"].(map[string]any)
	if got := participant["nickname"]; got != "mina" {
		t.Errorf("nickname = %v", got)
	}
	if got := participant["category"]; got != "separated" {
		t.Errorf("category = %v", got)
	}
	if id, _ := participant["id"].(string); !strings.HasPrefix(id, "kkpt-") {
		t.Errorf("id = %v", participant["id"])
	}
}

func TestRegisterInvalidCategory(t *testing.T) {
	mux := newTestMux(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/register", map[string]any{
		"nickname": "mina",
		"category": "unknown",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Error("expected a message")
	}
}

func TestRegisterInvalidBody(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitAnswers(t *testing.T) {
	mux := newTestMux(t)
	id := registerParticipant(t, mux, "mina", "friends")

	rec, body := doJSON(t, mux, http.MethodPost, "/api/answers", map[string]any{
		"participant_id": id,
		"category":       "friends",
		"answers":        map[string]any{"color": []string{"red", "blue"}, "pet": "dog"},
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}
	if got, _ := body["id"].(string); !strings.HasPrefix(got, "kkas-") {
		t.Errorf("id = %v", body["id"])
	}
}

func TestSubmitAnswersMissingParticipantID(t *testing.T) {
	mux := newTestMux(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/answers", map[string]any{
		"category": "friends",
		"answers":  map[string]any{"pet": "dog"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
}

func TestFindMatchesWithoutAnswers(t *testing.T) {
	mux := newTestMux(t)
	id := registerParticipant(t, mux, "mina", "friends")

	rec, body := doJSON(t, mux, http.MethodPost, "/api/find-matches", map[string]any{
		"participant_id": id,
		"category":       "friends",
	})
	// Not-found is a reported outcome, not a transport error.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Error("expected a message")
	}
}

func TestFindMatches(t *testing.T) {
	mux := newTestMux(t)

	a := registerParticipant(t, mux, "mina", "friends")
	b := registerParticipant(t, mux, "jun", "friends")
	submitAnswers(t, mux, a, "friends", map[string]any{"pet": "dog"})
	submitAnswers(t, mux, b, "friends", map[string]any{"pet": "dog"})

	rec, body := doJSON(t, mux, http.MethodPost, "/api/find-matches", map[string]any{
		"participant_id": a,
		"category":       "friends",
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}

	matches, ok := body["matches"].([]any)
	if !ok || len(matches) != 1 {
		t.Fatalf("matches = %v", body["matches"])
	}
	first := matches[0].(map[string]any)
	if first["participant_id"] != b {
		t.Errorf("matched participant = %v, want %v", first["participant_id"], b)
	}
	if first["nickname"] != "jun" {
		t.Errorf("nickname = %v", first["nickname"])
	}
	if first["score"] != float64(100) {
		t.Errorf("score = %v, want 100", first["score"])
	}
	if body["total"] != float64(1) {
		t.Errorf("total = %v", body["total"])
	}
}

func TestMatchDetails(t *testing.T) {
	mux := newTestMux(t)

	a := registerParticipant(t, mux, "mina", "friends")
	b := registerParticipant(t, mux, "jun", "friends")
	submitAnswers(t, mux, a, "friends", map[string]any{"pet": "dog", "color": "red"})
	submitAnswers(t, mux, b, "friends", map[string]any{"pet": "dog", "color": "blue"})

	rec, body := doJSON(t, mux, http.MethodPost, "/api/match-details", map[string]any{
		"participant_id_1": a,
		"participant_id_2": b,
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}

	comparison, ok := body["comparison"].(map[string]any)
	if !ok {
		t.Fatalf("comparison = %v", body["comparison"])
	}
	pet := comparison["pet"].(map[string]any)
	if pet["equal"] != true {
		t.Errorf("pet equal = %v", pet["equal"])
	}
	color := comparison["color"].(map[string]any)
	if color["equal"] != false {
		t.Errorf("color equal = %v", color["equal"])
	}
}

func TestMatchDetailsMissingAnswers(t *testing.T) {
	mux := newTestMux(t)

	a := registerParticipant(t, mux, "mina", "friends")
	b := registerParticipant(t, mux, "jun", "friends")
	submitAnswers(t, mux, a, "friends", map[string]any{"pet": "dog"})

	rec, body := doJSON(t, mux, http.MethodPost, "/api/match-details", map[string]any{
		"participant_id_1": a,
		"participant_id_2": b,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestStats(t *testing.T) {
	mux := newTestMux(t)

	a := registerParticipant(t, mux, "mina", "friends")
	registerParticipant(t, mux, "jun", "separated")
	submitAnswers(t, mux, a, "friends", map[string]any{"pet": "dog"})

	rec, body := doJSON(t, mux, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}

	stats := body["stats"].(map[string]any)
	if stats["total_participants"] != float64(2) {
		t.Errorf("total_participants = %v", stats["total_participants"])
	}
	if stats["total_answer_sets"] != float64(1) {
		t.Errorf("total_answer_sets = %v", stats["total_answer_sets"])
	}
	if stats["total_match_records"] != float64(0) {
		t.Errorf("total_match_records = %v", stats["total_match_records"])
	}

	categories := stats["categories"].(map[string]any)
	if categories["friends"] != float64(1) || categories["separated"] != float64(1) || categories["missing"] != float64(0) {
		t.Errorf("categories = %v", categories)
	}
}

func TestHealth(t *testing.T) {
	mux := newTestMux(t)

	rec, body := doJSON(t, mux, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestReady(t *testing.T) {
	store, err := storage.New(storage.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	ready := false
	h := New(Config{
		ParticipantService: service.NewParticipantService(store),
		AnswerService:      service.NewAnswerService(store),
		MatchService:       service.NewMatchService(store),
		Ready:              func() bool { return ready },
	})
	mux := http.NewServeMux()
	h.Register(mux)

	rec, _ := doJSON(t, mux, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	ready = true
	rec, _ = doJSON(t, mux, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
