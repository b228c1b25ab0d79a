package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arcade-score-service/internal/app"
	"arcade-score-service/internal/domain"
	"arcade-score-service/internal/infra/memory"
)

func TestSaveScoreAndLeaderboard(t *testing.T) {
	handler := newTestHandler(t)

	for _, body := range []string{
		`{"player_name":"Alice","score":100,"level":2}`,
		`{"player_name":"Bob","score":300,"level":4}`,
	} {
		rec := doJSON(t, handler, http.MethodPost, "/api/save_score", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("save_score status %d body %s", rec.Code, rec.Body.String())
		}
	}

	// update_score is an alias for save_score
	rec := doJSON(t, handler, http.MethodPost, "/api/update_score", `{"player_name":"Alice","score":50,"level":9}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update_score status %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard status %d", rec.Code)
	}
	var entries []leaderboardEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PlayerName != "Bob" || entries[0].Score != 300 {
		t.Fatalf("expected Bob leading, got %+v", entries[0])
	}
	if entries[1].Score != 100 || entries[1].Level != 2 {
		t.Fatalf("expected Alice's lower save ignored, got %+v", entries[1])
	}
}

func TestSaveScoreMissingName(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/save_score", `{"score":10,"level":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaveScoreDefaults(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/save_score", `{"player_name":"Alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected defaults applied, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/leaderboard", "")
	var entries []leaderboardEntry
	_ = json.Unmarshal(rec.Body.Bytes(), &entries)
	if len(entries) != 1 || entries[0].Score != 0 || entries[0].Level != 1 {
		t.Fatalf("expected score=0 level=1 defaults, got %+v", entries)
	}
}

func TestLeaderboardLimitParam(t *testing.T) {
	handler := newTestHandler(t)

	for _, body := range []string{
		`{"player_name":"Alice","score":100,"level":2}`,
		`{"player_name":"Bob","score":300,"level":4}`,
		`{"player_name":"Carol","score":200,"level":3}`,
	} {
		doJSON(t, handler, http.MethodPost, "/api/save_score", body)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/leaderboard?limit=1", "")
	var entries []leaderboardEntry
	_ = json.Unmarshal(rec.Body.Bytes(), &entries)
	if len(entries) != 1 || entries[0].PlayerName != "Bob" {
		t.Fatalf("expected limit honored, got %+v", entries)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/leaderboard?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestAdminLoginStatuses(t *testing.T) {
	handler := newTestHandler(t)

	cases := []struct {
		body   string
		status int
	}{
		{`{"username":"admin","password":"letmein"}`, http.StatusOK},
		{`{"username":"admin","password":"wrong"}`, http.StatusUnauthorized},
		{`{"username":"nobody","password":"letmein"}`, http.StatusUnauthorized},
		{`{"username":"","password":""}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := doJSON(t, handler, http.MethodPost, "/api/admin_login", tc.body)
		if rec.Code != tc.status {
			t.Fatalf("body %s: expected %d, got %d", tc.body, tc.status, rec.Code)
		}
	}
}

func TestGetQuestionsNotFound(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/get_questions", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty bank, got %d", rec.Code)
	}
}

func TestUploadThenGetQuestions(t *testing.T) {
	handler := newTestHandler(t)

	rec := doUpload(t, handler, "questions.txt", "What is 2+2?|3|4|5|6|4\nbad|only|three")
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/get_questions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get_questions status %d", rec.Code)
	}
	var questions []questionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &questions); err != nil {
		t.Fatalf("decode questions: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected malformed row dropped, got %d", len(questions))
	}
	if questions[0].Question != "What is 2+2?" || questions[0].Option2 != "4" || questions[0].CorrectAnswer != "4" {
		t.Fatalf("unexpected question %+v", questions[0])
	}
}

func TestUploadWithoutFile(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload_questions", strings.NewReader(""))
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}

func TestStoreFailureIsShielded(t *testing.T) {
	service := app.NewScoreService(
		failingLedger{},
		memory.NewCredentialStore(nil),
		memory.NewStaticQuestionRepository(nil),
	)
	handler := NewHandler(service)

	rec := doJSON(t, handler, http.MethodGet, "/api/leaderboard", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused to 10.0.0.7") {
		t.Fatalf("internal error text leaked to caller: %s", rec.Body.String())
	}
}

type failingLedger struct{}

func (failingLedger) Upsert(context.Context, string, int, int) error {
	return errors.New("connection refused to 10.0.0.7")
}

func (failingLedger) TopN(context.Context, int) ([]domain.ScoreRecord, error) {
	return nil, errors.New("connection refused to 10.0.0.7")
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	service := app.NewScoreService(
		memory.NewScoreLedger(),
		memory.NewCredentialStore(map[string]string{"admin": app.HashPassword("letmein")}),
		memory.NewStaticQuestionRepository(nil),
	)
	return NewHandler(service)
}

func doJSON(t *testing.T, handler *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	return rec
}

func doUpload(t *testing.T, handler *Handler, filename, contents string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload_questions", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	return rec
}
