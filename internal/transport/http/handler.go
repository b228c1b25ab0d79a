package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"arcade-score-service/internal/app"
	"arcade-score-service/internal/domain"
	"github.com/gorilla/mux"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100

	// uploads are small pipe-delimited text files
	maxUploadBytes = 1 << 20
)

// Handler exposes the persistence facade as a REST API.
type Handler struct {
	service *app.ScoreService
}

func NewHandler(service *app.ScoreService) *Handler {
	return &Handler{service: service}
}

// Router wires the API routes.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leaderboard", h.leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/save_score", h.saveScore).Methods(http.MethodPost)
	api.HandleFunc("/update_score", h.saveScore).Methods(http.MethodPost)
	api.HandleFunc("/admin_login", h.adminLogin).Methods(http.MethodPost)
	api.HandleFunc("/get_questions", h.getQuestions).Methods(http.MethodGet)
	api.HandleFunc("/upload_questions", h.uploadQuestions).Methods(http.MethodPost)
	return r
}

type leaderboardEntry struct {
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	LastPlayed string `json:"last_played"`
}

type saveScoreRequest struct {
	PlayerName string `json:"player_name"`
	Score      *int   `json:"score"`
	Level      *int   `json:"level"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type questionResponse struct {
	Question      string `json:"question"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectAnswer string `json:"correct_answer"`
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	records, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.writeFailure(w, "leaderboard", err)
		return
	}

	entries := make([]leaderboardEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, leaderboardEntry{
			PlayerName: record.PlayerName,
			Score:      record.Score,
			Level:      record.Level,
			LastPlayed: record.LastPlayed.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) saveScore(w http.ResponseWriter, r *http.Request) {
	var req saveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// callers may omit score/level; defaults match the historical API
	score := 0
	if req.Score != nil {
		score = *req.Score
	}
	level := 1
	if req.Level != nil {
		level = *req.Level
	}

	if err := h.service.SaveScore(r.Context(), req.PlayerName, score, level); err != nil {
		h.writeFailure(w, "save score", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.service.AdminLogin(r.Context(), req.Username, req.Password); err != nil {
		h.writeFailure(w, "admin login", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.Questions(r.Context())
	if err != nil {
		h.writeFailure(w, "get questions", err)
		return
	}

	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionResponse{
			Question:      q.Text,
			Option1:       q.Options[0],
			Option2:       q.Options[1],
			Option3:       q.Options[2],
			Option4:       q.Options[3],
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) uploadQuestions(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeFailure(w, "upload questions", err)
		return
	}

	if err := h.service.UploadQuestions(r.Context(), string(raw)); err != nil {
		h.writeFailure(w, "upload questions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeFailure maps service errors to status codes. Anything outside the
// known taxonomy is logged and reported as a generic failure so internal
// store diagnostics never reach the caller.
func (h *Handler) writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownAdmin), errors.Is(err, domain.ErrWrongPassword):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrQuestionBankNotFound):
		writeError(w, http.StatusNotFound, "no questions available")
	default:
		log.Printf("%s failed: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
