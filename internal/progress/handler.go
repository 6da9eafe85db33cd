package progress

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/spaysidokito/math-racers-1/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ── Student Endpoints ───────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	studentID := r.Context().Value("user_id").(int64)

	resp, err := h.service.StudentProgress(studentID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	currentUserID := r.Context().Value("user_id").(int64)

	grade, err := strconv.Atoi(r.URL.Query().Get("grade"))
	if err != nil || !models.ValidGrades[grade] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Grade level must be between 1 and 3"})
		return
	}

	var topic *models.QuestionType
	if v := r.URL.Query().Get("topic"); v != "" {
		t := models.QuestionType(v)
		if !models.ValidQuestionTypes[t] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown topic"})
			return
		}
		topic = &t
	}

	resp, err := h.service.Leaderboard(grade, topic, currentUserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Teacher Endpoints ───────────────────────────────────

func (h *Handler) ListStudentPerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var grade *int
	if v := q.Get("grade"); v != "" {
		g, err := strconv.Atoi(v)
		if err != nil || !models.ValidGrades[g] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Grade level must be between 1 and 3"})
			return
		}
		grade = &g
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	resp, err := h.service.StudentPerformance(grade, page, pageSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetStudentDetail(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid student id"})
		return
	}

	resp, err := h.service.StudentDetail(studentID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetClassPerformance(w http.ResponseWriter, r *http.Request) {
	grade, err := strconv.Atoi(r.URL.Query().Get("grade"))
	if err != nil || !models.ValidGrades[grade] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Grade level must be between 1 and 3"})
		return
	}

	resp, err := h.service.ClassPerformance(grade)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTopicAssignments(w http.ResponseWriter, r *http.Request) {
	grade, err := strconv.Atoi(r.URL.Query().Get("grade"))
	if err != nil || !models.ValidGrades[grade] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Grade level must be between 1 and 3"})
		return
	}

	resp, err := h.service.TopicAssignments(grade)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AssignTopics(w http.ResponseWriter, r *http.Request) {
	var req models.AssignTopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.AssignTopics(req); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Topics assigned"})
}

// GetBadgeCatalog lists every badge and its definition.
func (h *Handler) GetBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	catalog := make([]entry, 0, len(Badges))
	for key, def := range Badges {
		catalog = append(catalog, entry{Key: key, Name: def.Name, Description: def.Description})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": catalog})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
	default:
		log.Printf("[progress] %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
