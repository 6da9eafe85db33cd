package questions

import (
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

// ── Teacher CRUD ────────────────────────────────────────

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	question, err := h.service.Create(req, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)
	resp, err := h.service.List(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question id"})
		return
	}

	question, err := h.service.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question id"})
		return
	}

	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	question, err := h.service.Update(id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question id"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Catalog ─────────────────────────────────────────────

func (h *Handler) GetTopics(w http.ResponseWriter, r *http.Request) {
	grade, err := strconv.Atoi(r.URL.Query().Get("grade"))
	if err != nil || !models.ValidGrades[grade] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Grade level must be between 1 and 3"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"grade_level": grade,
		"topics":      models.TopicsForGrade(grade),
	})
}

func (h *Handler) GetDifficulties(w http.ResponseWriter, r *http.Request) {
	type tier struct {
		Difficulty  models.Difficulty `json:"difficulty"`
		Points      int               `json:"points_per_question"`
		ChoiceCount int               `json:"choice_count"`
	}
	tiers := []tier{}
	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		tiers = append(tiers, tier{Difficulty: d, Points: d.Points(), ChoiceCount: d.ChoiceCount()})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"difficulties": tiers})
}

// ── Helpers ─────────────────────────────────────────────

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
	case errors.Is(err, ErrQuestionInUse):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Question has recorded answers and cannot be deleted"})
	default:
		log.Printf("[questions] %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func listRequestFromQuery(r *http.Request) models.QuestionListRequest {
	q := r.URL.Query()
	var req models.QuestionListRequest

	if v := q.Get("type"); v != "" {
		t := models.QuestionType(v)
		req.QuestionType = &t
	}
	if v := q.Get("grade"); v != "" {
		if grade, err := strconv.Atoi(v); err == nil {
			req.GradeLevel = &grade
		}
	}
	if v := q.Get("difficulty"); v != "" {
		d := models.Difficulty(v)
		req.Difficulty = &d
	}
	req.Search = q.Get("search")
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	return req
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
