package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/spaysidokito/math-racers-1/internal/models"
	"github.com/spaysidokito/math-racers-1/internal/questions"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	studentID := r.Context().Value("user_id").(int64)

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	sess, err := h.service.Start(studentID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.StartQuizResponse{
		SessionID:      sess.ID,
		Topic:          sess.QuestionType,
		GradeLevel:     sess.GradeLevel,
		Difficulty:     sess.Difficulty,
		TotalQuestions: sess.TotalQuestions,
	})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	studentID := r.Context().Value("user_id").(int64)
	sessionID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session id"})
		return
	}

	view, err := h.service.Questions(sessionID, studentID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	studentID := r.Context().Value("user_id").(int64)
	sessionID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session id"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitAnswer(sessionID, studentID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	studentID := r.Context().Value("user_id").(int64)
	sessionID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session id"})
		return
	}

	var req models.CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.Complete(r.Context(), sessionID, studentID, req.TotalTime)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) RecentSessions(w http.ResponseWriter, r *http.Request) {
	studentID := r.Context().Value("user_id").(int64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	summaries, err := h.service.Recent(studentID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []models.SessionSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": summaries})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNoQuestionsAvailable):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No questions available for that topic and difficulty"})
	case errors.Is(err, ErrInvalidSession):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz session not found"})
	case errors.Is(err, ErrUnknownQuestion):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Question does not belong to this session"})
	case errors.Is(err, ErrDuplicateAnswer):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "This question was already answered"})
	case errors.Is(err, questions.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
	default:
		log.Printf("[quiz] %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
