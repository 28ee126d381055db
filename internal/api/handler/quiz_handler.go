package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/heppy363/Play/internal/api/middleware"
	"github.com/heppy363/Play/internal/app/service"
	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	sessionService *service.SessionService
	answerService  *service.AnswerService
}

func NewQuizHandler(sessionService *service.SessionService, answerService *service.AnswerService) *QuizHandler {
	return &QuizHandler{sessionService: sessionService, answerService: answerService}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/sessions", h.startSession)
	r.Get("/sessions/{sessionID}", h.currentQuestion)
	r.Post("/sessions/{sessionID}/next", h.next)
	r.Post("/sessions/{sessionID}/previous", h.previous)
	r.Post("/sessions/{sessionID}/confirm", h.confirm)
	r.Post("/sessions/{sessionID}/advance", h.advance)
	r.Post("/sessions/{sessionID}/abandon", h.abandon)
	r.Post("/answers/{questionID}", h.submitAnswer)
}

func (h *QuizHandler) startSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var triple model.Triple
	if err := json.NewDecoder(r.Body).Decode(&triple); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	view, err := h.sessionService.Start(r.Context(), userID, triple)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, view)
}

func (h *QuizHandler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionService.Current(chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}

func (h *QuizHandler) next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.sessionService.Next)
}

func (h *QuizHandler) previous(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.sessionService.Previous)
}

func (h *QuizHandler) navigate(w http.ResponseWriter, r *http.Request,
	move func(context.Context, string, service.Submission) (*service.SessionView, error)) {
	var sub service.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	view, err := move(r.Context(), chi.URLParam(r, "sessionID"), sub)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}

func (h *QuizHandler) confirm(w http.ResponseWriter, r *http.Request) {
	var sub service.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	outcome, err := h.sessionService.Confirm(r.Context(), chi.URLParam(r, "sessionID"), sub)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, outcome)
}

func (h *QuizHandler) advance(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionService.Advance(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}

func (h *QuizHandler) abandon(w http.ResponseWriter, r *http.Request) {
	// The in-flight submission is optional on an unclean exit.
	var sub *service.Submission
	if r.ContentLength != 0 {
		sub = &service.Submission{}
		if err := json.NewDecoder(r.Body).Decode(sub); err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
			return
		}
	}
	outcome, err := h.sessionService.Abandon(r.Context(), chi.URLParam(r, "sessionID"), sub)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, outcome)
}

// submitAnswer evaluates one question outside any session and records the
// verdict.
func (h *QuizHandler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	questionID, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid question id")
		return
	}

	var sub service.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	verdict, err := h.answerService.Submit(r.Context(), userID, questionID, sub)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"is_correct": verdict})
}
