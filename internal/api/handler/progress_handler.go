package handler

import (
	"context"
	"net/http"

	"github.com/heppy363/Play/internal/api/middleware"
	"github.com/heppy363/Play/internal/app/service"
	"github.com/heppy363/Play/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/languages", h.byLanguage)
	r.Get("/themes", h.byTheme)
	r.Get("/difficulties", h.byDifficulty)
}

func (h *ProgressHandler) byLanguage(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.progressService.CompletionByLanguage)
}

func (h *ProgressHandler) byTheme(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.progressService.CompletionByTheme)
}

func (h *ProgressHandler) byDifficulty(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.progressService.CompletionByDifficulty)
}

func (h *ProgressHandler) respond(w http.ResponseWriter, r *http.Request,
	completion func(context.Context, int64) (map[int64]float64, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	percentages, err := completion(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, percentages)
}
