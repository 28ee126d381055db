package handler

import (
	"net/http"

	"github.com/heppy363/Play/internal/app/service"
	"github.com/heppy363/Play/internal/common"

	"github.com/go-chi/chi/v5"
)

type RankingHandler struct {
	rankingService *service.RankingService
}

func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ranking)
}

func (h *RankingHandler) ranking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rankingService.Ranking(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
