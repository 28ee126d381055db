package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/heppy363/Play/internal/api/middleware"
	"github.com/heppy363/Play/internal/app/service"
	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	// Listings are available to any authenticated user; mutations are admin.
	r.Use(middleware.Authenticator)

	r.Get("/languages", h.listLanguages)
	r.Get("/themes", h.listThemes)
	r.Get("/difficulties", h.listDifficulties)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Post("/languages", h.createLanguage)
		admin.Put("/languages/{languageID}", h.renameLanguage)
		admin.Delete("/languages/{languageID}", h.deleteLanguage)
		admin.Post("/themes", h.createTheme)
		admin.Put("/themes/{themeID}", h.renameTheme)
		admin.Delete("/themes/{themeID}", h.deleteTheme)
		admin.Post("/difficulties", h.createDifficulty)
		admin.Delete("/difficulties/{difficultyID}", h.deleteDifficulty)
		admin.Get("/questions", h.listQuestions)
		admin.Post("/questions", h.createQuestion)
		admin.Delete("/questions/{questionID}", h.deleteQuestion)
	})
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *CatalogHandler) listLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.catalogService.ListLanguages(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, languages)
}

func (h *CatalogHandler) createLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	language, err := h.catalogService.CreateLanguage(r.Context(), req.Name)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, language)
}

func (h *CatalogHandler) renameLanguage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "languageID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid language id")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.catalogService.RenameLanguage(r.Context(), id, req.Name); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

func (h *CatalogHandler) deleteLanguage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "languageID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid language id")
		return
	}
	if err := h.catalogService.DeleteLanguage(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogHandler) listThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.catalogService.ListThemes(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, themes)
}

func (h *CatalogHandler) createTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	theme, err := h.catalogService.CreateTheme(r.Context(), req.Name)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, theme)
}

func (h *CatalogHandler) renameTheme(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "themeID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid theme id")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.catalogService.RenameTheme(r.Context(), id, req.Name); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

func (h *CatalogHandler) deleteTheme(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "themeID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid theme id")
		return
	}
	if err := h.catalogService.DeleteTheme(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogHandler) listDifficulties(w http.ResponseWriter, r *http.Request) {
	difficulties, err := h.catalogService.ListDifficulties(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, difficulties)
}

func (h *CatalogHandler) createDifficulty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	difficulty, err := h.catalogService.CreateDifficulty(r.Context(), req.Name, req.Level)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, difficulty)
}

func (h *CatalogHandler) deleteDifficulty(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "difficultyID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid difficulty id")
		return
	}
	if err := h.catalogService.DeleteDifficulty(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.catalogService.ListQuestions(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *CatalogHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	created, err := h.catalogService.CreateQuestion(r.Context(), &q)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "questionID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid question id")
		return
	}
	if err := h.catalogService.DeleteQuestion(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
