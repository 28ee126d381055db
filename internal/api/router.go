package api

import (
	"net/http"
	"time"

	"github.com/heppy363/Play/internal/api/handler"
	"github.com/heppy363/Play/internal/app/service"
	"github.com/heppy363/Play/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	catalogService *service.CatalogService,
	sessionService *service.SessionService,
	answerService *service.AnswerService,
	progressService *service.ProgressService,
	rankingService *service.RankingService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the token found in "Authorization: Bearer T" and puts claims
	// in context; Authenticator enforces them on protected routes.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		catalogHandler := handler.NewCatalogHandler(catalogService)
		v1.Route("/catalog", catalogHandler.RegisterRoutes)

		quizHandler := handler.NewQuizHandler(sessionService, answerService)
		v1.Route("/quiz", quizHandler.RegisterRoutes)

		progressHandler := handler.NewProgressHandler(progressService)
		v1.Route("/progress", progressHandler.RegisterRoutes)

		// Leaderboard is public
		rankingHandler := handler.NewRankingHandler(rankingService)
		v1.Route("/ranking", rankingHandler.RegisterRoutes)
	})

	return r
}
