package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heppy363/Play/internal/api"
	"github.com/heppy363/Play/internal/app/service"
	"github.com/heppy363/Play/internal/common/security"
	"github.com/heppy363/Play/internal/domain/repository"
	"github.com/heppy363/Play/internal/platform/cache"
	"github.com/heppy363/Play/internal/platform/config"
	"github.com/heppy363/Play/internal/platform/database"
	"github.com/heppy363/Play/internal/platform/notify"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Schema bootstrap failed: %v", err)
	}
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Notifier (optional, best-effort channel)
	var notifier notify.Notifier = notify.Noop{}
	botCtx, botCancel := context.WithCancel(context.Background())
	defer botCancel()
	if token := config.AppConfig.TelegramBotToken; token != "" {
		telegram, err := notify.NewTelegramNotifier(token)
		if err != nil {
			log.Printf("Telegram notifier disabled: %v", err)
		} else {
			notifier = telegram
			go telegram.Listen(botCtx)
			fmt.Println("Telegram bot started.")
		}
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	languageRepo := repository.NewPgLanguageRepository(database.DB)
	themeRepo := repository.NewPgThemeRepository(database.DB)
	difficultyRepo := repository.NewPgDifficultyRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)
	answerRepo := repository.NewPgAnswerRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, notifier)
	catalogService := service.NewCatalogService(languageRepo, themeRepo, difficultyRepo, questionRepo)
	answerService := service.NewAnswerService(questionRepo, answerRepo)
	sessionService := service.NewSessionService(
		questionRepo, difficultyRepo, answerRepo, progressRepo, userRepo,
		config.AppConfig.PointsPerQuestion,
	)
	progressService := service.NewProgressService(answerRepo)
	rankingService := service.NewRankingService(
		progressRepo, cache.RDB,
		time.Duration(config.AppConfig.RankingCacheTTLSecs)*time.Second,
	)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, catalogService, sessionService, answerService, progressService, rankingService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	botCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
