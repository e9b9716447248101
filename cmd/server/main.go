package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/ncertflash/internal/api"
	"github.com/vytor/ncertflash/internal/config"
	"github.com/vytor/ncertflash/internal/db"
	"github.com/vytor/ncertflash/internal/flashcard"
	"github.com/vytor/ncertflash/internal/jobs"
	"github.com/vytor/ncertflash/internal/logger"
	"github.com/vytor/ncertflash/internal/repository"
	"github.com/vytor/ncertflash/internal/repository/memory"
	"github.com/vytor/ncertflash/internal/repository/sqlite"
	"github.com/vytor/ncertflash/internal/services"
	"github.com/vytor/ncertflash/internal/tutor"
	"github.com/vytor/ncertflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("NCERT Flash Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s db_path=%s store=%s", cfg.DBDriver, cfg.DBPath, cfg.Store)
	log.Debug("srs_max_interval_days=%d", cfg.SRSMaxIntervalDays)
	log.Debug("question_worker_count=%d question_queue_size=%d", cfg.QuestionWorkerCount, cfg.QuestionQueueSize)
	log.Debug("llm_provider=%s llm_model=%s llm_timeout=%s", cfg.LLMProvider, cfg.LLMModel, cfg.LLMTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	retry := tutor.DefaultRetryConfig()
	retry.MaxAttempts = cfg.LLMMaxAttempts
	provider, err := tutor.NewProvider(ctx, tutor.Config{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
		Timeout:  cfg.LLMTimeout,
		Retry:    retry,
	}, log)
	if err != nil {
		log.Error("failed to initialize tutor model: %v", err)
		os.Exit(1)
	}
	log.Info("tutor model: %s", provider.ModelID())

	// Repositories
	profileRepo := sqlite.NewProfileRepository(database.DB)
	styleRepo := sqlite.NewLearningStyleRepository(database.DB)
	curriculumRepo := sqlite.NewCurriculumRepository(database.DB)
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	var flashcardRepo repository.FlashcardRepository = sqlite.NewFlashcardRepository(database.DB)
	if cfg.Store == "memory" {
		log.Warn("flashcards are kept in memory and will be lost on restart")
		flashcardRepo = memory.NewFlashcardRepository()
	}

	// Worker pool
	questionPool := worker.NewPool(cfg.QuestionWorkerCount, cfg.QuestionQueueSize)
	jobQueue := jobs.NewWorkerQueue(questionPool)

	// Services
	questionService := services.NewQuestionService(curriculumRepo, questionRepo, tutor.NewQuestionGenerator(provider), jobQueue)
	jobQueue.SetQuestionService(questionService)

	srv := &api.Server{
		DB:                database,
		ProfileService:    services.NewProfileService(profileRepo),
		FlashcardService:  services.NewFlashcardService(flashcardRepo, flashcard.Scheduler{MaxIntervalDays: cfg.SRSMaxIntervalDays}, nil),
		AssessmentService: services.NewAssessmentService(styleRepo, nil),
		ClassroomService:  services.NewClassroomService(sqlite.NewClassroomRepository(database.DB), profileRepo, nil),
		CurriculumService: services.NewCurriculumService(curriculumRepo),
		QuizService:       services.NewQuizService(curriculumRepo, questionRepo, sqlite.NewQuizAttemptRepository(database.DB), nil),
		TutorService:      services.NewTutorService(provider, profileRepo, styleRepo, sqlite.NewChatRepository(database.DB), cfg.ChatHistoryLimit, nil),
		QuestionService:   questionService,
		RequestTimeout:    30 * time.Second,
	}

	questionPool.Start(ctx)

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: 15 * time.Second,
		// a tutor reply may use every retry attempt
		WriteTimeout: writeTimeout(retry, cfg.LLMTimeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping question pool")
	cancel()
	questionPool.Stop()

	log.Info("===========================================")
	log.Info("NCERT Flash Server Stopped")
	log.Info("===========================================")
}

// writeTimeout leaves room for the slowest retried tutor reply. Without a
// per-attempt model timeout there is no bound, so writes never time out.
func writeTimeout(retry tutor.RetryConfig, perAttempt time.Duration) time.Duration {
	budget := retry.Budget(perAttempt)
	if budget == 0 {
		return 0
	}
	return budget + 30*time.Second
}
