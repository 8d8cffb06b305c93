package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/dangbert/thesis-app/config"
	"github.com/dangbert/thesis-app/database"
	"github.com/dangbert/thesis-app/internal/logger"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/runner"
	"github.com/dangbert/thesis-app/internal/service"
	"github.com/rs/zerolog/log"
)

// The job runner is a separate process from the API server so slow LLM calls
// never block request handling. It polls the shared job table.
func main() {
	logger.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	attemptRepo := repository.NewAttemptRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	jobRepo := repository.NewJobRepository(db)

	llmSvc, err := service.NewGeminiLLMService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM service")
	}
	feedbackJobSvc := service.NewFeedbackJobService(attemptRepo, feedbackRepo, jobRepo, llmSvc, cfg)
	jobSvc := service.NewJobService(jobRepo, feedbackJobSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := runner.New(jobRepo, jobSvc, cfg.Runner.PollInterval)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Job runner exited with error")
	}
	log.Info().Msg("Job runner stopped")
}
