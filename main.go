package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lucasbecker/upload-ai/config"
	"github.com/lucasbecker/upload-ai/generation"
	"github.com/lucasbecker/upload-ai/handlers/api"
	"github.com/lucasbecker/upload-ai/logger"
	"github.com/lucasbecker/upload-ai/repository/sqlite"
	"github.com/lucasbecker/upload-ai/services/completion"
	"github.com/lucasbecker/upload-ai/services/prompt"
	"github.com/lucasbecker/upload-ai/services/video"
	"github.com/lucasbecker/upload-ai/speech"
	"github.com/lucasbecker/upload-ai/storage"
	"github.com/lucasbecker/upload-ai/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Init(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := sqlite.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey)
	validator := validation.NewValidator(cfg)

	videoService := video.NewService(
		sqlite.NewVideoRepository(db),
		store,
		speech.NewOpenAIBackend(openaiClient, cfg.OpenAI.TranscribeLanguage),
		validator,
		video.Config{},
	)
	promptService := prompt.NewService(sqlite.NewPromptRepository(db))
	completionService := completion.NewService(
		generation.NewOpenAIStreamer(openaiClient, cfg.OpenAI.CompletionModel),
		validator,
	)

	server := api.NewServer(cfg,
		api.WithServices(videoService, promptService, completionService),
		api.WithLogger(appLogger),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			appLogger.WithError(err).Error("Server shutdown error")
		}
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Driver == "spaces" {
		return storage.NewSpacesStore(storage.SpacesConfig{
			AccessKey: cfg.Storage.SpacesAccessKey,
			SecretKey: cfg.Storage.SpacesSecretKey,
			Region:    cfg.Storage.SpacesRegion,
			Endpoint:  cfg.Storage.SpacesEndpoint,
			Bucket:    cfg.Storage.SpacesBucket,
		})
	}
	return storage.NewDiskStore(cfg.Storage.Root)
}
