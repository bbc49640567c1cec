package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/claudeloba/talk-over-api/internal/clients/elevenlabs"
	"github.com/claudeloba/talk-over-api/internal/clients/giphy"
	"github.com/claudeloba/talk-over-api/internal/clients/openai"
	"github.com/claudeloba/talk-over-api/internal/clients/pexels"
	"github.com/claudeloba/talk-over-api/internal/clients/renderkit"
	"github.com/claudeloba/talk-over-api/internal/config"
	"github.com/claudeloba/talk-over-api/internal/database"
	"github.com/claudeloba/talk-over-api/internal/handlers"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
	"github.com/claudeloba/talk-over-api/internal/storage"
	"github.com/claudeloba/talk-over-api/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	dbClient, err := store.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize migrator")
	}
	if err := migrator.Run(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	migrator.Close()

	artifacts, err := storage.NewClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize artifact storage")
	}

	scriptWriter := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	narrator := elevenlabs.NewClient(cfg.ElevenLabsBaseURL, cfg.ElevenLabsAPIKey, cfg.DefaultVoiceID, artifacts)
	pexelsClient := pexels.NewClient(cfg.PexelsBaseURL, cfg.PexelsAPIKey, cfg.SearchPageSize)
	giphyClient := giphy.NewClient(cfg.GiphyBaseURL, cfg.GiphyAPIKey, cfg.SearchPageSize)
	renderer := renderkit.NewClient(cfg.RenderBaseURL, cfg.RenderAPIKey)

	aggregator := pipeline.NewAggregator(pexelsClient, giphyClient, cfg.SearchTimeout, log)
	machine := pipeline.NewMachine(dbClient, scriptWriter, narrator, aggregator, renderer, cfg.CallTimeout, cfg.RenderTimeout, log)

	projectsHandler := handlers.NewProjectsHandler(dbClient, log)
	pipelineHandler := handlers.NewPipelineHandler(machine, log)
	mediaHandler := handlers.NewMediaHandler(dbClient)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")

	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	api.POST("/projects/:project_id/advance", pipelineHandler.AdvanceProject)
	api.GET("/projects/:project_id/media", mediaHandler.ListMedia)
	api.POST("/projects/:project_id/assemble", pipelineHandler.AssembleProject)
	api.PUT("/projects/:project_id/status", pipelineHandler.ForceStatus)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
