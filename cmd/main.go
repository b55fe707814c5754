package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/JonattanS/RewindDay/application/services"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/infrastructure/adapters"
	"github.com/JonattanS/RewindDay/infrastructure/gin_interface/controllers"
	"github.com/JonattanS/RewindDay/middleware"
)

func main() {
	_ = godotenv.Load()

	ollamaConfig, err := config.GetOllamaConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get ollama config")
	}

	sdConfig, err := config.GetStableDiffusionConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get stable diffusion config")
	}

	piperConfig, err := config.GetPiperConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get piper config")
	}

	musicGenConfig, err := config.GetMusicGenConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get musicgen config")
	}

	ffmpegConfig, err := config.GetFFmpegConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get ffmpeg config")
	}

	storageConfig, err := config.GetStorageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get storage config")
	}

	logger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		logger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	artifactStore, err := adapters.NewLocalArtifactStore(storageConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare the videos directory")
	}

	jobStore := adapters.NewMemoryJobStore()

	contentFetcher := adapters.NewContentFetcher(logger)

	scriptGenerator := adapters.NewOllamaScriptGenerator(contentFetcher, ollamaConfig, logger)
	imageGenerator := adapters.NewSDImageGenerator(contentFetcher, sdConfig, artifactStore, logger)
	narrationGenerator := adapters.NewPiperNarrationGenerator(piperConfig, artifactStore, logger)
	musicGenerator := adapters.NewMusicGenGenerator(contentFetcher, musicGenConfig, artifactStore, logger)
	videoCompiler := adapters.NewFFmpegVideoCompiler(ffmpegConfig, artifactStore, logger)

	sceneMedia := services.NewSceneMediaGenerator(logger, imageGenerator, narrationGenerator, workerPool)

	pipeline := services.NewVideoPipelineOrchestrator(logger, jobStore, artifactStore, scriptGenerator,
		sceneMedia, musicGenerator, videoCompiler)

	videoService := services.NewVideoService(logger, jobStore, artifactStore, pipeline, workerPool)

	videoController := controllers.NewVideoController(logger, videoService, artifactStore)
	healthController := controllers.NewHealthController(scriptGenerator, imageGenerator, narrationGenerator,
		musicGenerator, videoCompiler)

	router := gin.Default()

	if err = router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.CORSMiddleware())

	videoController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	if err = router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
