package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
)

type HealthController interface {
	RegisterRoutes(g *gin.Engine)
}

type healthController struct {
	scriptGenerator    outbound.ScriptGeneratorPort
	imageGenerator     outbound.ImageGeneratorPort
	narrationGenerator outbound.NarrationGeneratorPort
	musicGenerator     outbound.MusicGeneratorPort
	videoCompiler      outbound.VideoCompilerPort
}

func NewHealthController(scriptGenerator outbound.ScriptGeneratorPort, imageGenerator outbound.ImageGeneratorPort,
	narrationGenerator outbound.NarrationGeneratorPort, musicGenerator outbound.MusicGeneratorPort,
	videoCompiler outbound.VideoCompilerPort) HealthController {
	return &healthController{
		scriptGenerator:    scriptGenerator,
		imageGenerator:     imageGenerator,
		narrationGenerator: narrationGenerator,
		musicGenerator:     musicGenerator,
		videoCompiler:      videoCompiler,
	}
}

func (h *healthController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", h.health)
}

// health probes each external collaborator independently. A degraded stage
// never blocks job submission; callers decide what to do with the booleans.
func (h *healthController) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	checks := map[string]bool{
		"ollama":           h.scriptGenerator.Ping(ctx) == nil,
		"stable_diffusion": h.imageGenerator.Ping(ctx) == nil,
		"piper":            h.narrationGenerator.Ping(ctx) == nil,
		"musicgen":         h.musicGenerator.Ping(ctx) == nil,
		"ffmpeg":           h.videoCompiler.Ping(ctx) == nil,
	}

	status := "healthy"
	for _, ok := range checks {
		if !ok {
			status = "degraded"
			break
		}
	}

	c.JSON(200, gin.H{
		"status": status,
		"checks": checks,
	})
}
