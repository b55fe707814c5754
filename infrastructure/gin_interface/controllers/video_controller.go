package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JonattanS/RewindDay/application/ports/inbound"
	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/domain"
	"github.com/JonattanS/RewindDay/infrastructure/gin_interface/dto"
)

type VideoController interface {
	RegisterRoutes(g *gin.Engine)
}

type videoController struct {
	logger         outbound.LoggerPort
	videoGenerator inbound.VideoGeneratorPort
	artifactStore  outbound.ArtifactStorePort
}

func NewVideoController(logger outbound.LoggerPort, videoGenerator inbound.VideoGeneratorPort,
	artifactStore outbound.ArtifactStorePort) VideoController {
	return &videoController{
		logger:         logger,
		videoGenerator: videoGenerator,
		artifactStore:  artifactStore,
	}
}

func (v *videoController) RegisterRoutes(g *gin.Engine) {
	api := g.Group("/api/videos")
	api.POST("/generate", v.generate)
	api.GET("", v.list)
	api.GET("/:id/status", v.status)
	api.GET("/:id/download", v.download)
	api.DELETE("/:id", v.remove)
}

func (v *videoController) generate(c *gin.Context) {
	var req dto.GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	job, err := v.videoGenerator.Submit(c.Request.Context(), inbound.SubmitVideoRequest{
		Title:   req.Title,
		Context: req.Context,
		Style:   req.Style,
	})
	if err != nil {
		v.logger.Error(err, "Failed to submit video job")
		c.JSON(500, gin.H{"error": "failed to queue video generation"})
		return
	}

	c.JSON(200, dto.NewVideoJobResponse(job))
}

func (v *videoController) status(c *gin.Context) {
	job, err := v.videoGenerator.Status(c.Param("id"))
	if err != nil {
		v.notFoundOrError(c, err)
		return
	}

	c.JSON(200, dto.NewVideoStatusResponse(job))
}

func (v *videoController) download(c *gin.Context) {
	id := c.Param("id")
	videoPath, err := v.videoGenerator.VideoFile(id)
	if err != nil {
		v.notFoundOrError(c, err)
		return
	}

	c.Header("Content-Type", "video/mp4")
	c.FileAttachment(videoPath, id+".mp4")
}

func (v *videoController) list(c *gin.Context) {
	jobs := v.videoGenerator.List()
	summaries := make([]dto.VideoSummary, 0, len(jobs))
	for _, job := range jobs {
		summary := dto.VideoSummary{
			ID:        job.ID,
			Title:     job.Title,
			Status:    string(job.Status),
			Progress:  job.Progress,
			CreatedAt: job.CreatedAt,
		}
		if size, ok := v.artifactStore.VideoSize(job.ID); ok {
			summary.SizeBytes = size
		}
		summaries = append(summaries, summary)
	}

	c.JSON(200, gin.H{"videos": summaries})
}

func (v *videoController) remove(c *gin.Context) {
	id := c.Param("id")
	if err := v.videoGenerator.Delete(id); err != nil {
		v.notFoundOrError(c, err)
		return
	}

	c.JSON(200, gin.H{"id": id, "deleted": true})
}

func (v *videoController) notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrJobNotFound) {
		c.JSON(404, gin.H{"error": "video not found"})
		return
	}
	v.logger.Error(err, "Unexpected error handling video request")
	c.JSON(500, gin.H{"error": err.Error()})
}
