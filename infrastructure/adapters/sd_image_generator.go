package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
)

type txt2imgRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Steps          int     `json:"steps"`
	SamplerName    string  `json:"sampler_name"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	CfgScale       float64 `json:"cfg_scale"`
	Seed           int     `json:"seed"`
	BatchSize      int     `json:"batch_size"`
	NIter          int     `json:"n_iter"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

type sdImageGenerator struct {
	ContentFetcher
	logger        outbound.LoggerPort
	sdConfig      *config.StableDiffusionConfig
	artifactStore outbound.ArtifactStorePort
}

func NewSDImageGenerator(contentFetcher ContentFetcher, sdConfig *config.StableDiffusionConfig,
	artifactStore outbound.ArtifactStorePort, logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &sdImageGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		sdConfig:       sdConfig,
		artifactStore:  artifactStore,
	}
}

func (g *sdImageGenerator) Generate(ctx context.Context, genReq outbound.GenerateImageRequest) (string, error) {
	newCtx, cancel := context.WithTimeout(ctx, g.sdConfig.Timeout)
	defer cancel()

	req, err := g.getRequest(newCtx, genReq)
	if err != nil {
		g.logger.Error(err, "Failed to create the image generation request")
		return "", domain.NewStageFailure(domain.ImageStage, domain.ExternalUnavailable, err.Error())
	}

	rawRes, err := g.FetchContent(req)
	if err != nil {
		if errors.Is(newCtx.Err(), context.DeadlineExceeded) {
			return "", domain.NewStageFailure(domain.ImageStage, domain.Timeout,
				fmt.Sprintf("image generation timed out for scene %d", genReq.SceneNumber))
		}
		return "", domain.NewStageFailure(domain.ImageStage, domain.ExternalUnavailable, err.Error())
	}

	var sdRes txt2imgResponse
	if err = json.Unmarshal(rawRes, &sdRes); err != nil {
		return "", domain.NewStageFailure(domain.ImageStage, domain.MalformedOutput, err.Error())
	}
	if len(sdRes.Images) == 0 {
		return "", domain.NewStageFailure(domain.ImageStage, domain.MalformedOutput, "no images in response")
	}

	decoded, err := base64.StdEncoding.DecodeString(sdRes.Images[0])
	if err != nil {
		return "", domain.NewStageFailure(domain.ImageStage, domain.MalformedOutput, err.Error())
	}

	imagePath := g.artifactStore.SceneImagePath(genReq.JobID, genReq.SceneNumber)
	if err = os.WriteFile(imagePath, decoded, 0644); err != nil {
		g.logger.Error(err, "Failed to write the scene image")
		return "", domain.NewStageFailure(domain.ImageStage, domain.ExternalUnavailable, err.Error())
	}

	g.logger.DebugWithFields("Scene image generated", map[string]interface{}{
		"job_id": genReq.JobID,
		"scene":  genReq.SceneNumber,
		"path":   imagePath,
	})

	return imagePath, nil
}

func (g *sdImageGenerator) getRequest(ctx context.Context, genReq outbound.GenerateImageRequest) (*http.Request, error) {
	style := genReq.Style
	if style == "" {
		style = "cinematic"
	}

	reqBody := txt2imgRequest{
		Prompt:         fmt.Sprintf("%s, professional, %s, 4K, high quality, sharp focus", genReq.Description, style),
		NegativePrompt: g.sdConfig.NegativePrompt,
		Steps:          g.sdConfig.Steps,
		SamplerName:    g.sdConfig.Sampler,
		Width:          g.sdConfig.Width,
		Height:         g.sdConfig.Height,
		CfgScale:       g.sdConfig.CfgScale,
		Seed:           -1,
		BatchSize:      1,
		NIter:          1,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.sdConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func (g *sdImageGenerator) Ping(ctx context.Context) error {
	newCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(newCtx, "GET", g.sdConfig.ApiUrl, nil)
	if err != nil {
		return err
	}

	_, err = g.FetchContent(req)
	return err
}
