package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
)

type musicGenRequest struct {
	Prompt   string `json:"prompt"`
	Model    string `json:"model"`
	Duration int    `json:"duration"`
}

type musicGenGenerator struct {
	ContentFetcher
	logger         outbound.LoggerPort
	musicGenConfig *config.MusicGenConfig
	artifactStore  outbound.ArtifactStorePort
}

func NewMusicGenGenerator(contentFetcher ContentFetcher, musicGenConfig *config.MusicGenConfig,
	artifactStore outbound.ArtifactStorePort, logger outbound.LoggerPort) outbound.MusicGeneratorPort {
	return &musicGenGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		musicGenConfig: musicGenConfig,
		artifactStore:  artifactStore,
	}
}

// Generate requests one background track sized to the whole video. The
// service answers with raw WAV bytes.
func (m *musicGenGenerator) Generate(ctx context.Context, genReq outbound.GenerateMusicRequest) (string, error) {
	newCtx, cancel := context.WithTimeout(ctx, m.musicGenConfig.Timeout)
	defer cancel()

	reqBody := musicGenRequest{
		Prompt:   domain.MoodDescription(genReq.Mood),
		Model:    m.musicGenConfig.Model,
		Duration: genReq.Duration,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.NewStageFailure(domain.MusicStage, domain.ExternalUnavailable, err.Error())
	}

	req, err := http.NewRequestWithContext(newCtx, "POST", m.musicGenConfig.ApiUrl+"/generate", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", domain.NewStageFailure(domain.MusicStage, domain.ExternalUnavailable, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	audio, err := m.FetchContent(req)
	if err != nil {
		if errors.Is(newCtx.Err(), context.DeadlineExceeded) {
			return "", domain.NewStageFailure(domain.MusicStage, domain.Timeout, "music generation timed out")
		}
		return "", domain.NewStageFailure(domain.MusicStage, domain.ExternalUnavailable, err.Error())
	}
	if len(audio) == 0 {
		return "", domain.NewStageFailure(domain.MusicStage, domain.MalformedOutput, "empty audio response")
	}

	musicPath := m.artifactStore.MusicPath(genReq.JobID)
	if err = os.WriteFile(musicPath, audio, 0644); err != nil {
		m.logger.Error(err, "Failed to write the music track")
		return "", domain.NewStageFailure(domain.MusicStage, domain.ExternalUnavailable, err.Error())
	}

	m.logger.InfoWithFields("Background music generated", map[string]interface{}{
		"job_id":   genReq.JobID,
		"mood":     genReq.Mood,
		"duration": genReq.Duration,
	})

	return musicPath, nil
}

func (m *musicGenGenerator) Ping(ctx context.Context) error {
	newCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(newCtx, "GET", m.musicGenConfig.ApiUrl+"/health", nil)
	if err != nil {
		return err
	}

	_, err = m.FetchContent(req)
	return err
}
