package config

import (
	"fmt"
	"os"
	"time"
)

type MusicGenConfig struct {
	ApiUrl  string
	Model   string
	Timeout time.Duration
}

func GetMusicGenConfig() (*MusicGenConfig, error) {
	apiUrl := os.Getenv("MUSICGEN_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("MUSICGEN_API_URL must be set")
	}
	model := os.Getenv("MUSICGEN_MODEL")
	if model == "" {
		model = "medium"
	}

	timeoutSeconds, err := envIntOrDefault("MUSICGEN_TIMEOUT_SECONDS", 600)
	if err != nil {
		return nil, err
	}

	return &MusicGenConfig{
		ApiUrl:  apiUrl,
		Model:   model,
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
