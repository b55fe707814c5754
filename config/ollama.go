package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type OllamaConfig struct {
	ApiUrl      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func GetOllamaConfig() (*OllamaConfig, error) {
	apiUrl := os.Getenv("OLLAMA_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("OLLAMA_API_URL must be set")
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		return nil, fmt.Errorf("OLLAMA_MODEL must be set")
	}

	temperature := 0.7
	if raw := os.Getenv("OLLAMA_TEMPERATURE"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OLLAMA_TEMPERATURE")
		}
		temperature = parsed
	}

	timeout := 300 * time.Second
	if raw := os.Getenv("OLLAMA_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OLLAMA_TIMEOUT_SECONDS")
		}
		timeout = time.Duration(parsed) * time.Second
	}

	return &OllamaConfig{
		ApiUrl:      apiUrl,
		Model:       model,
		Temperature: temperature,
		Timeout:     timeout,
	}, nil
}
