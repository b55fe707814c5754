package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type StableDiffusionConfig struct {
	ApiUrl         string
	Width          int
	Height         int
	Steps          int
	Sampler        string
	CfgScale       float64
	NegativePrompt string
	Timeout        time.Duration
}

func GetStableDiffusionConfig() (*StableDiffusionConfig, error) {
	apiUrl := os.Getenv("SD_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SD_API_URL must be set")
	}

	width, err := envIntOrDefault("SD_WIDTH", 1920)
	if err != nil {
		return nil, err
	}
	height, err := envIntOrDefault("SD_HEIGHT", 1080)
	if err != nil {
		return nil, err
	}
	steps, err := envIntOrDefault("SD_STEPS", 20)
	if err != nil {
		return nil, err
	}

	sampler := os.Getenv("SD_SAMPLER")
	if sampler == "" {
		sampler = "DPM++ 2M"
	}

	cfgScale := 7.5
	if raw := os.Getenv("SD_CFG_SCALE"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SD_CFG_SCALE")
		}
		cfgScale = parsed
	}

	negative := os.Getenv("SD_NEGATIVE_PROMPT")
	if negative == "" {
		negative = "blurry, low quality, distorted, ugly, bad, deformed"
	}

	timeoutSeconds, err := envIntOrDefault("SD_TIMEOUT_SECONDS", 600)
	if err != nil {
		return nil, err
	}

	return &StableDiffusionConfig{
		ApiUrl:         apiUrl,
		Width:          width,
		Height:         height,
		Steps:          steps,
		Sampler:        sampler,
		CfgScale:       cfgScale,
		NegativePrompt: negative,
		Timeout:        time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func envIntOrDefault(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s", name)
	}
	return parsed, nil
}
