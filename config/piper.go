package config

import (
	"fmt"
	"os"
	"time"
)

type PiperConfig struct {
	BinaryPath  string
	Model       string
	LengthScale string
	Timeout     time.Duration
}

func GetPiperConfig() (*PiperConfig, error) {
	binaryPath := os.Getenv("PIPER_BIN")
	if binaryPath == "" {
		binaryPath = "piper"
	}
	model := os.Getenv("PIPER_MODEL")
	if model == "" {
		return nil, fmt.Errorf("PIPER_MODEL must be set")
	}
	lengthScale := os.Getenv("PIPER_LENGTH_SCALE")
	if lengthScale == "" {
		lengthScale = "1.0"
	}

	timeoutSeconds, err := envIntOrDefault("PIPER_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}

	return &PiperConfig{
		BinaryPath:  binaryPath,
		Model:       model,
		LengthScale: lengthScale,
		Timeout:     time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
