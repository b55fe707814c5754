package config

import "os"

type StorageConfig struct {
	VideosDir string
}

func GetStorageConfig() (*StorageConfig, error) {
	videosDir := os.Getenv("VIDEOS_DIR")
	if videosDir == "" {
		videosDir = "videos"
	}

	return &StorageConfig{
		VideosDir: videosDir,
	}, nil
}
