package config

import "os"

type FFmpegConfig struct {
	FFmpegPath   string
	FFprobePath  string
	Crf          string
	Preset       string
	AudioBitrate string
	MusicVolume  string
}

func GetFFmpegConfig() (*FFmpegConfig, error) {
	ffmpegPath := os.Getenv("FFMPEG_BIN")
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	ffprobePath := os.Getenv("FFPROBE_BIN")
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	crf := os.Getenv("FFMPEG_CRF")
	if crf == "" {
		crf = "23"
	}
	preset := os.Getenv("FFMPEG_PRESET")
	if preset == "" {
		preset = "medium"
	}
	audioBitrate := os.Getenv("FFMPEG_AUDIO_BITRATE")
	if audioBitrate == "" {
		audioBitrate = "128k"
	}
	musicVolume := os.Getenv("FFMPEG_MUSIC_VOLUME")
	if musicVolume == "" {
		musicVolume = "0.25"
	}

	return &FFmpegConfig{
		FFmpegPath:   ffmpegPath,
		FFprobePath:  ffprobePath,
		Crf:          crf,
		Preset:       preset,
		AudioBitrate: audioBitrate,
		MusicVolume:  musicVolume,
	}, nil
}
