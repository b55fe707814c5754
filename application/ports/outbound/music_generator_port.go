package outbound

import "context"

type GenerateMusicRequest struct {
	JobID    string
	Mood     string
	Duration int
}

// MusicGeneratorPort produces one background track for the whole job, steered
// by the script's dominant mood and sized to the total scene duration.
type MusicGeneratorPort interface {
	Generate(ctx context.Context, req GenerateMusicRequest) (string, error)
	Ping(ctx context.Context) error
}
