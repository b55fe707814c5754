package outbound

import "context"

type GenerateNarrationRequest struct {
	JobID       string
	SceneNumber int
	Text        string
}

// NarrationGeneratorPort synthesizes one scene's narration clip and returns
// the artifact path. Text may contain newlines and punctuation.
type NarrationGeneratorPort interface {
	Generate(ctx context.Context, req GenerateNarrationRequest) (string, error)
	Ping(ctx context.Context) error
}
