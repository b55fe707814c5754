package outbound

import "context"

type GenerateImageRequest struct {
	JobID       string
	SceneNumber int
	Description string
	Style       string
}

// ImageGeneratorPort renders one scene image and returns the artifact path.
// Generation knobs (resolution, steps, negative prompt) are fixed config.
type ImageGeneratorPort interface {
	Generate(ctx context.Context, req GenerateImageRequest) (string, error)
	Ping(ctx context.Context) error
}
