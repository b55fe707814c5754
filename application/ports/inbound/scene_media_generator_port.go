package inbound

import (
	"context"

	"github.com/JonattanS/RewindDay/domain"
)

type SceneArtifact struct {
	SceneNumber int
	Stage       domain.StageName
	Path        string
}

// SceneMediaGeneratorPort fans the image and narration stages out over the
// scenes. One artifact is emitted per (scene, stage) pair; the first failure
// cancels the remaining work and surfaces on the error channel.
type SceneMediaGeneratorPort interface {
	Generate(ctx context.Context, job domain.Job, scenes []domain.Scene) (<-chan SceneArtifact, <-chan error)
}
