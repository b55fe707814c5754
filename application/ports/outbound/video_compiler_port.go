package outbound

import (
	"context"

	"github.com/JonattanS/RewindDay/domain"
)

type CompileVideoRequest struct {
	JobID          string
	Scenes         []domain.Scene
	ImagePaths     []string
	NarrationPaths []string
	MusicPath      string
}

// VideoCompilerPort assembles the final video: each image shown for its
// scene's duration, narration clips concatenated back to back, music mixed
// underneath the narration.
type VideoCompilerPort interface {
	Compile(ctx context.Context, req CompileVideoRequest) (*domain.CompiledVideo, error)
	Ping(ctx context.Context) error
}
