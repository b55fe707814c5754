package inbound

import (
	"context"

	"github.com/JonattanS/RewindDay/domain"
)

type SubmitVideoRequest struct {
	Title   string
	Context string
	Style   string
}

// VideoGeneratorPort is the use-case surface behind the HTTP layer.
// Submit returns synchronously with a queued job; the pipeline runs on the
// worker pool and is polled through Status.
type VideoGeneratorPort interface {
	Submit(ctx context.Context, req SubmitVideoRequest) (domain.Job, error)
	Status(id string) (domain.Job, error)
	List() []domain.Job
	VideoFile(id string) (string, error)
	Delete(id string) error
}
