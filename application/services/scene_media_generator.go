package services

import (
	"context"
	"errors"
	"sync"

	"github.com/JonattanS/RewindDay/application/ports/inbound"
	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/channel_utils"
	"github.com/JonattanS/RewindDay/domain"
)

type sceneMediaGenerator struct {
	logger             outbound.LoggerPort
	imageGenerator     outbound.ImageGeneratorPort
	narrationGenerator outbound.NarrationGeneratorPort
	workerPool         outbound.TaskDispatcher
}

func NewSceneMediaGenerator(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	narrationGenerator outbound.NarrationGeneratorPort, workerPool outbound.TaskDispatcher) inbound.SceneMediaGeneratorPort {
	return &sceneMediaGenerator{
		logger:             logger,
		imageGenerator:     imageGenerator,
		narrationGenerator: narrationGenerator,
		workerPool:         workerPool,
	}
}

// Generate runs the image and narration stages over all scenes. The two stage
// kinds have no data dependency, so both fan out on the worker pool; the
// first failure cancels everything still in flight.
func (s *sceneMediaGenerator) Generate(ctx context.Context, job domain.Job, scenes []domain.Scene) (<-chan inbound.SceneArtifact, <-chan error) {
	newCtx, cancel := context.WithCancel(ctx)

	imageOut, imageErrCh := s.fanOut(newCtx, cancel, scenes, domain.ImageStage, func(taskCtx context.Context, scene domain.Scene) (string, error) {
		return s.imageGenerator.Generate(taskCtx, outbound.GenerateImageRequest{
			JobID:       job.ID,
			SceneNumber: scene.Number,
			Description: scene.Description,
			Style:       job.Style,
		})
	})

	narrationOut, narrationErrCh := s.fanOut(newCtx, cancel, scenes, domain.NarrationStage, func(taskCtx context.Context, scene domain.Scene) (string, error) {
		return s.narrationGenerator.Generate(taskCtx, outbound.GenerateNarrationRequest{
			JobID:       job.ID,
			SceneNumber: scene.Number,
			Text:        scene.Narration,
		})
	})

	out, err := channel_utils.MergeChannels(s.workerPool, imageOut, narrationOut)
	if err != nil {
		cancel()
		failed := make(chan error, 1)
		failed <- err
		close(failed)
		closed := make(chan inbound.SceneArtifact)
		close(closed)
		return closed, failed
	}

	errCh, err := channel_utils.MergeChannels(s.workerPool, imageErrCh, narrationErrCh)
	if err != nil {
		cancel()
		failed := make(chan error, 1)
		failed <- err
		close(failed)
		return out, failed
	}

	return out, errCh
}

type sceneStageFunc func(ctx context.Context, scene domain.Scene) (string, error)

func (s *sceneMediaGenerator) fanOut(ctx context.Context, cancel context.CancelFunc, scenes []domain.Scene,
	stage domain.StageName, generate sceneStageFunc) (<-chan inbound.SceneArtifact, <-chan error) {
	out := make(chan inbound.SceneArtifact)
	errCh := make(chan error, len(scenes))

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		var wg sync.WaitGroup
		for _, sc := range scenes {
			if ctx.Err() != nil {
				break
			}
			scene := sc
			wg.Add(1)
			submitErr := s.workerPool.Submit(func() {
				defer wg.Done()
				path, genErr := generate(ctx, scene)
				if genErr != nil {
					// cancellation casualties would shadow the failure that
					// triggered the cancel, so only real errors are reported
					if !errors.Is(genErr, context.Canceled) {
						select {
						case errCh <- genErr:
						default:
						}
					}
					cancel()
					return
				}
				select {
				case out <- inbound.SceneArtifact{SceneNumber: scene.Number, Stage: stage, Path: path}:
				case <-ctx.Done():
				}
			})
			if submitErr != nil {
				wg.Done()
				select {
				case errCh <- submitErr:
				default:
				}
				cancel()
				break
			}
		}
		wg.Wait()
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit scene fan-out to worker pool")
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}
