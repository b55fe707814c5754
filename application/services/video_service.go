package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JonattanS/RewindDay/application/ports/inbound"
	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/domain"
)

const defaultStyle = "cinematic"

type videoService struct {
	logger        outbound.LoggerPort
	jobStore      outbound.JobStorePort
	artifactStore outbound.ArtifactStorePort
	pipeline      inbound.VideoPipelinePort
	workerPool    outbound.TaskDispatcher
}

func NewVideoService(logger outbound.LoggerPort, jobStore outbound.JobStorePort,
	artifactStore outbound.ArtifactStorePort, pipeline inbound.VideoPipelinePort,
	workerPool outbound.TaskDispatcher) inbound.VideoGeneratorPort {
	return &videoService{
		logger:        logger,
		jobStore:      jobStore,
		artifactStore: artifactStore,
		pipeline:      pipeline,
		workerPool:    workerPool,
	}
}

// Submit records the job and schedules the pipeline on the pool. The caller
// gets the queued job back immediately; everything after this point is
// reported through the job record, never returned to the submitter.
func (s *videoService) Submit(_ context.Context, req inbound.SubmitVideoRequest) (domain.Job, error) {
	style := req.Style
	if style == "" {
		style = defaultStyle
	}

	job := domain.Job{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Context:   req.Context,
		Style:     style,
		Status:    domain.JobQueued,
		Progress:  0,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.jobStore.Create(job); err != nil {
		return domain.Job{}, err
	}

	jobID := job.ID
	if err := s.workerPool.Submit(func() {
		s.pipeline.Run(context.Background(), jobID)
	}); err != nil {
		s.logger.Error(err, "Failed to schedule the video pipeline")
		if deleteErr := s.jobStore.Delete(jobID); deleteErr != nil {
			s.logger.Error(deleteErr, "Failed to remove unschedulable job")
		}
		return domain.Job{}, err
	}

	s.logger.InfoWithFields("Video job submitted", map[string]interface{}{
		"job_id": jobID,
		"title":  job.Title,
	})

	return job, nil
}

func (s *videoService) Status(id string) (domain.Job, error) {
	return s.jobStore.Get(id)
}

func (s *videoService) List() []domain.Job {
	return s.jobStore.List()
}

// VideoFile resolves the artifact path for a completed job. Jobs that are
// still running or failed have no downloadable artifact.
func (s *videoService) VideoFile(id string) (string, error) {
	job, err := s.jobStore.Get(id)
	if err != nil {
		return "", err
	}
	if job.Status != domain.JobCompleted || job.VideoPath == "" {
		return "", domain.ErrJobNotFound
	}
	return job.VideoPath, nil
}

// Delete removes the job record and its artifacts. An in-flight pipeline is
// not interrupted; its later updates land on a missing record and are dropped.
func (s *videoService) Delete(id string) error {
	if _, err := s.jobStore.Get(id); err != nil {
		return err
	}
	if err := s.artifactStore.RemoveJob(id); err != nil {
		s.logger.ErrorWithFields(err, "Failed to remove job artifacts", map[string]interface{}{"job_id": id})
		return err
	}
	return s.jobStore.Delete(id)
}
