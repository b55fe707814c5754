package services

import (
	"context"
	"fmt"

	"github.com/JonattanS/RewindDay/application/ports/inbound"
	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/domain"
)

const (
	progressStarted    = 5
	progressScriptDone = 10
	progressMusicDone  = 80
	progressCompiling  = 90
)

type videoPipelineOrchestrator struct {
	logger          outbound.LoggerPort
	jobStore        outbound.JobStorePort
	artifactStore   outbound.ArtifactStorePort
	scriptGenerator outbound.ScriptGeneratorPort
	sceneMedia      inbound.SceneMediaGeneratorPort
	musicGenerator  outbound.MusicGeneratorPort
	videoCompiler   outbound.VideoCompilerPort
}

func NewVideoPipelineOrchestrator(logger outbound.LoggerPort, jobStore outbound.JobStorePort,
	artifactStore outbound.ArtifactStorePort, scriptGenerator outbound.ScriptGeneratorPort,
	sceneMedia inbound.SceneMediaGeneratorPort, musicGenerator outbound.MusicGeneratorPort,
	videoCompiler outbound.VideoCompilerPort) inbound.VideoPipelinePort {
	return &videoPipelineOrchestrator{
		logger:          logger,
		jobStore:        jobStore,
		artifactStore:   artifactStore,
		scriptGenerator: scriptGenerator,
		sceneMedia:      sceneMedia,
		musicGenerator:  musicGenerator,
		videoCompiler:   videoCompiler,
	}
}

// Run drives one job through script, scene media, music and compilation.
// Stage order is strict; the first failure marks the job failed and stops the
// pipeline. Artifacts produced before the failure stay on disk until the job
// is deleted.
func (o *videoPipelineOrchestrator) Run(ctx context.Context, jobID string) {
	job, err := o.jobStore.Get(jobID)
	if err != nil {
		o.logger.ErrorWithFields(err, "Pipeline started for unknown job", map[string]interface{}{"job_id": jobID})
		return
	}

	o.logger.InfoWithFields("Starting video pipeline", map[string]interface{}{
		"job_id": jobID,
		"title":  job.Title,
	})

	o.setProgress(jobID, progressStarted)

	if err = o.artifactStore.EnsureJobDir(jobID); err != nil {
		o.fail(jobID, err)
		return
	}

	script, err := o.scriptGenerator.Generate(ctx, outbound.GenerateScriptRequest{
		Title:   job.Title,
		Context: job.Context,
		Style:   job.Style,
	})
	if err != nil {
		o.fail(jobID, err)
		return
	}
	if len(script.Scenes) == 0 {
		o.fail(jobID, domain.NewStageFailure(domain.ScriptStage, domain.MalformedOutput, "script contains no scenes"))
		return
	}
	o.setProgress(jobID, progressScriptDone)

	imagePaths, narrationPaths, err := o.collectSceneMedia(ctx, job, script.Scenes)
	if err != nil {
		o.fail(jobID, err)
		return
	}

	musicPath, err := o.musicGenerator.Generate(ctx, outbound.GenerateMusicRequest{
		JobID:    jobID,
		Mood:     script.DominantMood(),
		Duration: script.TotalDuration(),
	})
	if err != nil {
		o.fail(jobID, err)
		return
	}
	o.setProgress(jobID, progressMusicDone)

	o.setProgress(jobID, progressCompiling)
	compiled, err := o.videoCompiler.Compile(ctx, outbound.CompileVideoRequest{
		JobID:          jobID,
		Scenes:         script.Scenes,
		ImagePaths:     imagePaths,
		NarrationPaths: narrationPaths,
		MusicPath:      musicPath,
	})
	if err != nil {
		o.fail(jobID, err)
		return
	}

	updateErr := o.jobStore.Update(jobID, func(job *domain.Job) {
		job.Status = domain.JobCompleted
		job.Progress = 100
		job.VideoPath = compiled.FileName
	})
	if updateErr != nil {
		o.logger.Error(updateErr, "Failed to record job completion")
		return
	}

	o.logger.InfoWithFields("Video pipeline completed", map[string]interface{}{
		"job_id":   jobID,
		"video":    compiled.FileName,
		"duration": compiled.Duration,
	})
}

// collectSceneMedia gathers one image and one narration clip per scene,
// bumping progress as artifacts land. Both stage kinds must succeed for every
// scene; a closed channel with missing artifacts is treated as a failure.
func (o *videoPipelineOrchestrator) collectSceneMedia(ctx context.Context, job domain.Job,
	scenes []domain.Scene) ([]string, []string, error) {
	sceneCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	out, errCh := o.sceneMedia.Generate(sceneCtx, job, scenes)

	images := make(map[int]string, len(scenes))
	narrations := make(map[int]string, len(scenes))
	expected := 2 * len(scenes)
	received := 0

	// both channels are drained to completion even after a failure so no
	// fan-out worker stays blocked on a send
	var firstErr error
	for out != nil || errCh != nil {
		select {
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if firstErr == nil {
				firstErr = err
				cancel()
			}
		case artifact, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			if firstErr != nil {
				continue
			}
			switch artifact.Stage {
			case domain.ImageStage:
				images[artifact.SceneNumber] = artifact.Path
			case domain.NarrationStage:
				narrations[artifact.SceneNumber] = artifact.Path
			}
			received++
			o.setProgress(job.ID, progressScriptDone+received*60/expected)
		}
	}

	if firstErr != nil {
		return nil, nil, firstErr
	}

	if received != expected {
		return nil, nil, fmt.Errorf("scene media incomplete: got %d of %d artifacts", received, expected)
	}

	imagePaths := make([]string, 0, len(scenes))
	narrationPaths := make([]string, 0, len(scenes))
	for _, scene := range scenes {
		imagePath, ok := images[scene.Number]
		if !ok {
			return nil, nil, fmt.Errorf("missing image for scene %d", scene.Number)
		}
		narrationPath, ok := narrations[scene.Number]
		if !ok {
			return nil, nil, fmt.Errorf("missing narration for scene %d", scene.Number)
		}
		imagePaths = append(imagePaths, imagePath)
		narrationPaths = append(narrationPaths, narrationPath)
	}

	return imagePaths, narrationPaths, nil
}

func (o *videoPipelineOrchestrator) setProgress(jobID string, progress int) {
	err := o.jobStore.Update(jobID, func(job *domain.Job) {
		job.Status = domain.JobGenerating
		if progress > job.Progress {
			job.Progress = progress
		}
	})
	if err != nil {
		o.logger.ErrorWithFields(err, "Failed to update job progress", map[string]interface{}{"job_id": jobID})
	}
}

func (o *videoPipelineOrchestrator) fail(jobID string, cause error) {
	o.logger.ErrorWithFields(cause, "Video pipeline failed", map[string]interface{}{"job_id": jobID})
	err := o.jobStore.Update(jobID, func(job *domain.Job) {
		job.Status = domain.JobFailed
		job.Error = cause.Error()
	})
	if err != nil {
		o.logger.ErrorWithFields(err, "Failed to record job failure", map[string]interface{}{"job_id": jobID})
	}
}
