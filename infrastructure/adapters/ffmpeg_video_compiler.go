package adapters

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
)

type ffmpegVideoCompiler struct {
	logger        outbound.LoggerPort
	ffmpegConfig  *config.FFmpegConfig
	artifactStore outbound.ArtifactStorePort
}

func NewFFmpegVideoCompiler(ffmpegConfig *config.FFmpegConfig, artifactStore outbound.ArtifactStorePort,
	logger outbound.LoggerPort) outbound.VideoCompilerPort {
	return &ffmpegVideoCompiler{
		logger:        logger,
		ffmpegConfig:  ffmpegConfig,
		artifactStore: artifactStore,
	}
}

// Compile assembles the final video: every image is shown for its scene's
// duration, narration clips are concatenated back to back and the music
// track is mixed underneath the narration. The narration track's length is
// not synchronized against the visual timeline; that mismatch is inherited
// behavior and deliberately left as is.
func (f *ffmpegVideoCompiler) Compile(ctx context.Context, req outbound.CompileVideoRequest) (*domain.CompiledVideo, error) {
	if err := f.validate(req); err != nil {
		return nil, err
	}

	jobDir := f.artifactStore.JobDir(req.JobID)

	imageList, err := f.writeImageConcatList(jobDir, req.ImagePaths, req.Scenes)
	if err != nil {
		return nil, domain.NewCompilationFailure("writing image list: %v", err)
	}

	narrationTrack, err := f.concatNarration(ctx, jobDir, req.NarrationPaths)
	if err != nil {
		return nil, err
	}

	outputFile := f.artifactStore.VideoPath(req.JobID)

	filter := fmt.Sprintf("[1]volume=1.0[a1];[2]volume=%s[a2];[a1][a2]amix=inputs=2[a]", f.ffmpegConfig.MusicVolume)
	cmd := exec.CommandContext(ctx, f.ffmpegConfig.FFmpegPath,
		"-f", "concat",
		"-safe", "0",
		"-i", imageList,
		"-i", narrationTrack,
		"-i", req.MusicPath,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[a]",
		"-c:v", "libx264",
		"-crf", f.ffmpegConfig.Crf,
		"-preset", f.ffmpegConfig.Preset,
		"-c:a", "aac",
		"-b:a", f.ffmpegConfig.AudioBitrate,
		"-y",
		outputFile)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		// a half-written output must never be served as a completed video
		if removeErr := os.Remove(outputFile); removeErr != nil && !os.IsNotExist(removeErr) {
			f.logger.Error(removeErr, "Failed to remove partial output file")
		}
		f.logger.ErrorWithFields(err, "ffmpeg exited with an error", map[string]interface{}{
			"job_id": req.JobID,
			"stderr": stderr.String(),
		})
		return nil, domain.NewCompilationFailure("ffmpeg exited with an error: %s", lastLine(stderr.String()))
	}

	duration, err := f.getVideoDuration(ctx, outputFile)
	if err != nil {
		f.logger.Error(err, "Failed to read the compiled video duration")
		return nil, domain.NewCompilationFailure("reading output duration: %v", err)
	}

	f.logger.InfoWithFields("Video compiled", map[string]interface{}{
		"job_id":   req.JobID,
		"output":   outputFile,
		"duration": duration,
	})

	return &domain.CompiledVideo{
		JobID:    req.JobID,
		FileName: outputFile,
		Duration: duration,
	}, nil
}

func (f *ffmpegVideoCompiler) validate(req outbound.CompileVideoRequest) error {
	if len(req.Scenes) == 0 {
		return domain.NewCompilationFailure("no scenes to compile")
	}
	if len(req.ImagePaths) != len(req.Scenes) {
		return domain.NewCompilationFailure("have %d images for %d scenes", len(req.ImagePaths), len(req.Scenes))
	}
	if len(req.NarrationPaths) != len(req.Scenes) {
		return domain.NewCompilationFailure("have %d narration clips for %d scenes", len(req.NarrationPaths), len(req.Scenes))
	}
	if req.MusicPath == "" {
		return domain.NewCompilationFailure("no music track")
	}

	inputs := append(append([]string{req.MusicPath}, req.ImagePaths...), req.NarrationPaths...)
	for _, input := range inputs {
		if _, err := os.Stat(input); err != nil {
			return domain.NewCompilationFailure("missing input artifact %s", input)
		}
	}
	return nil
}

// writeImageConcatList emits a concat demuxer list pairing each image with
// its scene duration. The last image is repeated without a duration because
// the demuxer ignores the duration directive on the final entry otherwise.
func (f *ffmpegVideoCompiler) writeImageConcatList(jobDir string, imagePaths []string, scenes []domain.Scene) (string, error) {
	listFile, err := os.Create(filepath.Join(jobDir, "concat_list.txt"))
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := listFile.Close(); closeErr != nil {
			f.logger.Error(closeErr, "Failed to close image list file")
		}
	}()

	writer := bufio.NewWriter(listFile)
	for i, imagePath := range imagePaths {
		abs, err := filepath.Abs(imagePath)
		if err != nil {
			return "", err
		}
		if _, err = fmt.Fprintf(writer, "file '%s'\nduration %d\n", abs, scenes[i].Duration); err != nil {
			return "", err
		}
	}
	lastImage, err := filepath.Abs(imagePaths[len(imagePaths)-1])
	if err != nil {
		return "", err
	}
	if _, err = fmt.Fprintf(writer, "file '%s'\n", lastImage); err != nil {
		return "", err
	}
	if err = writer.Flush(); err != nil {
		return "", err
	}

	return listFile.Name(), nil
}

// concatNarration joins the per-scene clips back to back with no inserted
// silence, producing one narration track for the whole video.
func (f *ffmpegVideoCompiler) concatNarration(ctx context.Context, jobDir string, narrationPaths []string) (string, error) {
	listPath := filepath.Join(jobDir, "narration_list.txt")

	var builder strings.Builder
	for _, clip := range narrationPaths {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return "", domain.NewCompilationFailure("resolving narration path: %v", err)
		}
		builder.WriteString("file '" + abs + "'\n")
	}
	if err := os.WriteFile(listPath, []byte(builder.String()), 0644); err != nil {
		return "", domain.NewCompilationFailure("writing narration list: %v", err)
	}

	outputFile := filepath.Join(jobDir, "narration_concat.wav")
	cmd := exec.CommandContext(ctx, f.ffmpegConfig.FFmpegPath,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outputFile)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		f.logger.ErrorWithFields(err, "Narration concat failed", map[string]interface{}{
			"stderr": stderr.String(),
		})
		return "", domain.NewCompilationFailure("narration concat failed: %s", lastLine(stderr.String()))
	}

	return outputFile, nil
}

func (f *ffmpegVideoCompiler) getVideoDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, f.ffmpegConfig.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath)

	out, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	durationStr := strings.TrimSpace(string(out))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

func (f *ffmpegVideoCompiler) Ping(ctx context.Context) error {
	return exec.CommandContext(ctx, f.ffmpegConfig.FFmpegPath, "-version").Run()
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return s
	}
	return lines[len(lines)-1]
}
