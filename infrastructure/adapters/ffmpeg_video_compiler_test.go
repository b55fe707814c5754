package adapters

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
)

func newTestCompiler(t *testing.T) (*ffmpegVideoCompiler, outbound.ArtifactStorePort) {
	t.Helper()
	store := newTestArtifactStore(t)
	ffmpegConfig, err := config.GetFFmpegConfig()
	if err != nil {
		t.Fatalf("failed to get ffmpeg config: %v", err)
	}
	compiler := NewFFmpegVideoCompiler(ffmpegConfig, store, NewZerologWrapper()).(*ffmpegVideoCompiler)
	return compiler, store
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestFFmpegVideoCompiler_ValidateRejectsBadInput(t *testing.T) {
	compiler, store := newTestCompiler(t)
	if err := store.EnsureJobDir("job-1"); err != nil {
		t.Fatalf("ensure dir failed: %v", err)
	}

	scenes := []domain.Scene{{Number: 1, Duration: 8}, {Number: 2, Duration: 8}}
	image1 := store.SceneImagePath("job-1", 1)
	image2 := store.SceneImagePath("job-1", 2)
	narration1 := store.NarrationPath("job-1", 1)
	narration2 := store.NarrationPath("job-1", 2)
	music := store.MusicPath("job-1")
	for _, p := range []string{image1, image2, narration1, narration2, music} {
		touch(t, p)
	}

	cases := map[string]outbound.CompileVideoRequest{
		"no scenes": {JobID: "job-1"},
		"image count mismatch": {
			JobID: "job-1", Scenes: scenes,
			ImagePaths:     []string{image1},
			NarrationPaths: []string{narration1, narration2},
			MusicPath:      music,
		},
		"narration count mismatch": {
			JobID: "job-1", Scenes: scenes,
			ImagePaths:     []string{image1, image2},
			NarrationPaths: []string{narration1},
			MusicPath:      music,
		},
		"no music": {
			JobID: "job-1", Scenes: scenes,
			ImagePaths:     []string{image1, image2},
			NarrationPaths: []string{narration1, narration2},
		},
		"missing artifact on disk": {
			JobID: "job-1", Scenes: scenes,
			ImagePaths:     []string{image1, store.SceneImagePath("job-1", 99)},
			NarrationPaths: []string{narration1, narration2},
			MusicPath:      music,
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			err := compiler.validate(req)
			var failure *domain.CompilationFailure
			if !errors.As(err, &failure) {
				t.Errorf("expected CompilationFailure, got %v", err)
			}
		})
	}
}

func TestFFmpegVideoCompiler_ImageConcatList(t *testing.T) {
	compiler, store := newTestCompiler(t)
	if err := store.EnsureJobDir("job-1"); err != nil {
		t.Fatalf("ensure dir failed: %v", err)
	}

	scenes := []domain.Scene{{Number: 1, Duration: 8}, {Number: 2, Duration: 12}}
	image1 := store.SceneImagePath("job-1", 1)
	image2 := store.SceneImagePath("job-1", 2)
	touch(t, image1)
	touch(t, image2)

	listPath, err := compiler.writeImageConcatList(store.JobDir("job-1"), []string{image1, image2}, scenes)
	if err != nil {
		t.Fatalf("writing list failed: %v", err)
	}

	raw, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("reading list failed: %v", err)
	}
	content := string(raw)

	if !strings.Contains(content, "duration 8") || !strings.Contains(content, "duration 12") {
		t.Errorf("per-scene durations missing from list:\n%s", content)
	}
	if strings.Count(content, "file '") != 3 {
		t.Errorf("last image must be repeated for the concat demuxer:\n%s", content)
	}
	if strings.Index(content, "scene_1.png") > strings.Index(content, "scene_2.png") {
		t.Errorf("images must appear in scene order:\n%s", content)
	}
}
