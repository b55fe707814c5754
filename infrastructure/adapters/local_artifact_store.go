package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
)

// localArtifactStore lays per-job artifacts out under the videos directory:
//
//	<videos_dir>/<job_id>/scene_<n>.png
//	<videos_dir>/<job_id>/narration_<n>.wav
//	<videos_dir>/<job_id>/background_music.wav
//	<videos_dir>/<job_id>.mp4
type localArtifactStore struct {
	videosDir string
}

func NewLocalArtifactStore(storageConfig *config.StorageConfig) (outbound.ArtifactStorePort, error) {
	if err := os.MkdirAll(storageConfig.VideosDir, 0755); err != nil {
		return nil, err
	}
	return &localArtifactStore{videosDir: storageConfig.VideosDir}, nil
}

func (s *localArtifactStore) EnsureJobDir(jobID string) error {
	return os.MkdirAll(s.JobDir(jobID), 0755)
}

func (s *localArtifactStore) JobDir(jobID string) string {
	return filepath.Join(s.videosDir, jobID)
}

func (s *localArtifactStore) SceneImagePath(jobID string, sceneNumber int) string {
	return filepath.Join(s.JobDir(jobID), fmt.Sprintf("scene_%d.png", sceneNumber))
}

func (s *localArtifactStore) NarrationPath(jobID string, sceneNumber int) string {
	return filepath.Join(s.JobDir(jobID), fmt.Sprintf("narration_%d.wav", sceneNumber))
}

func (s *localArtifactStore) MusicPath(jobID string) string {
	return filepath.Join(s.JobDir(jobID), "background_music.wav")
}

func (s *localArtifactStore) VideoPath(jobID string) string {
	return filepath.Join(s.videosDir, jobID+".mp4")
}

func (s *localArtifactStore) VideoSize(jobID string) (int64, bool) {
	info, err := os.Stat(s.VideoPath(jobID))
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// RemoveJob deletes the job's working directory and the final video. Partial
// artifacts from failed runs are removed here too; nothing else cleans them.
func (s *localArtifactStore) RemoveJob(jobID string) error {
	if err := os.RemoveAll(s.JobDir(jobID)); err != nil {
		return err
	}
	if err := os.Remove(s.VideoPath(jobID)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
