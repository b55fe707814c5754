package outbound

// ArtifactStorePort owns the on-disk layout of per-job artifacts. Paths are
// deterministic per (job id, stage, scene number) so a repeated stage
// invocation overwrites instead of accumulating. Concurrent jobs never share
// a path because the layout is partitioned by job id.
type ArtifactStorePort interface {
	EnsureJobDir(jobID string) error
	JobDir(jobID string) string
	SceneImagePath(jobID string, sceneNumber int) string
	NarrationPath(jobID string, sceneNumber int) string
	MusicPath(jobID string) string
	VideoPath(jobID string) string
	VideoSize(jobID string) (int64, bool)
	RemoveJob(jobID string) error
}
