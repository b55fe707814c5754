package domain

import (
	"errors"
	"fmt"
)

// ErrJobNotFound is returned by the job store for ids it does not track.
var ErrJobNotFound = errors.New("job not found")

type FailureKind string

const (
	MalformedOutput     FailureKind = "malformed_output"
	ExternalUnavailable FailureKind = "external_unavailable"
	Timeout             FailureKind = "timeout"
	NonZeroExit         FailureKind = "non_zero_exit"
)

type StageName string

const (
	ScriptStage    StageName = "script"
	ImageStage     StageName = "image"
	NarrationStage StageName = "narration"
	MusicStage     StageName = "music"
)

// StageFailure is the failure of one external generation stage. Adapters do
// not retry; the failure is recorded on the job by the orchestrator.
type StageFailure struct {
	Stage   StageName
	Kind    FailureKind
	Message string
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("%s stage failed (%s): %s", e.Stage, e.Kind, e.Message)
}

func NewStageFailure(stage StageName, kind FailureKind, message string) *StageFailure {
	return &StageFailure{Stage: stage, Kind: kind, Message: message}
}

// CompilationFailure covers the media assembly step: missing inputs, ffmpeg
// non-zero exits and empty artifact lists.
type CompilationFailure struct {
	Message string
}

func (e *CompilationFailure) Error() string {
	return "video compilation failed: " + e.Message
}

func NewCompilationFailure(format string, args ...interface{}) *CompilationFailure {
	return &CompilationFailure{Message: fmt.Sprintf(format, args...)}
}
