package domain

import "testing"

func TestScript_DominantMood(t *testing.T) {
	script := Script{Scenes: []Scene{
		{Number: 1, Mood: "calm", Duration: 8},
		{Number: 2, Mood: "happy", Duration: 8},
		{Number: 3, Mood: "happy", Duration: 8},
		{Number: 4, Mood: "sad", Duration: 8},
		{Number: 5, Mood: "happy", Duration: 8},
	}}

	if got := script.DominantMood(); got != "happy" {
		t.Errorf("expected happy, got %s", got)
	}
}

func TestScript_DominantMood_TieBreaksByFirstOccurrence(t *testing.T) {
	script := Script{Scenes: []Scene{
		{Number: 1, Mood: "sad"},
		{Number: 2, Mood: "epic"},
		{Number: 3, Mood: "sad"},
		{Number: 4, Mood: "epic"},
	}}

	if got := script.DominantMood(); got != "sad" {
		t.Errorf("expected sad, got %s", got)
	}
}

func TestScript_DominantMood_Empty(t *testing.T) {
	if got := (Script{}).DominantMood(); got != DefaultMood {
		t.Errorf("expected %s, got %s", DefaultMood, got)
	}
}

func TestScript_TotalDuration(t *testing.T) {
	script := Script{Scenes: []Scene{
		{Duration: 8}, {Duration: 10}, {Duration: 6},
	}}

	if got := script.TotalDuration(); got != 24 {
		t.Errorf("expected 24, got %d", got)
	}
}

func TestMoodDescription_UnknownFallsBack(t *testing.T) {
	if got := MoodDescription("melancholy-ish"); got != "cinematic orchestral music" {
		t.Errorf("unexpected fallback description: %s", got)
	}
	if got := MoodDescription("epic"); got != MoodDescriptions["epic"] {
		t.Errorf("unexpected description for known mood: %s", got)
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	for status, terminal := range map[JobStatus]bool{
		JobQueued:     false,
		JobGenerating: false,
		JobCompleted:  true,
		JobFailed:     true,
	} {
		if status.IsTerminal() != terminal {
			t.Errorf("IsTerminal(%s) = %v, expected %v", status, status.IsTerminal(), terminal)
		}
	}
}

func TestJob_StatusMessage_Failed(t *testing.T) {
	job := Job{Status: JobFailed, Error: "script stage failed"}
	if got := job.StatusMessage(); got != "script stage failed" {
		t.Errorf("expected failure message, got %q", got)
	}
}
