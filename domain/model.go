package domain

import "time"

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobGenerating JobStatus = "generating"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IsTerminal reports whether a job in this status can never transition again.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Context   string    `json:"context"`
	Style     string    `json:"style"`
	Status    JobStatus `json:"status"`
	Progress  int       `json:"progress"`
	VideoPath string    `json:"video_url,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusMessage is the human readable line returned by the status endpoint.
func (j Job) StatusMessage() string {
	switch j.Status {
	case JobQueued:
		return "Video generation queued"
	case JobGenerating:
		return "Generating video"
	case JobCompleted:
		return "Video ready for download"
	case JobFailed:
		return j.Error
	}
	return ""
}

type Scene struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Narration   string `json:"narration"`
	Duration    int    `json:"duration"`
	Mood        string `json:"mood"`
}

type Script struct {
	Title  string  `json:"title"`
	Scenes []Scene `json:"scenes"`
}

// TotalDuration is the sum of all scene durations in seconds.
func (s Script) TotalDuration() int {
	total := 0
	for _, scene := range s.Scenes {
		total += scene.Duration
	}
	return total
}

// DominantMood returns the most common mood across the scenes, ties broken
// by first occurrence in scene order.
func (s Script) DominantMood() string {
	counts := make(map[string]int, len(s.Scenes))
	for _, scene := range s.Scenes {
		counts[scene.Mood]++
	}

	best := DefaultMood
	bestCount := 0
	for _, scene := range s.Scenes {
		if counts[scene.Mood] > bestCount {
			best = scene.Mood
			bestCount = counts[scene.Mood]
		}
	}
	return best
}

type CompiledVideo struct {
	JobID    string
	FileName string
	Duration float64
}

const DefaultMood = "epic"

// MoodDescriptions maps the bounded mood vocabulary to the prompts handed to
// the music generator.
var MoodDescriptions = map[string]string{
	"happy":    "uplifting, joyful, energetic orchestral music",
	"sad":      "melancholic, emotional, soft piano music",
	"epic":     "epic, heroic, cinematic orchestral film score",
	"calm":     "peaceful, relaxing, ambient calm music",
	"romantic": "romantic, tender, emotional violin music",
	"excited":  "excited, energetic, dynamic orchestral music",
}

// MoodDescription resolves a mood tag to its music prompt. Unknown moods fall
// back to a generic cinematic description.
func MoodDescription(mood string) string {
	if desc, ok := MoodDescriptions[mood]; ok {
		return desc
	}
	return "cinematic orchestral music"
}
