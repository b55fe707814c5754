package dto

import (
	"time"

	"github.com/JonattanS/RewindDay/domain"
)

type GenerateVideoRequest struct {
	Title   string `json:"title" binding:"required,min=5,max=255"`
	Context string `json:"context" binding:"required,min=20,max=2000"`
	Style   string `json:"style"`
}

type VideoJobResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}

func NewVideoJobResponse(job domain.Job) VideoJobResponse {
	return VideoJobResponse{
		ID:        job.ID,
		Title:     job.Title,
		Status:    string(job.Status),
		Progress:  job.Progress,
		CreatedAt: job.CreatedAt,
	}
}

type VideoStatusResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

func NewVideoStatusResponse(job domain.Job) VideoStatusResponse {
	return VideoStatusResponse{
		ID:       job.ID,
		Status:   string(job.Status),
		Progress: job.Progress,
		Message:  job.StatusMessage(),
	}
}

type VideoSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	SizeBytes int64     `json:"size_bytes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
