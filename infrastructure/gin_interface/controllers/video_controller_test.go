package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonattanS/RewindDay/application/ports/inbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
	"github.com/JonattanS/RewindDay/infrastructure/adapters"
)

type stubVideoGenerator struct {
	jobs      map[string]domain.Job
	submitted []inbound.SubmitVideoRequest
	submitErr error
}

func newStubVideoGenerator() *stubVideoGenerator {
	return &stubVideoGenerator{jobs: make(map[string]domain.Job)}
}

func (s *stubVideoGenerator) Submit(_ context.Context, req inbound.SubmitVideoRequest) (domain.Job, error) {
	if s.submitErr != nil {
		return domain.Job{}, s.submitErr
	}
	s.submitted = append(s.submitted, req)
	job := domain.Job{
		ID:        "job-1",
		Title:     req.Title,
		Context:   req.Context,
		Style:     req.Style,
		Status:    domain.JobQueued,
		CreatedAt: time.Now().UTC(),
	}
	s.jobs[job.ID] = job
	return job, nil
}

func (s *stubVideoGenerator) Status(id string) (domain.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (s *stubVideoGenerator) List() []domain.Job {
	jobs := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

func (s *stubVideoGenerator) VideoFile(id string) (string, error) {
	job, ok := s.jobs[id]
	if !ok || job.Status != domain.JobCompleted {
		return "", domain.ErrJobNotFound
	}
	return job.VideoPath, nil
}

func (s *stubVideoGenerator) Delete(id string) error {
	if _, ok := s.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

func newTestRouter(t *testing.T, generator inbound.VideoGeneratorPort) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	artifactStore, err := adapters.NewLocalArtifactStore(&config.StorageConfig{VideosDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create artifact store: %v", err)
	}

	router := gin.New()
	NewVideoController(adapters.NewZerologWrapper(), generator, artifactStore).RegisterRoutes(router)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestVideoController_GenerateQueuesJob(t *testing.T) {
	generator := newStubVideoGenerator()
	router := newTestRouter(t, generator)

	recorder := postJSON(router, "/api/videos/generate", map[string]string{
		"title":   "Team Offsite",
		"context": "A two-day company retreat in the mountains with hiking and workshops",
		"style":   "anime",
	})

	if recorder.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "job-1" || resp.Status != string(domain.JobQueued) {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(generator.submitted) != 1 || generator.submitted[0].Style != "anime" {
		t.Errorf("request not forwarded to the service: %+v", generator.submitted)
	}
}

func TestVideoController_GenerateRejectsInvalidInput(t *testing.T) {
	generator := newStubVideoGenerator()
	router := newTestRouter(t, generator)

	cases := map[string]map[string]string{
		"short title": {
			"title":   "Hi",
			"context": "A two-day company retreat in the mountains with hiking and workshops",
		},
		"short context": {
			"title":   "Team Offsite",
			"context": "too short",
		},
		"missing context": {
			"title": "Team Offsite",
		},
	}

	for name, body := range cases {
		recorder := postJSON(router, "/api/videos/generate", body)
		if recorder.Code != 400 {
			t.Errorf("%s: expected 400, got %d", name, recorder.Code)
		}
	}
	if len(generator.submitted) != 0 {
		t.Errorf("invalid requests must not reach the service, got %d", len(generator.submitted))
	}
}

func TestVideoController_StatusUnknownJobIs404(t *testing.T) {
	router := newTestRouter(t, newStubVideoGenerator())

	req := httptest.NewRequest(http.MethodGet, "/api/videos/no-such-job/status", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 404 {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestVideoController_StatusReportsProgress(t *testing.T) {
	generator := newStubVideoGenerator()
	generator.jobs["job-9"] = domain.Job{
		ID:       "job-9",
		Status:   domain.JobGenerating,
		Progress: 70,
	}
	router := newTestRouter(t, generator)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/job-9/status", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 200 {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var resp struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.JobGenerating) || resp.Progress != 70 {
		t.Errorf("unexpected status payload %+v", resp)
	}
	if resp.Message == "" {
		t.Error("status message must not be empty")
	}
}

func TestVideoController_DownloadServesCompletedVideo(t *testing.T) {
	videoPath := filepath.Join(t.TempDir(), "job-7.mp4")
	payload := []byte("fake mp4 bytes")
	if err := os.WriteFile(videoPath, payload, 0644); err != nil {
		t.Fatalf("failed to write video: %v", err)
	}

	generator := newStubVideoGenerator()
	generator.jobs["job-7"] = domain.Job{ID: "job-7", Status: domain.JobCompleted, VideoPath: videoPath}
	router := newTestRouter(t, generator)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/job-7/download", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("expected video/mp4, got %q", got)
	}
	if got := recorder.Header().Get("Content-Disposition"); !strings.Contains(got, "job-7.mp4") {
		t.Errorf("expected attachment named job-7.mp4, got %q", got)
	}
	if !bytes.Equal(recorder.Body.Bytes(), payload) {
		t.Errorf("body does not match the file on disk")
	}
}

func TestVideoController_DownloadIncompleteJobIs404(t *testing.T) {
	generator := newStubVideoGenerator()
	generator.jobs["job-2"] = domain.Job{ID: "job-2", Status: domain.JobGenerating}
	router := newTestRouter(t, generator)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/job-2/download", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 404 {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestVideoController_DeleteUnknownJobIs404(t *testing.T) {
	router := newTestRouter(t, newStubVideoGenerator())

	req := httptest.NewRequest(http.MethodDelete, "/api/videos/no-such-job", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 404 {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestVideoController_DeleteRemovesJob(t *testing.T) {
	generator := newStubVideoGenerator()
	generator.jobs["job-3"] = domain.Job{ID: "job-3", Status: domain.JobCompleted}
	router := newTestRouter(t, generator)

	req := httptest.NewRequest(http.MethodDelete, "/api/videos/job-3", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 200 {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if _, ok := generator.jobs["job-3"]; ok {
		t.Error("job still present after delete")
	}
}

func TestVideoController_ListIncludesAllJobs(t *testing.T) {
	generator := newStubVideoGenerator()
	generator.jobs["job-4"] = domain.Job{ID: "job-4", Title: "First", Status: domain.JobCompleted, Progress: 100}
	generator.jobs["job-5"] = domain.Job{ID: "job-5", Title: "Second", Status: domain.JobQueued}
	router := newTestRouter(t, generator)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != 200 {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var resp struct {
		Videos []struct {
			ID string `json:"id"`
		} `json:"videos"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Videos) != 2 {
		t.Errorf("expected 2 videos, got %d", len(resp.Videos))
	}
}
