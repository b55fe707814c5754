package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
)

func newImageGenerator(apiUrl string, store outbound.ArtifactStorePort) outbound.ImageGeneratorPort {
	logger := NewZerologWrapper()
	return NewSDImageGenerator(NewContentFetcher(logger), &config.StableDiffusionConfig{
		ApiUrl:         apiUrl,
		Width:          1920,
		Height:         1080,
		Steps:          20,
		Sampler:        "DPM++ 2M",
		CfgScale:       7.5,
		NegativePrompt: "blurry, low quality, distorted, ugly, bad, deformed",
		Timeout:        5 * time.Second,
	}, store, logger)
}

func TestSDImageGenerator_PingHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
	}))
	defer server.Close()

	if err := newImageGenerator(server.URL, newTestArtifactStore(t)).Ping(context.Background()); err != nil {
		t.Errorf("ping against a healthy service failed: %v", err)
	}
}

func TestSDImageGenerator_PingReportsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(500)
	}))
	defer server.Close()

	if err := newImageGenerator(server.URL, newTestArtifactStore(t)).Ping(context.Background()); err == nil {
		t.Error("ping must fail when the service answers non-OK")
	}
}
