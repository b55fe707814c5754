package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
)

const scriptPromptTemplate = `You are an expert cinematographer. Write the script for a video about an important event.

EVENT: %s
TITLE: %s
STYLE: %s

Return ONLY JSON, no markdown, with exactly 5 scenes:
{
    "title": "Descriptive video title",
    "scenes": [
        {
            "number": 1,
            "title": "Scene 1",
            "description": "A short visual description (20-30 words) to generate an image",
            "narration": "The narration for this scene (50-80 words)",
            "duration": 8,
            "mood": "happy"
        }
    ]
}
Valid moods: happy, sad, epic, calm, romantic, excited.`

type ollamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

type ollamaScriptGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	ollamaConfig *config.OllamaConfig
	jsonRegexp   *regexp.Regexp
}

func NewOllamaScriptGenerator(contentFetcher ContentFetcher, ollamaConfig *config.OllamaConfig, logger outbound.LoggerPort) outbound.ScriptGeneratorPort {
	return &ollamaScriptGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		ollamaConfig:   ollamaConfig,
		jsonRegexp:     regexp.MustCompile(`(?s)\{.*\}`),
	}
}

func (o *ollamaScriptGenerator) Generate(ctx context.Context, genReq outbound.GenerateScriptRequest) (*domain.Script, error) {
	newCtx, cancel := context.WithTimeout(ctx, o.ollamaConfig.Timeout)
	defer cancel()

	req, err := o.getRequest(newCtx, genReq)
	if err != nil {
		o.logger.Error(err, "Failed to create the script generation request")
		return nil, domain.NewStageFailure(domain.ScriptStage, domain.ExternalUnavailable, err.Error())
	}

	rawRes, err := o.FetchContent(req)
	if err != nil {
		if errors.Is(newCtx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewStageFailure(domain.ScriptStage, domain.Timeout, "script generation timed out")
		}
		return nil, domain.NewStageFailure(domain.ScriptStage, domain.ExternalUnavailable, err.Error())
	}

	var ollamaRes ollamaGenerateResponse
	if err = json.Unmarshal(rawRes, &ollamaRes); err != nil {
		o.logger.Error(err, "Failed to unmarshal the ollama response envelope")
		return nil, domain.NewStageFailure(domain.ScriptStage, domain.MalformedOutput, err.Error())
	}

	script, err := o.extractScript(ollamaRes.Response)
	if err != nil {
		o.logger.ErrorWithFields(err, "No well-formed script in model output", map[string]interface{}{
			"model": o.ollamaConfig.Model,
		})
		return nil, domain.NewStageFailure(domain.ScriptStage, domain.MalformedOutput, err.Error())
	}

	o.logger.InfoWithFields("Script generated", map[string]interface{}{
		"title":  script.Title,
		"scenes": len(script.Scenes),
	})

	return script, nil
}

// extractScript recovers one JSON payload from raw model text. The model may
// prepend commentary, so the match spans the first '{' to the last '}'.
func (o *ollamaScriptGenerator) extractScript(raw string) (*domain.Script, error) {
	match := o.jsonRegexp.FindString(raw)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	var script domain.Script
	if err := json.Unmarshal([]byte(match), &script); err != nil {
		return nil, fmt.Errorf("invalid script JSON: %w", err)
	}

	if len(script.Scenes) == 0 {
		return nil, fmt.Errorf("script contains no scenes")
	}

	for i := range script.Scenes {
		scene := &script.Scenes[i]
		scene.Number = i + 1
		if scene.Duration <= 0 {
			scene.Duration = 8
		}
		if scene.Mood == "" {
			scene.Mood = domain.DefaultMood
		}
	}

	return &script, nil
}

func (o *ollamaScriptGenerator) getRequest(ctx context.Context, genReq outbound.GenerateScriptRequest) (*http.Request, error) {
	reqBody := ollamaGenerateRequest{
		Model:       o.ollamaConfig.Model,
		Prompt:      fmt.Sprintf(scriptPromptTemplate, genReq.Context, genReq.Title, genReq.Style),
		Stream:      false,
		Temperature: o.ollamaConfig.Temperature,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.ollamaConfig.ApiUrl+"/api/generate", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func (o *ollamaScriptGenerator) Ping(ctx context.Context) error {
	newCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(newCtx, "GET", o.ollamaConfig.ApiUrl+"/api/tags", nil)
	if err != nil {
		return err
	}

	_, err = o.FetchContent(req)
	return err
}
