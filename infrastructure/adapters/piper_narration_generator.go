package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/config"
	"github.com/JonattanS/RewindDay/domain"
)

type piperNarrationGenerator struct {
	logger        outbound.LoggerPort
	piperConfig   *config.PiperConfig
	artifactStore outbound.ArtifactStorePort
}

func NewPiperNarrationGenerator(piperConfig *config.PiperConfig, artifactStore outbound.ArtifactStorePort,
	logger outbound.LoggerPort) outbound.NarrationGeneratorPort {
	return &piperNarrationGenerator{
		logger:        logger,
		piperConfig:   piperConfig,
		artifactStore: artifactStore,
	}
}

// Generate synthesizes one narration clip. The text goes through stdin, so
// newlines and punctuation never need shell escaping.
func (p *piperNarrationGenerator) Generate(ctx context.Context, genReq outbound.GenerateNarrationRequest) (string, error) {
	newCtx, cancel := context.WithTimeout(ctx, p.piperConfig.Timeout)
	defer cancel()

	outputFile := p.artifactStore.NarrationPath(genReq.JobID, genReq.SceneNumber)

	cmd := exec.CommandContext(newCtx, p.piperConfig.BinaryPath,
		"--model", p.piperConfig.Model,
		"--output-file", outputFile,
		"--length-scale", p.piperConfig.LengthScale)
	cmd.Stdin = strings.NewReader(genReq.Text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(newCtx.Err(), context.DeadlineExceeded) {
			return "", domain.NewStageFailure(domain.NarrationStage, domain.Timeout,
				fmt.Sprintf("narration timed out for scene %d", genReq.SceneNumber))
		}
		p.logger.ErrorWithFields(err, "Piper exited with an error", map[string]interface{}{
			"job_id": genReq.JobID,
			"scene":  genReq.SceneNumber,
			"stderr": stderr.String(),
		})
		return "", domain.NewStageFailure(domain.NarrationStage, domain.NonZeroExit,
			fmt.Sprintf("piper failed for scene %d: %s", genReq.SceneNumber, strings.TrimSpace(stderr.String())))
	}

	p.logger.DebugWithFields("Narration clip generated", map[string]interface{}{
		"job_id": genReq.JobID,
		"scene":  genReq.SceneNumber,
		"path":   outputFile,
	})

	return outputFile, nil
}

func (p *piperNarrationGenerator) Ping(_ context.Context) error {
	_, err := exec.LookPath(p.piperConfig.BinaryPath)
	return err
}
