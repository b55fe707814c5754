package outbound

import (
	"context"

	"github.com/JonattanS/RewindDay/domain"
)

type GenerateScriptRequest struct {
	Title   string
	Context string
	Style   string
}

// ScriptGeneratorPort turns a free-text event description into a structured
// script. The backing LLM may wrap the payload in commentary; the adapter is
// responsible for recovering a single well-formed script from the raw text.
type ScriptGeneratorPort interface {
	Generate(ctx context.Context, req GenerateScriptRequest) (*domain.Script, error)
	Ping(ctx context.Context) error
}
