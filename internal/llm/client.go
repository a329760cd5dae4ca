package llm

import (
	"context"
)

// Client generates text from a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VisionClient answers a prompt about a base64-encoded image. Providers
// without multimodal support return an error from AnalyzeImage so callers
// can degrade to detection-only graphs.
type VisionClient interface {
	AnalyzeImage(ctx context.Context, imageBase64 string, prompt string) (string, error)
}
