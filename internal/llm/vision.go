package llm

import (
	"context"
	"fmt"

	"github.com/surveyorai/scenegraph/internal/core/common"
	"github.com/surveyorai/scenegraph/internal/core/model"
)

const defaultAnalysisPrompt = `You are a building surveyor reviewing a photo of a property.
Describe the visible structural elements and any damage.

Return a JSON object with these keys:
- "confidence": overall confidence 0-1
- "labels": list of {"description": string, "score": 0-1}
- "detected_features": list of short free-text feature strings
- "suggestions": list of {"category": string, "reason": string} where the
  reason explains the spatial or causal relationship you observe
  (e.g. "crack on wall near window, likely caused by settling").

Return ONLY the JSON object.`

// Analyzer turns a raw image into a SemanticSummary via the configured
// vision-language provider.
type Analyzer struct {
	Vision   VisionClient
	Provider string
	Prompt   string
}

func NewAnalyzer(vision VisionClient, provider, prompt string) *Analyzer {
	if prompt == "" {
		prompt = defaultAnalysisPrompt
	}
	return &Analyzer{
		Vision:   vision,
		Provider: provider,
		Prompt:   prompt,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, imageBase64 string) (*model.SemanticSummary, error) {
	response, err := a.Vision.AnalyzeImage(ctx, imageBase64, a.Prompt)
	if err != nil {
		return nil, fmt.Errorf("vision analysis failed: %w", err)
	}

	summary, err := common.ParseJSON[model.SemanticSummary](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	summary.Provider = a.Provider
	return &summary, nil
}
