package extraction

import (
	"github.com/surveyorai/scenegraph/internal/core/model"
)

// Default confidence for nodes derived from free-text feature strings,
// which carry no score of their own.
const featureConfidence = 0.8

// NodesFromSummary extracts geometry-free nodes from the vision-language
// summary. Feature strings and label descriptions are classified with
// word-boundary matching; text with no recognizable entity is dropped, and
// only the first node per inferred type is kept. This caps the semantic
// node count and deliberately loses duplicate mentions.
func NodesFromSummary(summary *model.SemanticSummary) []model.SceneNode {
	if summary == nil {
		return nil
	}

	var nodes []model.SceneNode
	seen := make(map[model.NodeType]bool)

	emit := func(text string, confidence float64) {
		nodeType, ok := ClassifyText(text)
		if !ok || seen[nodeType] {
			return
		}
		seen[nodeType] = true
		nodes = append(nodes, model.SceneNode{
			Type:       nodeType,
			Label:      text,
			Confidence: confidence,
			Attributes: map[string]interface{}{
				"source":   model.SourceSemantic,
				"provider": summary.Provider,
			},
		})
	}

	for _, feature := range summary.DetectedFeatures {
		emit(feature, featureConfidence)
	}
	for _, label := range summary.Labels {
		emit(label.Description, label.Score)
	}

	return nodes
}
