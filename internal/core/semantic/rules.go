package semantic

import (
	"github.com/surveyorai/scenegraph/internal/core/model"
)

// typeRule links every node of a source type set to every node of a target
// type set, independent of any text content. The rules are a fixed domain
// assumption, not evidence-weighted inference: co-occurring damage and
// structure are presumed related.
type typeRule struct {
	Sources    map[model.NodeType]bool
	Targets    map[model.NodeType]bool
	Relation   model.Relation
	Confidence float64
}

var defaultRules = []typeRule{
	{model.DamageTypes, model.StructuralTypes, model.RelationOnSurface, 0.7},
	{model.StructuralTypes, model.DamageTypes, model.RelationHas, 0.7},
}

// RuleEdges applies the fixed type-pair rules over all ordered node pairs.
// When any damage and structural nodes coexist this is the dominant source
// of edges in the graph.
func RuleEdges(nodes []model.SceneNode) []model.SceneEdge {
	var edges []model.SceneEdge
	for _, rule := range defaultRules {
		for _, src := range nodes {
			if !rule.Sources[src.Type] {
				continue
			}
			for _, tgt := range nodes {
				if tgt.ID == src.ID || !rule.Targets[tgt.Type] {
					continue
				}
				edges = append(edges, model.SceneEdge{
					SourceID:   src.ID,
					TargetID:   tgt.ID,
					Relation:   rule.Relation,
					Confidence: rule.Confidence,
					Evidence:   model.EvidenceNLP,
				})
			}
		}
	}
	return edges
}
