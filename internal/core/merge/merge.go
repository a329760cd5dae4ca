// Package merge deduplicates extracted nodes and inferred edges and
// validates that the final edge set is resolvable against the final node
// set.
package merge

import (
	"strings"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// Nodes collapses nodes sharing a lowercased (type, label) key. The
// surviving node keeps the highest confidence seen, whichever bounding box
// is non-nil (detection-derived nodes win, since only they carry boxes),
// and the union of attributes with later values overwriting on key
// collision. First-seen order is preserved so fixtures stay reproducible.
func Nodes(nodes []model.SceneNode) []model.SceneNode {
	merged := make([]model.SceneNode, 0, len(nodes))
	index := make(map[string]int)

	for _, n := range nodes {
		key := strings.ToLower(string(n.Type)) + "|" + strings.ToLower(n.Label)
		at, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, n)
			continue
		}

		kept := &merged[at]
		if n.Confidence > kept.Confidence {
			kept.Confidence = n.Confidence
		}
		if kept.BoundingBox == nil && n.BoundingBox != nil {
			kept.BoundingBox = n.BoundingBox
		}
		if len(n.Attributes) > 0 {
			if kept.Attributes == nil {
				kept.Attributes = make(map[string]interface{}, len(n.Attributes))
			}
			for k, v := range n.Attributes {
				kept.Attributes[k] = v
			}
		}
	}
	return merged
}

// Edges collapses edges sharing a (source, relation, target) key, keeping
// the highest confidence. When the collapsed edges carry different
// evidence tags the survivor is marked "both".
func Edges(edges []model.SceneEdge) []model.SceneEdge {
	merged := make([]model.SceneEdge, 0, len(edges))
	index := make(map[string]int)

	for _, e := range edges {
		key := e.SourceID + "|" + string(e.Relation) + "|" + e.TargetID
		at, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, e)
			continue
		}

		kept := &merged[at]
		if e.Confidence > kept.Confidence {
			kept.Confidence = e.Confidence
		}
		if kept.Evidence != e.Evidence {
			kept.Evidence = model.EvidenceBoth
		}
	}
	return merged
}

// Validate drops edges referencing node ids absent from the final node
// set. Edges are only ever built from nodes already in the working set, so
// this should not trigger in normal operation, but callers rely on every
// returned edge being resolvable. Dropped edges are not reported.
func Validate(nodes []model.SceneNode, edges []model.SceneEdge) []model.SceneEdge {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	valid := make([]model.SceneEdge, 0, len(edges))
	for _, e := range edges {
		if known[e.SourceID] && known[e.TargetID] {
			valid = append(valid, e)
		}
	}
	return valid
}
