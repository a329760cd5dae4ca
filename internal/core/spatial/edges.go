package spatial

import (
	"math"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// Params are the spatial inference thresholds. Zero values are replaced by
// the defaults, so a partially populated config still behaves sanely.
type Params struct {
	// OverlapIoU is the IoU above which two boxes are treated as
	// overlapping (contains / on_surface).
	OverlapIoU float64
	// ProximityFactor scales the larger box diagonal into the
	// directional-relation distance threshold.
	ProximityFactor float64
	// NearFactor scales the proximity threshold into the outer "near"
	// distance limit.
	NearFactor float64
	// AdjacencyGap is the touching tolerance in pixels.
	AdjacencyGap float64
}

// DefaultParams returns the calibrated thresholds.
func DefaultParams() Params {
	return Params{
		OverlapIoU:      0.3,
		ProximityFactor: 1.5,
		NearFactor:      2.0,
		AdjacencyGap:    10,
	}
}

func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.OverlapIoU == 0 {
		p.OverlapIoU = def.OverlapIoU
	}
	if p.ProximityFactor == 0 {
		p.ProximityFactor = def.ProximityFactor
	}
	if p.NearFactor == 0 {
		p.NearFactor = def.NearFactor
	}
	if p.AdjacencyGap == 0 {
		p.AdjacencyGap = def.AdjacencyGap
	}
	return p
}

// Fixed confidences for the non-overlap relation classes.
const (
	directionalConfidence = 0.6
	adjacentConfidence    = 0.7
	nearConfidence        = 0.5
)

// InferEdges derives at most one spatial edge per unordered node pair.
// Nodes without a bounding box never participate. Rule priority is
// overlap > proximity-directional > adjacency > near; pairs beyond the
// outer distance limit produce no edge at all, so sparse graphs are the
// expected output for scattered detections. Edge direction is lower index
// to higher index.
func InferEdges(nodes []model.SceneNode, params Params) []model.SceneEdge {
	p := params.withDefaults()

	var edges []model.SceneEdge
	for i := 0; i < len(nodes); i++ {
		if nodes[i].BoundingBox == nil {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			if nodes[j].BoundingBox == nil {
				continue
			}
			if edge, ok := classifyPair(nodes[i], nodes[j], p); ok {
				edges = append(edges, edge)
			}
		}
	}
	return edges
}

func classifyPair(a, b model.SceneNode, p Params) (model.SceneEdge, bool) {
	boxA := *a.BoundingBox
	boxB := *b.BoundingBox

	edge := model.SceneEdge{
		SourceID: a.ID,
		TargetID: b.ID,
		Evidence: model.EvidenceSpatial,
	}

	if iou := IoU(boxA, boxB); iou > p.OverlapIoU {
		if contains(boxA, boxB) || contains(boxB, boxA) {
			edge.Relation = model.RelationContains
		} else {
			edge.Relation = model.RelationOnSurface
		}
		edge.Confidence = iou
		return edge, true
	}

	distance := centerDistance(boxA, boxB)
	threshold := p.ProximityFactor * math.Max(diagonal(boxA), diagonal(boxB))

	if distance < threshold {
		ax, ay := center(boxA)
		bx, by := center(boxB)
		dx := bx - ax
		dy := by - ay
		if math.Abs(dy) > math.Abs(dx) {
			if dy < 0 {
				edge.Relation = model.RelationAbove
			} else {
				edge.Relation = model.RelationBelow
			}
		} else {
			if dx < 0 {
				edge.Relation = model.RelationLeftOf
			} else {
				edge.Relation = model.RelationRightOf
			}
		}
		edge.Confidence = directionalConfidence
		return edge, true
	}

	if adjacent(boxA, boxB, p.AdjacencyGap) {
		edge.Relation = model.RelationAdjacentTo
		edge.Confidence = adjacentConfidence
		return edge, true
	}

	if distance < p.NearFactor*threshold {
		edge.Relation = model.RelationNear
		edge.Confidence = nearConfidence
		return edge, true
	}

	return model.SceneEdge{}, false
}
