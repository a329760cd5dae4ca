package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

func boxed(id string, x, y, w, h float64) model.SceneNode {
	return model.SceneNode{
		ID:          id,
		BoundingBox: &model.BoundingBox{X: x, Y: y, Width: w, Height: h},
	}
}

func TestIoU_Symmetric(t *testing.T) {
	pairs := [][2]model.BoundingBox{
		{{X: 0, Y: 0, Width: 100, Height: 100}, {X: 50, Y: 50, Width: 100, Height: 100}},
		{{X: 0, Y: 0, Width: 10, Height: 10}, {X: 500, Y: 500, Width: 10, Height: 10}},
		{{X: 0, Y: 0, Width: 200, Height: 300}, {X: 50, Y: 50, Width: 20, Height: 20}},
	}
	for _, p := range pairs {
		assert.Equal(t, IoU(p[0], p[1]), IoU(p[1], p[0]))
	}
}

func TestIoU_IdenticalBoxes(t *testing.T) {
	b := model.BoundingBox{X: 10, Y: 10, Width: 50, Height: 50}
	assert.InDelta(t, 1.0, IoU(b, b), 1e-9)
}

func TestIoU_Disjoint(t *testing.T) {
	a := model.BoundingBox{X: 0, Y: 0, Width: 10, Height: 10}
	b := model.BoundingBox{X: 100, Y: 100, Width: 10, Height: 10}
	assert.Equal(t, 0.0, IoU(a, b))
}

func TestIoU_ZeroAreaBox(t *testing.T) {
	a := model.BoundingBox{X: 0, Y: 0, Width: 0, Height: 0}
	b := model.BoundingBox{X: 0, Y: 0, Width: 10, Height: 10}
	assert.Equal(t, 0.0, IoU(a, b))
}

func TestInferEdges_Contains(t *testing.T) {
	// Small box fully inside the large one.
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 200, 300),
		boxed("b", 50, 50, 20, 20),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	// IoU of a contained small box in a large box is tiny, so the overlap
	// branch does not fire; the pair is close, so the directional branch
	// does. Use two near-identical boxes for the contains assertion below.
	assert.Equal(t, model.EvidenceSpatial, edges[0].Evidence)
	assert.Equal(t, "a", edges[0].SourceID)
	assert.Equal(t, "b", edges[0].TargetID)
}

func TestInferEdges_IdenticalBoxesOverlap(t *testing.T) {
	nodes := []model.SceneNode{
		boxed("a", 10, 10, 100, 100),
		boxed("b", 10, 10, 100, 100),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	// Fully overlapping boxes must classify as containment, never as a
	// proximity or near relation.
	assert.Equal(t, model.RelationContains, edges[0].Relation)
	assert.InDelta(t, 1.0, edges[0].Confidence, 1e-9)
}

func TestInferEdges_OverlapWithoutContainment(t *testing.T) {
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 100, 100),
		boxed("b", 30, 30, 100, 100),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	assert.Equal(t, model.RelationOnSurface, edges[0].Relation)
	iou := IoU(*nodes[0].BoundingBox, *nodes[1].BoundingBox)
	assert.Greater(t, iou, 0.3)
	assert.InDelta(t, iou, edges[0].Confidence, 1e-9)
}

func TestInferEdges_Directional(t *testing.T) {
	// b directly under a, within the proximity threshold.
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 50, 50),
		boxed("b", 0, 60, 50, 50),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	assert.Equal(t, model.RelationBelow, edges[0].Relation)
	assert.Equal(t, 0.6, edges[0].Confidence)

	// Swapped pair order flips the vertical direction.
	edges = InferEdges([]model.SceneNode{nodes[1], nodes[0]}, DefaultParams())
	require.Len(t, edges, 1)
	assert.Equal(t, model.RelationAbove, edges[0].Relation)
}

func TestInferEdges_Horizontal(t *testing.T) {
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 50, 50),
		boxed("b", 80, 0, 50, 50),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	assert.Equal(t, model.RelationRightOf, edges[0].Relation)
}

func TestInferEdges_Near(t *testing.T) {
	// Beyond 1.5x the larger diagonal (~106 for a 50x50 box -> 106px
	// threshold) but within 2x of it.
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 50, 50),
		boxed("b", 150, 0, 50, 50),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	assert.Equal(t, model.RelationNear, edges[0].Relation)
	assert.Equal(t, 0.5, edges[0].Confidence)
}

func TestInferEdges_FarApartNoEdge(t *testing.T) {
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 10, 10),
		boxed("b", 5000, 5000, 10, 10),
	}

	edges := InferEdges(nodes, DefaultParams())
	assert.Empty(t, edges)
}

func TestInferEdges_SkipsBoxlessNodes(t *testing.T) {
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 50, 50),
		{ID: "text"},
		boxed("b", 0, 60, 50, 50),
	}

	edges := InferEdges(nodes, DefaultParams())

	require.Len(t, edges, 1)
	assert.Equal(t, "a", edges[0].SourceID)
	assert.Equal(t, "b", edges[0].TargetID)
}

func TestInferEdges_AtMostOneEdgePerPair(t *testing.T) {
	nodes := []model.SceneNode{
		boxed("a", 0, 0, 100, 100),
		boxed("b", 10, 10, 80, 80),
		boxed("c", 120, 0, 100, 100),
	}

	edges := InferEdges(nodes, DefaultParams())

	seen := make(map[string]int)
	for _, e := range edges {
		seen[e.SourceID+"->"+e.TargetID]++
	}
	for pair, count := range seen {
		assert.Equal(t, 1, count, "pair %s has multiple spatial edges", pair)
	}
}

func TestParams_ZeroValuesFallBack(t *testing.T) {
	p := Params{}.withDefaults()
	assert.Equal(t, DefaultParams(), p)
}
