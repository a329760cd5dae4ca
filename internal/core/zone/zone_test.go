package zone

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

func graphOf(nodeIDs []string, edges [][2]string) model.SceneGraph {
	g := model.SceneGraph{}
	for _, id := range nodeIDs {
		g.Nodes = append(g.Nodes, model.SceneNode{ID: id})
	}
	for _, e := range edges {
		g.Edges = append(g.Edges, model.SceneEdge{SourceID: e[0], TargetID: e[1], Relation: model.RelationNear})
	}
	return g
}

func zoneSizes(zones [][]model.SceneNode) []int {
	sizes := make([]int, 0, len(zones))
	for _, z := range zones {
		sizes = append(sizes, len(z))
	}
	sort.Ints(sizes)
	return sizes
}

func TestComponentDetector_SplitsComponents(t *testing.T) {
	g := graphOf(
		[]string{"a", "b", "c", "d", "e", "lone"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"d", "e"}},
	)

	zones, err := (&ComponentDetector{}).Detect(g)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, zoneSizes(zones))
}

func TestComponentDetector_IgnoresDanglingEdges(t *testing.T) {
	g := graphOf([]string{"a", "b"}, [][2]string{{"a", "ghost"}, {"a", "b"}})

	zones, err := (&ComponentDetector{}).Detect(g)

	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Len(t, zones[0], 2)
}

func TestComponentDetector_NoEdgesNoZones(t *testing.T) {
	g := graphOf([]string{"a", "b", "c"}, nil)

	zones, err := (&ComponentDetector{}).Detect(g)

	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestLabelPropagation_SeparatesDisconnectedClusters(t *testing.T) {
	g := graphOf(
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"d", "e"}},
	)

	zones, err := NewLabelPropagationDetector().Detect(g)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, zoneSizes(zones))
}

func TestLabelPropagation_ParallelEdgesBindPairs(t *testing.T) {
	// b has one edge to a and two to c; the doubled connection pulls b into
	// c's zone.
	g := graphOf(
		[]string{"a", "x", "b", "c"},
		[][2]string{{"a", "x"}, {"a", "b"}, {"b", "c"}, {"c", "b"}},
	)

	zones, err := NewLabelPropagationDetector().Detect(g)

	require.NoError(t, err)
	var bZone []string
	for _, z := range zones {
		ids := make([]string, 0, len(z))
		for _, n := range z {
			ids = append(ids, n.ID)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if id == "b" {
				bZone = ids
			}
		}
	}
	require.NotNil(t, bZone)
	assert.Contains(t, bZone, "c")
}

func TestLabelPropagation_EmptyGraph(t *testing.T) {
	zones, err := NewLabelPropagationDetector().Detect(model.SceneGraph{})
	require.NoError(t, err)
	assert.Nil(t, zones)
}

func TestLabelPropagation_IsolatedNodesAreNotZones(t *testing.T) {
	g := graphOf([]string{"a", "b", "c"}, [][2]string{{"a", "b"}})

	zones, err := NewLabelPropagationDetector().Detect(g)

	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Len(t, zones[0], 2)
}

func TestNewDetector_DefaultsToLabelPropagation(t *testing.T) {
	_, ok := NewDetector().(*LabelPropagationDetector)
	assert.True(t, ok)
}
