//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyorai/scenegraph/internal/core"
	"github.com/surveyorai/scenegraph/internal/core/model"
	"github.com/surveyorai/scenegraph/internal/driver"
)

// TestGraphRoundTrip builds a graph, persists it to a live Memgraph
// instance, reads it back, and replaces it with a rebuilt graph.
func TestGraphRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	user := os.Getenv("MEMGRAPH_USER")
	pwd := os.Getenv("MEMGRAPH_PASSWORD")

	d, err := driver.NewMemgraphDriver(uri, user, pwd, nil)
	require.NoError(t, err)
	defer d.Close(context.Background())
	require.NoError(t, d.BuildIndices(context.Background()))

	groupID := "it-" + uuid.New().String()
	store := core.NewGraphStore(d, nil)
	defer store.DeleteGraph(context.Background(), groupID)

	detections := []model.Detection{
		{ID: "1", ClassName: "wall", Confidence: 90, BoundingBox: model.BoundingBox{X: 0, Y: 0, Width: 200, Height: 300}},
		{ID: "2", ClassName: "crack", Confidence: 80, BoundingBox: model.BoundingBox{X: 50, Y: 50, Width: 20, Height: 20}},
	}
	summary := &model.SemanticSummary{
		Provider: "integration",
		Suggestions: []model.CategorySuggestion{
			{Category: "structural", Reason: "crack on wall surface"},
		},
	}

	graph := core.NewBuilder(nil).Build(detections, summary, 1, nil)
	require.NotEmpty(t, graph.Nodes)

	graphUUID, err := store.SaveGraph(context.Background(), groupID, graph)
	require.NoError(t, err)
	assert.NotEmpty(t, graphUUID)

	loaded, err := store.LoadGraph(context.Background(), groupID)
	require.NoError(t, err)

	require.Len(t, loaded.Nodes, len(graph.Nodes))
	require.Len(t, loaded.Edges, len(graph.Edges))
	assert.Equal(t, graph.Metadata.ImageCount, loaded.Metadata.ImageCount)
	assert.Equal(t, graph.Metadata.DetectionCount, loaded.Metadata.DetectionCount)
	for i, n := range graph.Nodes {
		assert.Equal(t, n.ID, loaded.Nodes[i].ID)
		assert.Equal(t, n.Type, loaded.Nodes[i].Type)
		if n.BoundingBox != nil {
			require.NotNil(t, loaded.Nodes[i].BoundingBox)
			assert.Equal(t, n.BoundingBox.X, loaded.Nodes[i].BoundingBox.X)
		}
	}

	// Saving again replaces the group instead of accumulating nodes.
	smaller := core.NewBuilder(nil).Build(detections[:1], nil, 1, nil)
	_, err = store.SaveGraph(context.Background(), groupID, smaller)
	require.NoError(t, err)

	reloaded, err := store.LoadGraph(context.Background(), groupID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Nodes, len(smaller.Nodes))
}
