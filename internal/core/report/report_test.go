package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// queueClient replays canned responses in order, one per Generate call.
type queueClient struct {
	responses []string
	err       error
	prompts   []string
}

func (c *queueClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", errors.New("no canned response left")
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func damageGraph() model.SceneGraph {
	return model.SceneGraph{
		Nodes: []model.SceneNode{
			{ID: "node_1", Type: model.TypeWall, Label: "wall", Confidence: 0.9},
			{ID: "node_2", Type: model.TypeCrack, Label: "crack", Confidence: 0.8},
			{ID: "node_3", Type: model.TypeMold, Label: "mold growth", Confidence: 0.7},
		},
		Edges: []model.SceneEdge{
			{ID: "edge_1", SourceID: "node_2", TargetID: "node_1", Relation: model.RelationOnSurface},
		},
	}
}

func TestDescribe_SummaryAndRankedFindings(t *testing.T) {
	// First call answers the summary prompt, second the ranking prompt.
	client := &queueClient{responses: []string{
		`{"summary": "Moisture damage on the north wall."}`,
		"1, 0",
	}}
	reporter := NewReporter(client, "")

	rep, err := reporter.Describe(context.Background(), damageGraph(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Moisture damage on the north wall.", rep.Summary)

	require.Len(t, rep.Findings, 2, "only damage nodes become findings")
	assert.Equal(t, "node_3", rep.Findings[0].NodeID)
	assert.Equal(t, 1, rep.Findings[0].Severity)
	assert.Equal(t, "node_2", rep.Findings[1].NodeID)
	assert.Equal(t, 2, rep.Findings[1].Severity)
	assert.Contains(t, rep.Findings[1].Description, "on_surface wall")

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "node_1: wall")
	assert.Contains(t, client.prompts[0], "none", "no zones serializes as none")
}

func TestDescribe_PartialRankKeepsUnrankedTail(t *testing.T) {
	client := &queueClient{responses: []string{
		`{"summary": "ok"}`,
		"1",
	}}
	reporter := NewReporter(client, "")

	rep, err := reporter.Describe(context.Background(), damageGraph(), nil)

	require.NoError(t, err)
	require.Len(t, rep.Findings, 2)
	assert.Equal(t, "node_3", rep.Findings[0].NodeID)
	assert.Equal(t, "node_2", rep.Findings[1].NodeID, "unranked finding appended at the tail")
}

func TestDescribe_NoDamageNoFindings(t *testing.T) {
	client := &queueClient{responses: []string{`{"summary": "All clear."}`}}
	reporter := NewReporter(client, "")

	graph := model.SceneGraph{
		Nodes: []model.SceneNode{
			{ID: "node_1", Type: model.TypeWall, Label: "wall", Confidence: 0.9},
		},
	}

	rep, err := reporter.Describe(context.Background(), graph, nil)

	require.NoError(t, err)
	assert.Equal(t, "All clear.", rep.Summary)
	assert.Empty(t, rep.Findings)
	assert.Len(t, client.prompts, 1, "ranking is skipped without damage nodes")
}

func TestDescribe_ZonesAppearInPrompt(t *testing.T) {
	client := &queueClient{responses: []string{`{"summary": "ok"}`, "0, 1"}}
	reporter := NewReporter(client, "")

	zones := [][]model.SceneNode{
		{{ID: "node_1", Label: "wall"}, {ID: "node_2", Label: "crack"}},
	}

	_, err := reporter.Describe(context.Background(), damageGraph(), zones)

	require.NoError(t, err)
	assert.Contains(t, client.prompts[0], "zone 1: wall, crack")
}

func TestDescribe_ModelErrorPropagates(t *testing.T) {
	client := &queueClient{err: errors.New("model unavailable")}
	reporter := NewReporter(client, "")

	_, err := reporter.Describe(context.Background(), damageGraph(), nil)
	assert.Error(t, err)
}

func TestDescribe_UnparseableSummaryFails(t *testing.T) {
	client := &queueClient{responses: []string{"not json at all"}}
	reporter := NewReporter(client, "")

	_, err := reporter.Describe(context.Background(), damageGraph(), nil)
	assert.Error(t, err)
}
