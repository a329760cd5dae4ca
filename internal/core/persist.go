package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/surveyorai/scenegraph/internal/core/model"
	"github.com/surveyorai/scenegraph/internal/driver"
)

// GraphStore persists built scene graphs per assessment group. Graphs are
// value objects rebuilt from scratch, so saving always replaces the whole
// group rather than updating in place.
type GraphStore struct {
	Driver driver.GraphDriver
	log    *zap.Logger
}

func NewGraphStore(d driver.GraphDriver, logger *zap.Logger) *GraphStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphStore{
		Driver: d,
		log:    logger.Named("graphstore"),
	}
}

// SaveGraph replaces the stored graph for groupID and returns the new
// graph uuid.
func (s *GraphStore) SaveGraph(ctx context.Context, groupID string, graph model.SceneGraph) (string, error) {
	if _, err := s.Driver.ExecuteQuery(ctx, driver.DeleteGroupQuery, map[string]interface{}{
		"group_id": groupID,
	}); err != nil {
		return "", fmt.Errorf("failed to clear group %s: %w", groupID, err)
	}

	graphUUID := uuid.New().String()
	_, err := s.Driver.ExecuteQuery(ctx, driver.SaveGraphMetaQuery, map[string]interface{}{
		"uuid":            graphUUID,
		"group_id":        groupID,
		"image_count":     graph.Metadata.ImageCount,
		"detection_count": graph.Metadata.DetectionCount,
		"created_at":      graph.Metadata.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save graph metadata: %w", err)
	}

	for i, n := range graph.Nodes {
		params := map[string]interface{}{
			"uuid":       uuid.New().String(),
			"group_id":   groupID,
			"local_id":   n.ID,
			"seq":        i,
			"type":       string(n.Type),
			"label":      n.Label,
			"confidence": n.Confidence,
			"box_x":      nil,
			"box_y":      nil,
			"box_width":  nil,
			"box_height": nil,
			"attributes": marshalAttributes(n.Attributes),
		}
		if n.BoundingBox != nil {
			params["box_x"] = n.BoundingBox.X
			params["box_y"] = n.BoundingBox.Y
			params["box_width"] = n.BoundingBox.Width
			params["box_height"] = n.BoundingBox.Height
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveSceneNodeQuery, params); err != nil {
			return "", fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}

	for i, e := range graph.Edges {
		params := map[string]interface{}{
			"uuid":       uuid.New().String(),
			"group_id":   groupID,
			"seq":        i,
			"source_id":  e.SourceID,
			"target_id":  e.TargetID,
			"relation":   string(e.Relation),
			"confidence": e.Confidence,
			"evidence":   string(e.Evidence),
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveSceneEdgeQuery, params); err != nil {
			return "", fmt.Errorf("failed to save edge %s: %w", e.ID, err)
		}
	}

	s.log.Info("scene graph saved",
		zap.String("group_id", groupID),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)))
	return graphUUID, nil
}

// LoadGraph reads back the stored graph for groupID.
func (s *GraphStore) LoadGraph(ctx context.Context, groupID string) (model.SceneGraph, error) {
	graph := model.SceneGraph{
		Nodes: []model.SceneNode{},
		Edges: []model.SceneEdge{},
	}

	meta, err := s.Driver.ExecuteQuery(ctx, driver.GetGraphMetaQuery, map[string]interface{}{
		"group_id": groupID,
	})
	if err != nil {
		return graph, fmt.Errorf("failed to load graph metadata: %w", err)
	}
	if len(meta.Records) == 0 {
		return graph, fmt.Errorf("no graph stored for group %s", groupID)
	}
	rec := meta.Records[0]
	graph.Metadata.ImageCount = recInt(rec.AsMap(), "image_count")
	graph.Metadata.DetectionCount = recInt(rec.AsMap(), "detection_count")
	if ts, ok := rec.AsMap()["created_at"].(string); ok {
		if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
			graph.Metadata.CreatedAt = t
		}
	}

	nodeRes, err := s.Driver.ExecuteQuery(ctx, driver.GetGroupNodesQuery, map[string]interface{}{
		"group_id": groupID,
	})
	if err != nil {
		return graph, fmt.Errorf("failed to load nodes: %w", err)
	}
	for _, r := range nodeRes.Records {
		m := r.AsMap()
		node := model.SceneNode{
			ID:         recString(m, "local_id"),
			Type:       model.NodeType(recString(m, "type")),
			Label:      recString(m, "label"),
			Confidence: recFloat(m, "confidence"),
		}
		if x, ok := m["box_x"].(float64); ok {
			node.BoundingBox = &model.BoundingBox{
				X:      x,
				Y:      recFloat(m, "box_y"),
				Width:  recFloat(m, "box_width"),
				Height: recFloat(m, "box_height"),
			}
		}
		if attrs := recString(m, "attributes"); attrs != "" && attrs != "{}" {
			var parsed map[string]interface{}
			if jerr := json.Unmarshal([]byte(attrs), &parsed); jerr == nil {
				node.Attributes = parsed
			}
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	edgeRes, err := s.Driver.ExecuteQuery(ctx, driver.GetGroupEdgesQuery, map[string]interface{}{
		"group_id": groupID,
	})
	if err != nil {
		return graph, fmt.Errorf("failed to load edges: %w", err)
	}
	for i, r := range edgeRes.Records {
		m := r.AsMap()
		graph.Edges = append(graph.Edges, model.SceneEdge{
			ID:         fmt.Sprintf("edge_%d", i+1),
			SourceID:   recString(m, "source_id"),
			TargetID:   recString(m, "target_id"),
			Relation:   model.Relation(recString(m, "relation")),
			Confidence: recFloat(m, "confidence"),
			Evidence:   model.Evidence(recString(m, "evidence")),
		})
	}

	return graph, nil
}

// DeleteGraph removes the stored graph for groupID.
func (s *GraphStore) DeleteGraph(ctx context.Context, groupID string) error {
	_, err := s.Driver.ExecuteQuery(ctx, driver.DeleteGroupQuery, map[string]interface{}{
		"group_id": groupID,
	})
	return err
}

// Attributes are stored as a JSON string property; graph databases do not
// accept nested maps as property values.
func marshalAttributes(attrs map[string]interface{}) string {
	if len(attrs) == 0 {
		return "{}"
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func recString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func recFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func recInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
