package model

import "time"

// GraphMetadata describes one construction call. DetectionCount is the
// number of geometry-bearing node contributions, not the merged node count.
type GraphMetadata struct {
	ImageCount     int       `json:"image_count"`
	DetectionCount int       `json:"detection_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// SceneGraph is the value object returned by one construction call. It has
// no cross-call identity; callers rebuild from scratch when new detections
// arrive. Every edge references nodes present in Nodes.
type SceneGraph struct {
	Nodes    []SceneNode   `json:"nodes"`
	Edges    []SceneEdge   `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}

// EmptyGraph returns the degraded "construction failed" result: no nodes,
// no edges, metadata still populated for the caller.
func EmptyGraph(imageCount int) SceneGraph {
	return SceneGraph{
		Nodes: []SceneNode{},
		Edges: []SceneEdge{},
		Metadata: GraphMetadata{
			ImageCount:     imageCount,
			DetectionCount: 0,
			CreatedAt:      time.Now().UTC(),
		},
	}
}
