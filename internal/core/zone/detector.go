// Package zone groups the nodes of a built scene graph into assessment
// zones: clusters of entities and damage phenomena that belong to the same
// region of the property.
package zone

import (
	"github.com/surveyorai/scenegraph/internal/core/model"
)

type Detector interface {
	Detect(graph model.SceneGraph) ([][]model.SceneNode, error)
}

// ComponentDetector clusters by plain connected components, ignoring edge
// direction. It is the fallback when label propagation is overkill, e.g.
// for the small graphs a single image produces.
type ComponentDetector struct{}

func NewDetector() Detector {
	return NewLabelPropagationDetector()
}

func (d *ComponentDetector) Detect(graph model.SceneGraph) ([][]model.SceneNode, error) {
	nodeMap := make(map[string]model.SceneNode)
	adj := make(map[string][]string)

	for _, n := range graph.Nodes {
		nodeMap[n.ID] = n
	}
	for _, e := range graph.Edges {
		if _, ok := nodeMap[e.SourceID]; !ok {
			continue
		}
		if _, ok := nodeMap[e.TargetID]; !ok {
			continue
		}
		adj[e.SourceID] = append(adj[e.SourceID], e.TargetID)
		adj[e.TargetID] = append(adj[e.TargetID], e.SourceID)
	}

	visited := make(map[string]bool)
	var zones [][]model.SceneNode

	for _, n := range graph.Nodes {
		if visited[n.ID] {
			continue
		}
		var componentIDs []string
		d.dfs(n.ID, adj, visited, &componentIDs)

		// Singletons are not zones.
		if len(componentIDs) < 2 {
			continue
		}
		zone := make([]model.SceneNode, 0, len(componentIDs))
		for _, id := range componentIDs {
			zone = append(zone, nodeMap[id])
		}
		zones = append(zones, zone)
	}

	return zones, nil
}

func (d *ComponentDetector) dfs(id string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[id] = true
	*component = append(*component, id)
	for _, next := range adj[id] {
		if !visited[next] {
			d.dfs(next, adj, visited, component)
		}
	}
}
