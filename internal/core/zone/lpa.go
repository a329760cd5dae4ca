package zone

import (
	"sort"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// LabelPropagationDetector clusters scene nodes with the label propagation
// algorithm. Parallel edges between a node pair (a spatial and a semantic
// relation, say) count as a stronger connection, which keeps a damage
// cluster from being pulled toward a structure it only brushes against.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(graph model.SceneGraph) ([][]model.SceneNode, error) {
	if len(graph.Nodes) == 0 {
		return nil, nil
	}

	// Undirected weighted adjacency; weight = number of edges between the pair.
	adj := make(map[string]map[string]int)
	nodeMap := make(map[string]model.SceneNode)

	for _, n := range graph.Nodes {
		nodeMap[n.ID] = n
		adj[n.ID] = make(map[string]int)
	}
	for _, e := range graph.Edges {
		if _, ok := nodeMap[e.SourceID]; !ok {
			continue
		}
		if _, ok := nodeMap[e.TargetID]; !ok {
			continue
		}
		adj[e.SourceID][e.TargetID]++
		adj[e.TargetID][e.SourceID]++
	}

	// Every node starts in its own zone, labeled by its id.
	labels := make(map[string]string)
	order := make([]string, len(graph.Nodes))
	for i, n := range graph.Nodes {
		labels[n.ID] = n.ID
		order[i] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0

		for _, u := range order {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Deterministic tie-break: lexicographically largest label.
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}

		if changed == 0 {
			break
		}
	}

	clusters := make(map[string][]model.SceneNode)
	for _, id := range order {
		clusters[labels[id]] = append(clusters[labels[id]], nodeMap[id])
	}

	var zones [][]model.SceneNode
	for _, cluster := range clusters {
		if len(cluster) >= 2 {
			zones = append(zones, cluster)
		}
	}
	return zones, nil
}
