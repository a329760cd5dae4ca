package extraction

import (
	"sort"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// NodesFromDetections turns every detection into one geometry-bearing node.
// Nothing is filtered here: unknown classes stay in the graph as type
// "unknown", and deduplication happens later at merge time. Detector
// confidence is rescaled from 0-100 to 0-1.
func NodesFromDetections(detections []model.Detection) []model.SceneNode {
	nodes := make([]model.SceneNode, 0, len(detections))
	for _, det := range detections {
		box := det.BoundingBox
		attrs := map[string]interface{}{
			"source": model.SourceDetector,
		}
		if det.ImageRef != "" {
			attrs["image_ref"] = det.ImageRef
		}
		nodes = append(nodes, model.SceneNode{
			Type:        ClassifyLabel(det.ClassName),
			Label:       det.ClassName,
			Confidence:  det.Confidence / 100.0,
			BoundingBox: &box,
			Attributes:  attrs,
		})
	}
	return nodes
}

// NodesFromSegmentation turns the per-class instances of a successful
// segmentation result into geometry-bearing nodes. Scores arrive on the
// 0-1 scale already. Classes are walked in sorted order so output order is
// reproducible.
func NodesFromSegmentation(seg *model.SegmentationResult) []model.SceneNode {
	if seg == nil || !seg.Success {
		return nil
	}

	classes := make([]string, 0, len(seg.Classes))
	for class := range seg.Classes {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var nodes []model.SceneNode
	for _, class := range classes {
		instances := seg.Classes[class]
		for i, b := range instances.Boxes {
			score := 0.0
			if i < len(instances.Scores) {
				score = instances.Scores[i]
			}
			box := b
			nodes = append(nodes, model.SceneNode{
				Type:        ClassifyLabel(class),
				Label:       class,
				Confidence:  score,
				BoundingBox: &box,
				Attributes: map[string]interface{}{
					"source": model.SourceSegmentation,
				},
			})
		}
	}
	return nodes
}
