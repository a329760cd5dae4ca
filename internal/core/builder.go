package core

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/surveyorai/scenegraph/internal/core/extraction"
	"github.com/surveyorai/scenegraph/internal/core/merge"
	"github.com/surveyorai/scenegraph/internal/core/model"
	"github.com/surveyorai/scenegraph/internal/core/semantic"
	"github.com/surveyorai/scenegraph/internal/core/spatial"
)

// Builder constructs scene graphs from detector output and optional
// vision-language evidence. It holds no per-call state: node and edge ids
// are allocated from counters scoped to one Build invocation, so it is
// safe to share one Builder across goroutines.
type Builder struct {
	log    *zap.Logger
	params spatial.Params
}

func NewBuilder(logger *zap.Logger) *Builder {
	return NewBuilderWithParams(logger, spatial.DefaultParams())
}

func NewBuilderWithParams(logger *zap.Logger, params spatial.Params) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		log:    logger.Named("builder"),
		params: params,
	}
}

// Build runs the full pipeline: node extraction, node merge, spatial and
// semantic edge inference, edge merge, validation. It never fails the
// caller: malformed input or an internal panic is logged and degraded to
// an empty graph with metadata still populated. When a successful
// segmentation result is supplied, its instances replace detections as the
// geometry-bearing node source; the two provenance paths are never mixed.
func (b *Builder) Build(detections []model.Detection, summary *model.SemanticSummary, imageCount int, seg *model.SegmentationResult) (graph model.SceneGraph) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("scene graph construction failed",
				zap.Any("panic", r),
				zap.Int("detections", len(detections)))
			graph = model.EmptyGraph(imageCount)
		}
	}()

	if err := checkGeometry(detections, seg); err != nil {
		b.log.Error("rejecting malformed input geometry", zap.Error(err))
		return model.EmptyGraph(imageCount)
	}

	var geometryNodes []model.SceneNode
	if seg != nil && seg.Success {
		geometryNodes = extraction.NodesFromSegmentation(seg)
	} else {
		geometryNodes = extraction.NodesFromDetections(detections)
	}
	textNodes := extraction.NodesFromSummary(summary)

	nodes := merge.Nodes(append(geometryNodes, textNodes...))
	for i := range nodes {
		nodes[i].ID = fmt.Sprintf("node_%d", i+1)
	}

	edges := spatial.InferEdges(nodes, b.params)
	edges = append(edges, semantic.PatternEdges(nodes, summary)...)
	edges = append(edges, semantic.RuleEdges(nodes)...)

	edges = merge.Validate(nodes, merge.Edges(edges))
	for i := range edges {
		edges[i].ID = fmt.Sprintf("edge_%d", i+1)
	}

	b.log.Debug("scene graph built",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
		zap.Int("geometry_nodes", len(geometryNodes)),
		zap.Int("text_nodes", len(textNodes)))

	return model.SceneGraph{
		Nodes: nodes,
		Edges: edges,
		Metadata: model.GraphMetadata{
			ImageCount:     imageCount,
			DetectionCount: len(geometryNodes),
			CreatedAt:      time.Now().UTC(),
		},
	}
}

// checkGeometry rejects non-finite box coordinates up front. Go float math
// would carry NaN through the pairwise rules silently instead of failing,
// so the guard keeps the "empty graph on malformed geometry" contract.
func checkGeometry(detections []model.Detection, seg *model.SegmentationResult) error {
	for _, d := range detections {
		if !finiteBox(d.BoundingBox) {
			return fmt.Errorf("detection %q has a non-finite bounding box", d.ID)
		}
	}
	if seg != nil {
		for class, instances := range seg.Classes {
			for _, box := range instances.Boxes {
				if !finiteBox(box) {
					return fmt.Errorf("segmentation class %q has a non-finite bounding box", class)
				}
			}
		}
	}
	return nil
}

func finiteBox(b model.BoundingBox) bool {
	for _, v := range [4]float64{b.X, b.Y, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
