// Smoke binary: builds a scene graph from canned detections, prints it,
// and round-trips it through Memgraph when MEMGRAPH_URI is set.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/surveyorai/scenegraph/internal/core"
	"github.com/surveyorai/scenegraph/internal/core/model"
	"github.com/surveyorai/scenegraph/internal/driver"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	detections := []model.Detection{
		{ID: "1", ClassName: "wall", Confidence: 90, BoundingBox: model.BoundingBox{X: 0, Y: 0, Width: 200, Height: 300}},
		{ID: "2", ClassName: "crack", Confidence: 80, BoundingBox: model.BoundingBox{X: 50, Y: 50, Width: 20, Height: 20}},
		{ID: "3", ClassName: "water stain", Confidence: 72, BoundingBox: model.BoundingBox{X: 240, Y: 60, Width: 40, Height: 30}},
	}
	summary := &model.SemanticSummary{
		Provider:         "smoke",
		Confidence:       0.9,
		DetectedFeatures: []string{"visible mold growth"},
		Suggestions: []model.CategorySuggestion{
			{Category: "moisture", Reason: "stain on wall indicates water intrusion"},
		},
	}

	builder := core.NewBuilder(logger)
	graph := builder.Build(detections, summary, 1, nil)

	out, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		logger.Info("MEMGRAPH_URI not set, skipping persistence round-trip")
		return
	}

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), logger)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer d.Close(ctx)

	if err := d.BuildIndices(ctx); err != nil {
		logger.Warn("failed to build indices", zap.Error(err))
	}

	store := core.NewGraphStore(d, logger)
	graphUUID, err := store.SaveGraph(ctx, "smoke-test", graph)
	if err != nil {
		logger.Fatal("failed to save graph", zap.Error(err))
	}
	logger.Info("graph saved", zap.String("uuid", graphUUID))

	loaded, err := store.LoadGraph(ctx, "smoke-test")
	if err != nil {
		logger.Fatal("failed to load graph", zap.Error(err))
	}
	logger.Info("graph loaded",
		zap.Int("nodes", len(loaded.Nodes)),
		zap.Int("edges", len(loaded.Edges)))
}
