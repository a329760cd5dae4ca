package server

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/surveyorai/scenegraph/internal/config"
	"github.com/surveyorai/scenegraph/internal/core"
	"github.com/surveyorai/scenegraph/internal/core/report"
	"github.com/surveyorai/scenegraph/internal/core/spatial"
	"github.com/surveyorai/scenegraph/internal/core/zone"
	"github.com/surveyorai/scenegraph/internal/driver"
	"github.com/surveyorai/scenegraph/internal/llm"
	"github.com/surveyorai/scenegraph/internal/segmentation"
)

// Server wires the builder to its optional collaborators. Persistence,
// vision analysis, segmentation and reporting are all degraded gracefully
// when unconfigured; graph construction itself always works.
type Server struct {
	Builder   *core.Builder
	Store     *core.GraphStore
	Analyzer  *llm.Analyzer
	Reporter  *report.Reporter
	Segmenter *segmentation.Client
	Zones     zone.Detector

	segThreshold float64
	log          *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	applyEnvOverrides(cfg)

	s := &Server{
		Builder: core.NewBuilderWithParams(logger, spatial.Params{
			OverlapIoU:      cfg.Builder.OverlapIoU,
			ProximityFactor: cfg.Builder.ProximityFactor,
			NearFactor:      cfg.Builder.NearFactor,
			AdjacencyGap:    cfg.Builder.AdjacencyGap,
		}),
		Zones:        zone.NewDetector(),
		segThreshold: cfg.Segmentation.Threshold,
		log:          logger.Named("server"),
	}

	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(context.Background()); err != nil {
			s.log.Warn("failed to build indices", zap.Error(err))
		}
		s.Store = core.NewGraphStore(d, logger)
	} else {
		s.log.Info("no Memgraph configured, persistence disabled")
	}

	if cfg.LLM.Provider != "" {
		textClient, visionClient, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			return nil, err
		}
		s.Analyzer = llm.NewAnalyzer(visionClient, cfg.LLM.Provider, cfg.Prompts.Analysis)
		s.Reporter = report.NewReporter(textClient, cfg.Prompts.Report)
	} else {
		s.log.Info("no LLM configured, analysis and reporting disabled")
	}

	if cfg.Segmentation.BaseURL != "" {
		timeout := time.Duration(cfg.Segmentation.TimeoutSeconds) * time.Second
		s.Segmenter = segmentation.NewClient(cfg.Segmentation.BaseURL, timeout, logger)
	}

	return s, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Memgraph.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("SEGMENTATION_URL"); v != "" {
		cfg.Segmentation.BaseURL = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/graphs", s.BuildGraph)
	r.GET("/graphs/:group_id", s.GetGraph)
	r.POST("/graphs/report", s.BuildReport)

	return r
}
