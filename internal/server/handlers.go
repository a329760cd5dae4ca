package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

type BuildGraphRequest struct {
	GroupID         string                    `json:"group_id"`
	ImageCount      int                       `json:"image_count"`
	Detections      []model.Detection         `json:"detections"`
	SemanticSummary *model.SemanticSummary    `json:"semantic_summary,omitempty"`
	Segmentation    *model.SegmentationResult `json:"segmentation,omitempty"`

	// ImageBase64 lets the service derive the inputs itself: when set and
	// no semantic summary was supplied, the vision analyzer produces one;
	// when Segment is also set, the segmentation sidecar is called and its
	// result substitutes for the detections.
	ImageBase64 string `json:"image_base64,omitempty"`
	Segment     bool   `json:"segment,omitempty"`

	IncludeZones bool `json:"include_zones,omitempty"`
	Persist      bool `json:"persist,omitempty"`
}

type BuildGraphResponse struct {
	Graph     model.SceneGraph    `json:"graph"`
	Zones     [][]model.SceneNode `json:"zones,omitempty"`
	GraphUUID string              `json:"graph_uuid,omitempty"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"persistence": s.Store != nil,
		"analysis":    s.Analyzer != nil,
	})
}

func (s *Server) BuildGraph(c *gin.Context) {
	var req BuildGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	graph, zones, ok := s.buildFromRequest(c, &req)
	if !ok {
		return
	}

	resp := BuildGraphResponse{Graph: graph, Zones: zones}

	if req.Persist {
		if s.Store == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "persistence is not configured"})
			return
		}
		if req.GroupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "group_id is required to persist"})
			return
		}
		graphUUID, err := s.Store.SaveGraph(c.Request.Context(), req.GroupID, graph)
		if err != nil {
			s.log.Error("failed to persist graph", zap.String("group_id", req.GroupID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist graph"})
			return
		}
		resp.GraphUUID = graphUUID
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetGraph(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "persistence is not configured"})
		return
	}

	groupID := c.Param("group_id")
	graph, err := s.Store.LoadGraph(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"graph": graph})
}

func (s *Server) BuildReport(c *gin.Context) {
	if s.Reporter == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reporting is not configured"})
		return
	}

	var req BuildGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	graph, zones, ok := s.buildFromRequest(c, &req)
	if !ok {
		return
	}
	if zones == nil {
		detected, err := s.Zones.Detect(graph)
		if err != nil {
			s.log.Warn("zone detection failed", zap.Error(err))
		} else {
			zones = detected
		}
	}

	rep, err := s.Reporter.Describe(c.Request.Context(), graph, zones)
	if err != nil {
		s.log.Error("failed to generate report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"graph": graph, "report": rep})
}

// buildFromRequest resolves the evidence sources and runs the builder.
// Returns ok=false after writing an error response.
func (s *Server) buildFromRequest(c *gin.Context, req *BuildGraphRequest) (model.SceneGraph, [][]model.SceneNode, bool) {
	seg := req.Segmentation
	if seg == nil && req.Segment {
		if s.Segmenter == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "segmentation is not configured"})
			return model.SceneGraph{}, nil, false
		}
		if req.ImageBase64 == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required for segmentation"})
			return model.SceneGraph{}, nil, false
		}
		result, err := s.Segmenter.SegmentDamageTypes(c.Request.Context(), req.ImageBase64, s.segThreshold)
		if err != nil {
			// Best effort: fall back to the supplied detections.
			s.log.Warn("segmentation failed, using detections", zap.Error(err))
		} else {
			seg = result
		}
	}

	summary := req.SemanticSummary
	if summary == nil && req.ImageBase64 != "" && s.Analyzer != nil {
		analyzed, err := s.Analyzer.Analyze(c.Request.Context(), req.ImageBase64)
		if err != nil {
			// Semantic evidence is optional; build without it.
			s.log.Warn("vision analysis failed, building without semantic evidence", zap.Error(err))
		} else {
			summary = analyzed
		}
	}

	graph := s.Builder.Build(req.Detections, summary, req.ImageCount, seg)

	var zones [][]model.SceneNode
	if req.IncludeZones {
		detected, err := s.Zones.Detect(graph)
		if err != nil {
			s.log.Warn("zone detection failed", zap.Error(err))
		} else {
			zones = detected
		}
	}

	return graph, zones, true
}
