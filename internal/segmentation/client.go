// Package segmentation is the HTTP client for the text-prompted
// segmentation sidecar. The sidecar returns per-class instance boxes and
// scores that can substitute for detector output as the geometry-bearing
// node source.
package segmentation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Named("segmentation"),
	}
}

type segmentRequest struct {
	ImageBase64 string  `json:"image_base64"`
	TextPrompt  string  `json:"text_prompt"`
	Threshold   float64 `json:"threshold"`
}

// Wire shape of the sidecar: boxes are [x, y, w, h] float arrays.
type segmentResponse struct {
	Success      bool        `json:"success"`
	Boxes        [][]float64 `json:"boxes"`
	Scores       []float64   `json:"scores"`
	NumInstances int         `json:"num_instances"`
}

type damageTypesResponse struct {
	Success     bool                       `json:"success"`
	DamageTypes map[string]segmentResponse `json:"damage_types"`
}

// Segment runs one text prompt against the image and maps the instances
// under that prompt's class.
func (c *Client) Segment(ctx context.Context, imageBase64, prompt string, threshold float64) (*model.SegmentationResult, error) {
	var resp segmentResponse
	if err := c.post(ctx, "/segment", segmentRequest{
		ImageBase64: imageBase64,
		TextPrompt:  prompt,
		Threshold:   threshold,
	}, &resp); err != nil {
		return nil, err
	}

	result := &model.SegmentationResult{
		Success: resp.Success,
		Classes: map[string]model.SegmentationClass{},
	}
	if resp.Success {
		result.Classes[prompt] = toClass(resp)
	}
	return result, nil
}

// SegmentDamageTypes runs the sidecar's multi-damage-type endpoint and
// maps each damage type to its own class.
func (c *Client) SegmentDamageTypes(ctx context.Context, imageBase64 string, threshold float64) (*model.SegmentationResult, error) {
	var resp damageTypesResponse
	if err := c.post(ctx, "/segment/damage-types", segmentRequest{
		ImageBase64: imageBase64,
		Threshold:   threshold,
	}, &resp); err != nil {
		return nil, err
	}

	result := &model.SegmentationResult{
		Success: resp.Success,
		Classes: map[string]model.SegmentationClass{},
	}
	for damageType, instances := range resp.DamageTypes {
		if !instances.Success {
			continue
		}
		result.Classes[damageType] = toClass(instances)
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("segmentation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("segmentation service returned %d: %s", resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode segmentation response: %w", err)
	}
	return nil
}

func toClass(resp segmentResponse) model.SegmentationClass {
	class := model.SegmentationClass{
		Scores:       resp.Scores,
		NumInstances: resp.NumInstances,
	}
	for _, b := range resp.Boxes {
		if len(b) != 4 {
			continue
		}
		class.Boxes = append(class.Boxes, model.BoundingBox{
			X:      b[0],
			Y:      b[1],
			Width:  b[2],
			Height: b[3],
		})
	}
	return class
}
