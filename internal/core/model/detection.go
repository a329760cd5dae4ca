package model

// BoundingBox is an axis-aligned box in image pixel space.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Detection is a single observation from the external visual detector.
// Confidence is on the detector's 0-100 scale.
type Detection struct {
	ID          string      `json:"id"`
	ClassName   string      `json:"class_name"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
	ImageRef    string      `json:"image_ref,omitempty"`
}

// SemanticLabel is a (description, score) pair produced by the
// vision-language analysis. Score is on the 0-1 scale.
type SemanticLabel struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// CategorySuggestion carries a suggested assessment category and the
// free-text reason the analysis gave for it.
type CategorySuggestion struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// SemanticSummary is the output of the external vision-language analysis
// for one image set. All fields are optional evidence; a nil summary is a
// valid "no semantic evidence" input.
type SemanticSummary struct {
	Provider         string               `json:"provider"`
	Confidence       float64              `json:"confidence"`
	Labels           []SemanticLabel      `json:"labels,omitempty"`
	DetectedFeatures []string             `json:"detected_features,omitempty"`
	Suggestions      []CategorySuggestion `json:"suggestions,omitempty"`
}

// SegmentationClass holds the per-class instances returned by the
// segmentation sidecar. Scores are on the 0-1 scale.
type SegmentationClass struct {
	Boxes        []BoundingBox `json:"boxes"`
	Scores       []float64     `json:"scores"`
	NumInstances int           `json:"num_instances"`
}

// SegmentationResult is the mapped response of the segmentation sidecar.
// When Success is set, its instances replace detections as the
// geometry-bearing node source.
type SegmentationResult struct {
	Success bool                         `json:"success"`
	Classes map[string]SegmentationClass `json:"classes"`
}
