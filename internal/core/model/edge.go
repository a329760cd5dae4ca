package model

// Relation is the closed set of relationship labels between scene nodes.
type Relation string

const (
	RelationHas        Relation = "has"
	RelationOnSurface  Relation = "on_surface"
	RelationAdjacentTo Relation = "adjacent_to"
	RelationContains   Relation = "contains"
	RelationNear       Relation = "near"
	RelationAbove      Relation = "above"
	RelationBelow      Relation = "below"
	RelationLeftOf     Relation = "left_of"
	RelationRightOf    Relation = "right_of"
	RelationIndicates  Relation = "indicates"
	RelationCausedBy   Relation = "caused_by"
)

// Evidence marks which inference produced an edge. EvidenceBoth only
// arises when a spatial and an nlp edge merge on the same key.
type Evidence string

const (
	EvidenceSpatial Evidence = "spatial"
	EvidenceNLP     Evidence = "nlp"
	EvidenceBoth    Evidence = "both"
)

// SceneEdge is a directed, labeled relationship between two scene nodes.
type SceneEdge struct {
	ID         string   `json:"id"`
	SourceID   string   `json:"source_id"`
	TargetID   string   `json:"target_id"`
	Relation   Relation `json:"relation"`
	Confidence float64  `json:"confidence"`
	Evidence   Evidence `json:"evidence"`
}
