package model

// NodeType is the closed set of entity types a scene node can carry.
type NodeType string

const (
	TypeWall       NodeType = "wall"
	TypeFoundation NodeType = "foundation"
	TypeRoof       NodeType = "roof"
	TypeFloor      NodeType = "floor"
	TypeCeiling    NodeType = "ceiling"
	TypeWindow     NodeType = "window"
	TypeDoor       NodeType = "door"
	TypeBeam       NodeType = "beam"

	TypeCrack      NodeType = "crack"
	TypeStain      NodeType = "stain"
	TypeMoisture   NodeType = "moisture"
	TypeMold       NodeType = "mold"
	TypeElectrical NodeType = "electrical"
	TypePlumbing   NodeType = "plumbing"
	TypePestDamage NodeType = "pest_damage"
	TypeFireDamage NodeType = "fire_damage"
	TypeInsulation NodeType = "insulation"

	TypeUnknown NodeType = "unknown"
)

// StructuralTypes is the structural side of the fixed damage/structure
// relationship rules.
var StructuralTypes = map[NodeType]bool{
	TypeWall:       true,
	TypeFoundation: true,
	TypeRoof:       true,
	TypeFloor:      true,
	TypeCeiling:    true,
}

// DamageTypes is the damage side of the fixed damage/structure
// relationship rules.
var DamageTypes = map[NodeType]bool{
	TypeCrack:      true,
	TypeStain:      true,
	TypeMoisture:   true,
	TypeMold:       true,
	TypePestDamage: true,
	TypeFireDamage: true,
}

// Node provenance values recorded in the attributes map.
const (
	SourceDetector     = "detector"
	SourceSegmentation = "segmentation"
	SourceSemantic     = "semantic_analysis"
)

// SceneNode is a graph vertex representing one physical entity or damage
// phenomenon. IDs are assigned during construction and are not stable
// across calls. Nodes derived from detections always carry a bounding box;
// nodes derived from text never do.
type SceneNode struct {
	ID          string                 `json:"id"`
	Type        NodeType               `json:"type"`
	Label       string                 `json:"label"`
	Confidence  float64                `json:"confidence"`
	BoundingBox *BoundingBox           `json:"bounding_box,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}
