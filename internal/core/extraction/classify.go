package extraction

import (
	"regexp"
	"strings"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// typeKeywords maps detector class labels and free text onto node types.
// Order matters: structural terms are checked before damage terms, and the
// first match wins.
var typeKeywords = []struct {
	Keywords []string
	Type     model.NodeType
}{
	{[]string{"wall"}, model.TypeWall},
	{[]string{"foundation"}, model.TypeFoundation},
	{[]string{"roof"}, model.TypeRoof},
	{[]string{"floor"}, model.TypeFloor},
	{[]string{"ceiling"}, model.TypeCeiling},
	{[]string{"window"}, model.TypeWindow},
	{[]string{"door"}, model.TypeDoor},
	{[]string{"beam"}, model.TypeBeam},

	{[]string{"crack"}, model.TypeCrack},
	{[]string{"stain"}, model.TypeStain},
	{[]string{"moisture", "water"}, model.TypeMoisture},
	{[]string{"mold"}, model.TypeMold},
	{[]string{"electrical", "wire"}, model.TypeElectrical},
	{[]string{"plumbing", "pipe"}, model.TypePlumbing},
	{[]string{"pest", "termite"}, model.TypePestDamage},
	{[]string{"fire", "smoke"}, model.TypeFireDamage},
	{[]string{"insulation"}, model.TypeInsulation},
}

// wordPatterns holds a word-boundary regex per keyword, used for free-text
// classification where substring matching produces too many false positives
// on short strings.
var wordPatterns = buildWordPatterns()

func buildWordPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, entry := range typeKeywords {
		for _, kw := range entry.Keywords {
			patterns[kw] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}
	return patterns
}

// ClassifyLabel maps a detector class label to a node type via
// case-insensitive substring matching. No match yields TypeUnknown.
func ClassifyLabel(label string) model.NodeType {
	lower := strings.ToLower(label)
	for _, entry := range typeKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Type
			}
		}
	}
	return model.TypeUnknown
}

// ClassifyText maps free text to a node type via word-boundary matching.
// Unlike ClassifyLabel there is no unknown bucket: text with no
// recognizable entity reports ok=false and is dropped by the caller.
func ClassifyText(text string) (model.NodeType, bool) {
	for _, entry := range typeKeywords {
		for _, kw := range entry.Keywords {
			if wordPatterns[kw].MatchString(text) {
				return entry.Type, true
			}
		}
	}
	return model.TypeUnknown, false
}
