package semantic

import (
	"regexp"
	"strings"

	"github.com/surveyorai/scenegraph/internal/core/model"
)

// Confidence of edges produced by text-pattern matching.
const patternConfidence = 0.6

// window is how many characters on either side of a relation keyword a
// node label must appear in to be paired with the match.
const window = 50

// relationPatterns is the ordered list of relation keyword regexes applied
// to the analysis text.
var relationPatterns = []struct {
	Pattern  *regexp.Regexp
	Relation model.Relation
}{
	{regexp.MustCompile(`(?i)\b(has|contains|shows)\b`), model.RelationHas},
	{regexp.MustCompile(`(?i)\b(on|over|upon)\b`), model.RelationOnSurface},
	{regexp.MustCompile(`(?i)\b(caused by|due to)\b`), model.RelationCausedBy},
	{regexp.MustCompile(`(?i)\b(indicates|suggests)\b`), model.RelationIndicates},
	{regexp.MustCompile(`(?i)\b(adjacent to|next to)\b`), model.RelationAdjacentTo},
	{regexp.MustCompile(`(?i)\b(above|over|on top of)\b`), model.RelationAbove},
	{regexp.MustCompile(`(?i)\b(below|under|beneath)\b`), model.RelationBelow},
}

// PatternEdges scans the blob of category-suggestion reasons for relation
// keywords and pairs nodes whose labels appear near each match. This is a
// coarse character-window heuristic: common words can produce duplicate or
// spurious edges. Duplicates are absorbed by the edge merge; false
// positives are a known imprecision of the approach.
func PatternEdges(nodes []model.SceneNode, summary *model.SemanticSummary) []model.SceneEdge {
	if summary == nil || len(nodes) == 0 {
		return nil
	}

	var parts []string
	for _, s := range summary.Suggestions {
		if s.Reason != "" {
			parts = append(parts, s.Reason)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	blob := strings.Join(parts, " ")

	labelRes := make([]*regexp.Regexp, len(nodes))
	for i, n := range nodes {
		labelRes[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(n.Label) + `\b`)
	}

	var edges []model.SceneEdge
	for _, rp := range relationPatterns {
		for _, loc := range rp.Pattern.FindAllStringIndex(blob, -1) {
			start := loc[0] - window
			if start < 0 {
				start = 0
			}
			end := loc[1] + window
			if end > len(blob) {
				end = len(blob)
			}
			windowText := blob[start:end]

			for i, node := range nodes {
				if !labelRes[i].MatchString(blob) {
					continue
				}
				for j, other := range nodes {
					if j == i {
						continue
					}
					if !labelRes[j].MatchString(windowText) {
						continue
					}
					edges = append(edges, model.SceneEdge{
						SourceID:   node.ID,
						TargetID:   other.ID,
						Relation:   rp.Relation,
						Confidence: patternConfidence,
						Evidence:   model.EvidenceNLP,
					})
				}
			}
		}
	}
	return edges
}
