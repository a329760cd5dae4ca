package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// SeverityRanker orders damage findings by severity using the text model.
// Ranking is best-effort: on any model failure the original order is
// returned so a report is never blocked on the ranker.
type SeverityRanker struct {
	LLM Client
}

func NewSeverityRanker(client Client) *SeverityRanker {
	return &SeverityRanker{LLM: client}
}

func (r *SeverityRanker) Rank(ctx context.Context, criterion string, findings []string) ([]int, error) {
	if len(findings) == 0 {
		return nil, nil
	}
	if len(findings) == 1 {
		return []int{0}, nil
	}

	list := ""
	for i, f := range findings {
		content := f
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		list += fmt.Sprintf("[%d] %s\n", i, content)
	}

	prompt := fmt.Sprintf(`You are a building condition assessment system.
Criterion: %s

Findings:
%s

Rank the findings above from most to least severe according to the criterion.
Output ONLY the indices of the findings in order, separated by commas.
Example: 0, 2, 1
Do not output any other text.`, criterion, list)

	resp, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		indices := make([]int, len(findings))
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	return parseIndices(resp, len(findings)), nil
}

var indexPattern = regexp.MustCompile(`\d+`)

func parseIndices(s string, limit int) []int {
	var indices []int
	for _, m := range indexPattern.FindAllString(s, -1) {
		if i, err := strconv.Atoi(m); err == nil && i < limit {
			indices = append(indices, i)
		}
	}
	return indices
}
