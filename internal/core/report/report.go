// Package report produces a natural-language condition report from a
// built scene graph: an overall summary plus damage findings ranked by
// severity.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/surveyorai/scenegraph/internal/core/common"
	"github.com/surveyorai/scenegraph/internal/core/model"
	"github.com/surveyorai/scenegraph/internal/llm"
)

const defaultReportPrompt = `You are a building surveyor writing a condition report.

Scene graph of the inspected property:
%s

Zones (clusters of related findings):
%s

Write a concise condition summary for the homeowner.
Return a JSON object: {"summary": "<the summary text>"}`

type Finding struct {
	NodeID      string  `json:"node_id"`
	Description string  `json:"description"`
	Severity    int     `json:"severity"`
	Confidence  float64 `json:"confidence"`
}

type Report struct {
	Summary  string    `json:"summary"`
	Findings []Finding `json:"findings"`
}

type conditionSummary struct {
	Summary string `json:"summary"`
}

type Reporter struct {
	LLM    llm.Client
	Ranker *llm.SeverityRanker
	Prompt string
}

func NewReporter(client llm.Client, prompt string) *Reporter {
	if prompt == "" {
		prompt = defaultReportPrompt
	}
	return &Reporter{
		LLM:    client,
		Ranker: llm.NewSeverityRanker(client),
		Prompt: prompt,
	}
}

// Describe generates the report. The summary comes from the text model;
// findings are the graph's damage nodes ordered by the severity ranker.
func (r *Reporter) Describe(ctx context.Context, graph model.SceneGraph, zones [][]model.SceneNode) (*Report, error) {
	prompt := fmt.Sprintf(r.Prompt, serializeGraph(graph), serializeZones(zones))

	response, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate condition summary: %w", err)
	}

	parsed, err := common.ParseJSON[conditionSummary](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse condition summary: %w", err)
	}

	findings, err := r.rankFindings(ctx, graph)
	if err != nil {
		return nil, err
	}

	return &Report{
		Summary:  parsed.Summary,
		Findings: findings,
	}, nil
}

func (r *Reporter) rankFindings(ctx context.Context, graph model.SceneGraph) ([]Finding, error) {
	var damage []model.SceneNode
	for _, n := range graph.Nodes {
		if model.DamageTypes[n.Type] {
			damage = append(damage, n)
		}
	}
	if len(damage) == 0 {
		return nil, nil
	}

	descriptions := make([]string, len(damage))
	for i, n := range damage {
		descriptions[i] = describeNode(n, graph)
	}

	order, err := r.Ranker.Rank(ctx, "most severe structural damage requiring repair", descriptions)
	if err != nil {
		return nil, fmt.Errorf("failed to rank findings: %w", err)
	}

	seen := make(map[int]bool)
	var findings []Finding
	for _, idx := range order {
		if idx >= len(damage) || seen[idx] {
			continue
		}
		seen[idx] = true
		findings = append(findings, Finding{
			NodeID:      damage[idx].ID,
			Description: descriptions[idx],
			Severity:    len(findings) + 1,
			Confidence:  damage[idx].Confidence,
		})
	}
	// Ranker output may be partial; keep unranked findings at the tail.
	for i := range damage {
		if !seen[i] {
			findings = append(findings, Finding{
				NodeID:      damage[i].ID,
				Description: descriptions[i],
				Severity:    len(findings) + 1,
				Confidence:  damage[i].Confidence,
			})
		}
	}

	return findings, nil
}

func describeNode(n model.SceneNode, graph model.SceneGraph) string {
	labels := make(map[string]string, len(graph.Nodes))
	for _, node := range graph.Nodes {
		labels[node.ID] = node.Label
	}

	var relations []string
	for _, e := range graph.Edges {
		if e.SourceID == n.ID {
			relations = append(relations, fmt.Sprintf("%s %s", e.Relation, labels[e.TargetID]))
		}
	}

	desc := fmt.Sprintf("%s (confidence %.2f)", n.Label, n.Confidence)
	if len(relations) > 0 {
		desc += ": " + strings.Join(relations, ", ")
	}
	return desc
}

func serializeGraph(graph model.SceneGraph) string {
	var b strings.Builder
	for _, n := range graph.Nodes {
		fmt.Fprintf(&b, "- node %s: %s [%s] confidence %.2f\n", n.ID, n.Label, n.Type, n.Confidence)
	}
	for _, e := range graph.Edges {
		fmt.Fprintf(&b, "- edge: %s %s %s (%.2f, %s)\n", e.SourceID, e.Relation, e.TargetID, e.Confidence, e.Evidence)
	}
	return b.String()
}

func serializeZones(zones [][]model.SceneNode) string {
	if len(zones) == 0 {
		return "none"
	}
	var b strings.Builder
	for i, zone := range zones {
		labels := make([]string, len(zone))
		for j, n := range zone {
			labels[j] = n.Label
		}
		fmt.Fprintf(&b, "- zone %d: %s\n", i+1, strings.Join(labels, ", "))
	}
	return b.String()
}
