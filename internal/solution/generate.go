// Package solution generates implementation plans for detected problems by
// recombining stored patterns, falling back to canned per-domain templates
// when nothing in the library is similar enough. Plans, resources, metrics,
// and risks are all derived by substring checks over assembled text — the
// output is template prose, not validated advice.
package solution

import (
	"fmt"
	"strings"

	"ucp/internal/detect"
	"ucp/internal/pattern"
)

// SimilarityThreshold is the minimum pattern similarity for recombination.
const SimilarityThreshold = 0.3

// GeneratedSolution is the full plan emitted for one detected problem.
// ProblemID is a back-reference only; the solution does not own the problem.
type GeneratedSolution struct {
	ID                    string   `json:"id"`
	ProblemID             string   `json:"problem_id"`
	Approach              string   `json:"approach"`
	ImplementationPlan    []string `json:"implementation_plan"`
	ResourceRequirements  []string `json:"resource_requirements"`
	SuccessMetrics        []string `json:"success_metrics"`
	RiskFactors           []string `json:"risk_factors"`
	ConnectionEnhancement int      `json:"connection_enhancement"`
	ConfidenceScore       float64  `json:"confidence_score"`
	PatternSources        []string `json:"pattern_sources"`
	ExecutionTimeEstimate string   `json:"execution_time_estimate"`
}

// Generator recombines library patterns into solutions.
type Generator struct {
	library   *pattern.Library
	templates *planTemplates
	generated map[string]GeneratedSolution
}

// NewGenerator returns a Generator over the given library.
func NewGenerator(lib *pattern.Library) *Generator {
	return &Generator{
		library:   lib,
		templates: loadTemplates(),
		generated: map[string]GeneratedSolution{},
	}
}

// Generate builds a solution for the problem: pattern recombination when
// similar patterns exist, the novel-synthesis template otherwise.
func (g *Generator) Generate(problem detect.DetectedProblem) (GeneratedSolution, error) {
	sig := Signature(problem)
	applicable := g.library.FindSimilar(sig, SimilarityThreshold)

	if len(applicable) == 0 {
		sol := g.novelSolution(problem)
		g.generated[sol.ID] = sol
		return sol, nil
	}

	recombined, err := g.library.Recombine(applicable, problem.Description)
	if err != nil {
		return GeneratedSolution{}, fmt.Errorf("recombine patterns: %w", err)
	}

	enhancedSteps, connectionSteps := g.applyConnectionAxiom(recombined.ImplementationSteps, problem)
	plan := g.assemblePlan(enhancedSteps, problem)

	sources := make([]string, 0, len(applicable))
	for _, p := range applicable {
		sources = append(sources, p.ID)
	}

	sol := GeneratedSolution{
		ID:                    solutionID("sol", problem.ID, strings.Join(plan, "|")),
		ProblemID:             problem.ID,
		Approach:              approachOf(applicable),
		ImplementationPlan:    plan,
		ResourceRequirements:  g.estimateResources(plan),
		SuccessMetrics:        g.successMetrics(problem, recombined.ConnectionsEnhanced+connectionSteps),
		RiskFactors:           g.identifyRisks(plan, problem),
		ConnectionEnhancement: recombined.ConnectionsEnhanced + connectionSteps,
		ConfidenceScore:       recombined.ConfidenceScore,
		PatternSources:        sources,
		ExecutionTimeEstimate: executionEstimate(len(plan)),
	}
	g.generated[sol.ID] = sol
	return sol, nil
}

// Generated returns the solution stored under id.
func (g *Generator) Generated(id string) (GeneratedSolution, bool) {
	s, ok := g.generated[id]
	return s, ok
}

// Signature converts a detected problem into a similarity-query key.
// Complexity tiers split at 0.3 and 0.7.
func Signature(p detect.DetectedProblem) pattern.ProblemSignature {
	complexity := "low"
	switch {
	case p.ComplexityScore > 0.7:
		complexity = "high"
	case p.ComplexityScore > 0.3:
		complexity = "medium"
	}
	return pattern.ProblemSignature{
		Domain:       p.Domain,
		Complexity:   complexity,
		Constraints:  p.Constraints,
		Stakeholders: p.Stakeholders,
	}
}

// novelSolution is the no-pattern-matched path: a fixed per-domain plan at
// medium confidence.
func (g *Generator) novelSolution(problem detect.DetectedProblem) GeneratedSolution {
	plan := g.templates.novelPlan(problem.Domain)

	enhancement := problem.ConnectionImpact
	if enhancement < 1 {
		enhancement = 1
	}

	return GeneratedSolution{
		ID:                 solutionID("novel", problem.ID, problem.Description),
		ProblemID:          problem.ID,
		Approach:           "novel_synthesis",
		ImplementationPlan: plan,
		ResourceRequirements: []string{
			"development_time", "testing_resources",
		},
		SuccessMetrics: []string{
			fmt.Sprintf("Problem %s resolved", problem.ID),
			"No regression in existing functionality",
		},
		RiskFactors: []string{
			"Untested approach", "Potential integration issues",
		},
		ConnectionEnhancement: enhancement,
		ConfidenceScore:       0.6,
		PatternSources:        []string{},
		ExecutionTimeEstimate: "2-4 weeks",
	}
}

// approachOf reduces the matched patterns' approaches to one label: the
// shared approach when they all agree, hybrid_recombination otherwise.
func approachOf(patterns []pattern.SolutionPattern) string {
	if len(patterns) == 0 {
		return "novel_synthesis"
	}
	first := patterns[0].SolutionApproach
	for _, p := range patterns[1:] {
		if p.SolutionApproach != first {
			return "hybrid_recombination"
		}
	}
	return first
}

// executionEstimate buckets plan length into a free-text duration.
func executionEstimate(planLength int) string {
	switch {
	case planLength <= 5:
		return "1-2 weeks"
	case planLength <= 8:
		return "2-4 weeks"
	case planLength <= 12:
		return "1-2 months"
	default:
		return "2-3 months"
	}
}

func solutionID(prefix, problemID, payload string) string {
	return fmt.Sprintf("%s_%s_%03d", prefix, problemID, pattern.Fingerprint(payload)%1000)
}
