package pattern

import (
	"strings"

	"ucp/internal/lexicon"
)

// classifyDomain picks the pattern domain with the most keyword hits,
// "general" when nothing matches.
func (l *Library) classifyDomain(problem string) string {
	if name, ok := lexicon.Classify(problem, l.lex.PatternDomains); ok {
		return name
	}
	return "general"
}

// extractApproach returns the first approach lexicon with any keyword hit,
// "custom" when none match. First-declared order is the tie-break.
func (l *Library) extractApproach(solution string) string {
	lower := strings.ToLower(solution)
	for _, approach := range l.lex.SolutionApproaches {
		if lexicon.MatchCount(lower, approach.Keywords) > 0 {
			return approach.Name
		}
	}
	return "custom"
}

// parseSteps splits implementation text into discrete steps: bullet or
// "1."-numbered lines, or lines carrying a step verb. Falls back to the
// whole text as a single step.
func (l *Library) parseSteps(implementation string) []string {
	var steps []string
	for _, line := range strings.Split(implementation, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") ||
			strings.HasPrefix(line, "1.") || containsAny(line, l.lex.StepVerbs) {
			steps = append(steps, strings.TrimSpace(strings.TrimLeft(line, "- *1234567890.")))
		}
	}
	if len(steps) == 0 {
		if trimmed := strings.TrimSpace(implementation); trimmed != "" {
			steps = []string{trimmed}
		}
	}
	return steps
}

// extractMetrics collects measurable-claim fragments from the solution text.
func (l *Library) extractMetrics(solution string) []string {
	var metrics []string
	for _, re := range l.lex.MetricPatterns {
		metrics = append(metrics, re.FindAllString(solution, -1)...)
	}
	return metrics
}

// extractPrerequisites keeps implementation lines mentioning a
// prerequisite keyword.
func (l *Library) extractPrerequisites(implementation string) []string {
	var prereqs []string
	for _, line := range strings.Split(implementation, "\n") {
		if containsAny(line, l.lex.PrerequisiteKeywords) {
			prereqs = append(prereqs, strings.TrimSpace(line))
		}
	}
	return prereqs
}

// connectionImpact counts connection indicators present in the solution text.
func (l *Library) connectionImpact(solution string) int {
	return lexicon.MatchCount(strings.ToLower(solution), l.lex.ConnectionIndicators)
}

// patternConfidence scores pattern reliability from problem length and
// action-verb density in the solution. Clamped to [0,1].
func (l *Library) patternConfidence(problem, solution string) float64 {
	clarity := float64(len(strings.Fields(problem))) / 100

	specificity := 0
	for _, word := range strings.Fields(solution) {
		for _, verb := range l.lex.ActionVerbs {
			if strings.ToLower(word) == verb {
				specificity++
				break
			}
		}
	}

	return min(1.0, clarity+float64(specificity)*0.1)
}

func containsAny(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
