// Package detect scans free text for problem indicators and emits scored
// DetectedProblem records. Detection is sentence-by-sentence keyword
// counting against the lexicon tables; a sentence with zero indicator hits
// produces nothing.
package detect

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ucp/internal/compress"
	"ucp/internal/lexicon"
	"ucp/internal/pattern"
)

// DetectedProblem is one problem surfaced from input text. Created per
// sentence, never updated; it lives only as long as the caller's analysis.
type DetectedProblem struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Domain             string   `json:"domain"`
	UrgencyScore       float64  `json:"urgency_score"`
	ComplexityScore    float64  `json:"complexity_score"`
	ConnectionImpact   int      `json:"connection_impact"`
	Evidence           []string `json:"evidence"`
	PotentialSolutions []string `json:"potential_solutions"`
	Stakeholders       []string `json:"stakeholders"`
	Constraints        []string `json:"constraints"`
	PriorityScore      float64  `json:"priority_score,omitempty"`
}

// indicatorHit pairs an indicator category with the keyword that fired.
type indicatorHit struct {
	category string
	keyword  string
}

// Detector accumulates detected problems across Analyze calls so that
// Prioritize can rank everything seen in a session.
type Detector struct {
	lex      *lexicon.Table
	library  *pattern.Library
	detected map[string]DetectedProblem
}

// NewDetector returns a Detector backed by the given pattern library.
func NewDetector(lib *pattern.Library) *Detector {
	return &Detector{
		lex:      lexicon.Default(),
		library:  lib,
		detected: map[string]DetectedProblem{},
	}
}

// Analyze splits text into sentences and extracts problems from each,
// deduplicating on the first 50 characters of the generated description.
func (d *Detector) Analyze(text, source string) []DetectedProblem {
	var found []DetectedProblem
	for _, sentence := range compress.SplitSentences(text) {
		if p, ok := d.extractFromSentence(sentence); ok {
			found = append(found, p)
		}
	}

	unique := dedupe(found)
	for _, p := range unique {
		d.detected[p.ID] = p
	}
	return unique
}

func (d *Detector) extractFromSentence(sentence string) (DetectedProblem, bool) {
	lower := strings.ToLower(sentence)

	var hits []indicatorHit
	for _, cat := range d.lex.ProblemIndicators {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, indicatorHit{category: cat.Name, keyword: kw})
			}
		}
	}
	if len(hits) == 0 {
		return DetectedProblem{}, false
	}

	domain := "general"
	if name, ok := lexicon.Classify(sentence, d.lex.ProblemDomains); ok {
		domain = name
	}

	description := describe(hits[0].category, sentence)

	p := DetectedProblem{
		ID:                 problemID(domain, description),
		Description:        description,
		Domain:             domain,
		UrgencyScore:       d.urgency(lower, len(hits)),
		ComplexityScore:    d.complexity(sentence, lower),
		ConnectionImpact:   d.connectionImpact(sentence, lower),
		Evidence:           []string{sentence},
		PotentialSolutions: d.suggestSolutions(domain, hits),
		Stakeholders:       d.stakeholders(lower),
		Constraints:        d.constraints(sentence),
	}
	return p, true
}

// describe renders the per-indicator description template. The primary
// indicator is the first hit in category declaration order.
func describe(category, sentence string) string {
	templates := map[string]string{
		"inefficiency":   "Process inefficiency detected: %s",
		"inconsistency":  "Consistency problem identified: %s",
		"complexity":     "Complexity barrier found: %s",
		"fragility":      "Reliability issue detected: %s",
		"isolation":      "Connection gap identified: %s",
		"scaling_limits": "Scaling limitation found: %s",
	}
	if tmpl, ok := templates[category]; ok {
		return fmt.Sprintf(tmpl, sentence)
	}
	return fmt.Sprintf("Problem detected: %s", sentence)
}

func problemID(domain, description string) string {
	return fmt.Sprintf("%s_%04d", domain, pattern.Fingerprint(description)%10000)
}

// urgency is 0.2 per indicator hit plus 0.3 per urgency keyword, capped at 1.
func (d *Detector) urgency(lower string, indicatorCount int) float64 {
	bonus := 0.3 * float64(lexicon.MatchCount(lower, d.lex.UrgencyKeywords))
	return min(1.0, float64(indicatorCount)*0.2+bonus)
}

// complexity is 0.2 per complexity keyword plus a length factor capped at
// 0.3 (fifty words saturate it), all capped at 1.
func (d *Detector) complexity(sentence, lower string) float64 {
	score := 0.2 * float64(lexicon.MatchCount(lower, d.lex.ComplexityKeywords))
	lengthFactor := min(0.3, float64(len(strings.Fields(sentence)))/50)
	return min(1.0, score+lengthFactor)
}

var numberPattern = regexp.MustCompile(`\d+`)

// connectionImpact counts connection keywords and adds the largest
// in-sentence quantifier below 1000.
func (d *Detector) connectionImpact(sentence, lower string) int {
	impact := lexicon.MatchCount(lower, d.lex.ConnectionKeywords)

	largest := 0
	for _, raw := range numberPattern.FindAllString(sentence, -1) {
		if n, err := strconv.Atoi(raw); err == nil && n < 1000 && n > largest {
			largest = n
		}
	}
	return impact + largest
}

func (d *Detector) constraints(sentence string) []string {
	var out []string
	for _, re := range d.lex.ConstraintPatterns {
		for _, m := range re.FindAllStringSubmatch(sentence, -1) {
			if len(m) > 1 {
				out = append(out, m[1])
			}
		}
	}
	return out
}

func (d *Detector) stakeholders(lower string) []string {
	var out []string
	for _, kw := range d.lex.StakeholderKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// suggestSolutions pulls up to three similar-pattern suggestions from the
// library, then appends the generic per-indicator remedies.
func (d *Detector) suggestSolutions(domain string, hits []indicatorHit) []string {
	var solutions []string

	sig := pattern.ProblemSignature{Domain: domain, Complexity: "medium"}
	similar := d.library.FindSimilar(sig, 0.3)
	if len(similar) > 3 {
		similar = similar[:3]
	}
	for _, p := range similar {
		step := "Apply pattern"
		if len(p.ImplementationSteps) > 0 {
			step = p.ImplementationSteps[0]
		}
		solutions = append(solutions, fmt.Sprintf("%s: %s", p.SolutionApproach, step))
	}

	generic := map[string]string{
		"inefficiency":   "Implement automation to reduce manual overhead",
		"inconsistency":  "Create standardized protocols and validation",
		"complexity":     "Break down into modular components",
		"fragility":      "Add error handling and redundancy",
		"isolation":      "Establish communication channels and integration",
		"scaling_limits": "Implement distributed architecture",
	}
	for _, hit := range hits {
		if s, ok := generic[hit.category]; ok {
			solutions = append(solutions, s)
		}
	}

	return dedupeStrings(solutions)
}

// dedupe keys on the first 50 characters of the description, lowercased.
// Not semantic: two rewordings of the same problem both survive.
func dedupe(problems []DetectedProblem) []DetectedProblem {
	seen := map[string]bool{}
	var out []DetectedProblem
	for _, p := range problems {
		key := strings.ToLower(p.Description)
		if len(key) > 50 {
			key = key[:50]
		}
		if !seen[key] {
			out = append(out, p)
			seen[key] = true
		}
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}

// Detected returns the problem accumulated under id.
func (d *Detector) Detected(id string) (DetectedProblem, bool) {
	p, ok := d.detected[id]
	return p, ok
}

// Count returns how many unique problems have accumulated.
func (d *Detector) Count() int { return len(d.detected) }

// Prioritize ranks every accumulated problem: urgency and low complexity
// dominate, connection impact and available solutions contribute less.
// Ties order by ID for stable output.
func (d *Detector) Prioritize() []DetectedProblem {
	out := make([]DetectedProblem, 0, len(d.detected))
	for _, p := range d.detected {
		p.PriorityScore = p.UrgencyScore*0.4 +
			float64(p.ConnectionImpact)*0.1 +
			(1-p.ComplexityScore)*0.3 +
			float64(len(p.PotentialSolutions))*0.2
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PriorityScore != out[j].PriorityScore {
			return out[i].PriorityScore > out[j].PriorityScore
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ScanStoreGaps reports critical domains with no stored solution patterns.
func (d *Detector) ScanStoreGaps() []DetectedProblem {
	present := map[string]bool{}
	for _, p := range d.library.Patterns() {
		present[p.ProblemDomain] = true
	}

	critical := []string{"communication", "coordination", "automation", "connection"}
	var gaps []DetectedProblem
	for _, domain := range critical {
		if present[domain] {
			continue
		}
		gaps = append(gaps, DetectedProblem{
			ID:                 "gap_" + domain,
			Description:        fmt.Sprintf("No solution patterns exist for %s domain", domain),
			Domain:             "pattern_gap",
			UrgencyScore:       0.7,
			ComplexityScore:    0.5,
			ConnectionImpact:   5,
			Evidence:           []string{fmt.Sprintf("Pattern library analysis shows %s gap", domain)},
			PotentialSolutions: []string{fmt.Sprintf("Research and develop %s solution patterns", domain)},
			Stakeholders:       []string{"developers", "users"},
			Constraints:        []string{"requires domain expertise"},
		})
	}
	return gaps
}
