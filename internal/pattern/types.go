// Package pattern implements the solution-pattern library: extraction of
// reusable patterns from problem/solution text, weighted similarity lookup,
// recombination, and persistence through the Store facade.
package pattern

import (
	"fmt"
	"hash/fnv"
)

// SolutionPattern is a stored problem-domain/solution-approach template.
// Immutable once stored; re-extracting the same domain+approach overwrites
// the previous record under the same ID.
type SolutionPattern struct {
	ID                  string   `json:"id"`
	ProblemDomain       string   `json:"problem_domain"`
	SolutionApproach    string   `json:"solution_approach"`
	ImplementationSteps []string `json:"implementation_steps"`
	SuccessMetrics      []string `json:"success_metrics"`
	Prerequisites       []string `json:"prerequisites"`
	ConnectionsEnhanced int      `json:"connections_enhanced"`
	ConfidenceScore     float64  `json:"confidence_score"`
	Source              string   `json:"source"`
}

// ProblemSignature is the ephemeral similarity-query key built from a
// detected problem.
type ProblemSignature struct {
	Domain          string   `json:"domain"`
	Complexity      string   `json:"complexity"`
	Constraints     []string `json:"constraints"`
	Stakeholders    []string `json:"stakeholders"`
	SuccessCriteria []string `json:"success_criteria"`
}

// Recombined is the merge of several patterns into one candidate solution.
type Recombined struct {
	ImplementationSteps []string `json:"implementation_steps"`
	Prerequisites       []string `json:"prerequisites"`
	ConfidenceScore     float64  `json:"confidence_score"`
	ConnectionsEnhanced int      `json:"connections_enhanced"`
	SourcePatterns      []string `json:"source_patterns"`
	ProblemContext      string   `json:"problem_context"`
}

// Fingerprint hashes s with 32-bit FNV-1a. Every generated ID in the
// system derives from this sum, as hex or as a modulo suffix.
func Fingerprint(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// fingerprint renders the hash as 8 hex chars for pattern IDs.
func fingerprint(s string) string {
	return fmt.Sprintf("%08x", Fingerprint(s))
}
