package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"ucp/internal/lexicon"
)

// ErrNoPatterns is returned by Recombine when called with nothing to merge.
var ErrNoPatterns = errors.New("no patterns provided for recombination")

// Library holds the in-memory pattern set and persists it through a Store.
type Library struct {
	lex        *lexicon.Table
	store      Store
	patterns   map[string]SolutionPattern
	signatures map[string]ProblemSignature
}

// NewLibrary loads the library from st. A missing backing file yields an
// empty library; a malformed one is a real error (the caller decides whether
// to start over).
func NewLibrary(st Store) (*Library, error) {
	snap, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load patterns: %w", err)
	}
	return &Library{
		lex:        lexicon.Default(),
		store:      st,
		patterns:   snap.Patterns,
		signatures: snap.Signatures,
	}, nil
}

// NewMemLibrary returns an empty library backed by an in-memory store.
func NewMemLibrary() *Library {
	lib, _ := NewLibrary(NewMemStore())
	return lib
}

// Len returns the number of stored patterns.
func (l *Library) Len() int { return len(l.patterns) }

// Get returns the pattern by ID.
func (l *Library) Get(id string) (SolutionPattern, bool) {
	p, ok := l.patterns[id]
	return p, ok
}

// Patterns returns all stored patterns ordered by ID.
func (l *Library) Patterns() []SolutionPattern {
	ids := make([]string, 0, len(l.patterns))
	for id := range l.patterns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]SolutionPattern, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.patterns[id])
	}
	return out
}

// Extract derives a SolutionPattern from a problem/solution/implementation
// triple and stores it, overwriting any pattern with the same ID.
func (l *Library) Extract(problem, solution, implementation, source string) SolutionPattern {
	domain := l.classifyDomain(problem)
	approach := l.extractApproach(solution)

	p := SolutionPattern{
		ID:                  fingerprint(domain + "_" + approach),
		ProblemDomain:       domain,
		SolutionApproach:    approach,
		ImplementationSteps: l.parseSteps(implementation),
		SuccessMetrics:      l.extractMetrics(solution),
		Prerequisites:       l.extractPrerequisites(implementation),
		ConnectionsEnhanced: l.connectionImpact(solution),
		ConfidenceScore:     l.patternConfidence(problem, solution),
		Source:              source,
	}
	l.patterns[p.ID] = p
	return p
}

// FindSimilar returns stored patterns scoring at or above threshold against
// the signature, best first. Equal scores order by pattern ID so results are
// stable across runs.
func (l *Library) FindSimilar(sig ProblemSignature, threshold float64) []SolutionPattern {
	type scored struct {
		p     SolutionPattern
		score float64
	}
	var matches []scored
	for _, p := range l.Patterns() {
		if s := Similarity(sig, p); s >= threshold {
			matches = append(matches, scored{p, s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	out := make([]SolutionPattern, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.p)
	}
	return out
}

// Similarity scores a signature against a pattern:
// 0.6 for an exact domain match plus 0.4 weighted by the fraction of
// signature constraints that substring-match any implementation step.
func Similarity(sig ProblemSignature, p SolutionPattern) float64 {
	domainMatch := 0.0
	if sig.Domain == p.ProblemDomain {
		domainMatch = 1.0
	}

	constraintOverlap := 0.0
	if len(sig.Constraints) > 0 {
		hits := 0
		for _, constraint := range sig.Constraints {
			lower := strings.ToLower(constraint)
			for _, step := range p.ImplementationSteps {
				if strings.Contains(strings.ToLower(step), lower) {
					hits++
					break
				}
			}
		}
		constraintOverlap = float64(hits) / float64(len(sig.Constraints))
	}

	return domainMatch*0.6 + constraintOverlap*0.4
}

// Recombine merges the given patterns: step union with case-insensitive
// dedup in order, prerequisite union, averaged confidence, summed connection
// counts. An empty input returns ErrNoPatterns.
func (l *Library) Recombine(patterns []SolutionPattern, context string) (*Recombined, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	var steps []string
	seenSteps := map[string]bool{}
	for _, p := range patterns {
		for _, step := range p.ImplementationSteps {
			key := strings.ToLower(step)
			if !seenSteps[key] {
				steps = append(steps, step)
				seenSteps[key] = true
			}
		}
	}

	var prereqs []string
	seenPrereqs := map[string]bool{}
	for _, p := range patterns {
		for _, pre := range p.Prerequisites {
			if !seenPrereqs[pre] {
				prereqs = append(prereqs, pre)
				seenPrereqs[pre] = true
			}
		}
	}

	confidence := 0.0
	connections := 0
	sources := make([]string, 0, len(patterns))
	for _, p := range patterns {
		confidence += p.ConfidenceScore
		connections += p.ConnectionsEnhanced
		sources = append(sources, p.ID)
	}

	return &Recombined{
		ImplementationSteps: steps,
		Prerequisites:       prereqs,
		ConfidenceScore:     confidence / float64(len(patterns)),
		ConnectionsEnhanced: connections,
		SourcePatterns:      sources,
		ProblemContext:      context,
	}, nil
}

// RecordSignature stores a signature under the given ID for persistence.
func (l *Library) RecordSignature(id string, sig ProblemSignature) {
	l.signatures[id] = sig
}

// Save writes the current pattern set through the backing store.
func (l *Library) Save() error {
	return l.store.Save(&Snapshot{Patterns: l.patterns, Signatures: l.signatures})
}

// Bootstrap seeds the library with the two canonical patterns and saves.
func (l *Library) Bootstrap() ([]SolutionPattern, error) {
	first := l.Extract(
		"Human communication contains cognitive bias that reduces AI reasoning efficiency",
		"Ultra-compressed communication protocol eliminates bias injection and enhances logical processing",
		"Create bias detection system, implement logical validation, compress information density",
		"ucp_core",
	)
	second := l.Extract(
		"Manual problem identification and solution generation creates bottlenecks",
		"Autonomous pattern recognition and recombination enables continuous problem solving",
		"Build pattern library, create problem signature system, implement recombination engine",
		"pattern_library",
	)
	if err := l.Save(); err != nil {
		return nil, err
	}
	return []SolutionPattern{first, second}, nil
}
