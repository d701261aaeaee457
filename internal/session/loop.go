package session

import (
	"context"
	"fmt"
	"strings"
)

// Iteration is the per-cycle accounting in a loop report.
type Iteration struct {
	Iteration             int `json:"iteration"`
	ProblemsDetected      int `json:"problems_detected"`
	SolutionsGenerated    int `json:"solutions_generated"`
	ConnectionEnhancement int `json:"connection_enhancement"`
}

// CycleReport aggregates an autonomous loop run.
type CycleReport struct {
	Iterations                 []Iteration `json:"iterations"`
	ProblemsSolved             int         `json:"problems_solved"`
	SolutionsGenerated         int         `json:"solutions_generated"`
	TotalConnectionEnhancement int         `json:"total_connection_enhancement"`
}

// Loop runs autonomous problem-solving cycles until maxIterations or until
// a cycle detects nothing. Each cycle scans the store for domain gaps,
// re-prioritizes everything detected so far, solves the top problems, and
// feeds the solutions back into the library.
func (s *System) Loop(ctx context.Context, maxIterations int) (*CycleReport, error) {
	report := &CycleReport{}

	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		gaps := s.detector.ScanStoreGaps()
		prioritized := s.detector.Prioritize()

		iter := Iteration{
			Iteration:        i + 1,
			ProblemsDetected: len(gaps) + len(prioritized),
		}

		top := prioritized
		if len(top) > topProblems {
			top = top[:topProblems]
		}
		for _, problem := range top {
			sol, err := s.generator.Generate(problem)
			if err != nil {
				return report, fmt.Errorf("generate solution for %s: %w", problem.ID, err)
			}
			iter.SolutionsGenerated++
			iter.ConnectionEnhancement += sol.ConnectionEnhancement
			s.learn(problem, sol)
		}
		if iter.SolutionsGenerated > 0 {
			if err := s.library.Save(); err != nil {
				return report, fmt.Errorf("save pattern library: %w", err)
			}
		}

		report.Iterations = append(report.Iterations, iter)
		report.ProblemsSolved += len(top)
		report.SolutionsGenerated += iter.SolutionsGenerated
		report.TotalConnectionEnhancement += iter.ConnectionEnhancement

		s.log.Info("loop iteration",
			"iteration", iter.Iteration,
			"problems_detected", iter.ProblemsDetected,
			"solutions_generated", iter.SolutionsGenerated,
			"connection_enhancement", iter.ConnectionEnhancement)

		s.analyzePerformance()

		if iter.ProblemsDetected == 0 {
			break
		}
	}
	return report, nil
}

// analyzePerformance logs threshold checks over the last five sessions.
// Nothing is adjusted; the numbers are reported and that is all.
func (s *System) analyzePerformance() {
	if len(s.history) < 2 {
		return
	}
	recent := s.history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	var enhancement, compression float64
	connections := 0
	for _, sess := range recent {
		enhancement += sess.EnhancementScore
		compression += sess.CompressionRatio
		connections += sess.ConnectionEnhancement
	}
	avgEnhancement := enhancement / float64(len(recent))
	avgCompression := compression / float64(len(recent))

	if avgEnhancement < 0.5 {
		s.log.Warn("enhancement score below target", "avg", avgEnhancement)
	}
	if avgCompression > 0.8 {
		s.log.Warn("compression efficiency low", "avg_ratio", avgCompression)
	}
	if connections == 0 {
		s.log.Warn("no connection enhancement in recent sessions")
	}
}

// Performance aggregates the recent session window for Status.
type Performance struct {
	AvgEnhancementScore        float64 `json:"avg_enhancement_score"`
	AvgCompressionRatio        float64 `json:"avg_compression_ratio"`
	TotalProblemsSolved        int     `json:"total_problems_solved"`
	TotalSolutionsGenerated    int     `json:"total_solutions_generated"`
	TotalConnectionEnhancement int     `json:"total_connection_enhancement"`
}

// Status is the system self-report.
type Status struct {
	TotalSessions      int          `json:"total_sessions"`
	Recent             *Performance `json:"recent_performance,omitempty"`
	PatternLibrarySize int          `json:"pattern_library_size"`
	AxiomViolations    int          `json:"connection_axiom_violations"`
	Capability         string       `json:"reasoning_capability"`
}

// Status aggregates the last ten sessions. The axiom-violation count is
// always zero: nothing in the pipeline can record one.
func (s *System) Status() *Status {
	st := &Status{
		TotalSessions:      len(s.history),
		PatternLibrarySize: s.library.Len(),
		Capability:         "STANDARD",
	}
	if len(s.history) == 0 {
		return st
	}

	recent := s.history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	perf := &Performance{}
	for _, sess := range recent {
		perf.AvgEnhancementScore += sess.EnhancementScore
		perf.AvgCompressionRatio += sess.CompressionRatio
		perf.TotalProblemsSolved += sess.ProblemsIdentified
		perf.TotalSolutionsGenerated += sess.SolutionsGenerated
		perf.TotalConnectionEnhancement += sess.ConnectionEnhancement
	}
	perf.AvgEnhancementScore /= float64(len(recent))
	perf.AvgCompressionRatio /= float64(len(recent))
	st.Recent = perf

	if recent[len(recent)-1].EnhancementScore > 0.7 {
		st.Capability = "ENHANCED"
	}
	return st
}

// Describe renders the status as a short human-readable block.
func (st *Status) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sessions: %d\n", st.TotalSessions)
	fmt.Fprintf(&b, "Pattern library size: %d\n", st.PatternLibrarySize)
	fmt.Fprintf(&b, "Connection axiom violations: %d\n", st.AxiomViolations)
	fmt.Fprintf(&b, "Reasoning capability: %s\n", st.Capability)
	if st.Recent != nil {
		fmt.Fprintf(&b, "Recent avg enhancement: %.3f\n", st.Recent.AvgEnhancementScore)
		fmt.Fprintf(&b, "Recent avg compression: %.3f\n", st.Recent.AvgCompressionRatio)
		fmt.Fprintf(&b, "Recent problems solved: %d\n", st.Recent.TotalProblemsSolved)
		fmt.Fprintf(&b, "Recent solutions generated: %d\n", st.Recent.TotalSolutionsGenerated)
		fmt.Fprintf(&b, "Recent connection enhancement: %d\n", st.Recent.TotalConnectionEnhancement)
	}
	return b.String()
}
