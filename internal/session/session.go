// Package session wires the compression core, problem detector, and
// solution generator into one pipeline and keeps per-call session records.
// All "performance analysis" here is self-reported arithmetic over those
// records; nothing adapts.
package session

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ucp/internal/compress"
	"ucp/internal/detect"
	"ucp/internal/logging"
	"ucp/internal/pattern"
	"ucp/internal/solution"
)

// Session is the per-Process record kept in history.
type Session struct {
	ID                    string    `json:"id"`
	StartTime             time.Time `json:"start_time"`
	EnhancementScore      float64   `json:"enhancement_score"`
	ProblemsIdentified    int       `json:"problems_identified"`
	SolutionsGenerated    int       `json:"solutions_generated"`
	ConnectionEnhancement int       `json:"connection_enhancement"`
	CompressionRatio      float64   `json:"compression_ratio"`
	LogicalCoherence      float64   `json:"logical_coherence"`
}

// ProcessingSummary is the compression-core slice of a Process result.
type ProcessingSummary struct {
	EnhancementScore     float64        `json:"enhancement_score"`
	CompressionRatio     float64        `json:"compression_ratio"`
	LogicalCoherence     float64        `json:"logical_coherence"`
	BiasDetection        map[string]int `json:"bias_detection"`
	ConnectionAxiomValid bool           `json:"connection_axiom_valid"`
}

// AnalysisSummary is the detection/generation slice of a Process result.
type AnalysisSummary struct {
	ProblemsDetected           int `json:"problems_detected"`
	SolutionsGenerated         int `json:"solutions_generated"`
	TotalConnectionEnhancement int `json:"total_connection_enhancement"`
}

// ProblemSummary is the abbreviated problem record in a Process result.
type ProblemSummary struct {
	ID               string  `json:"id"`
	Description      string  `json:"description"`
	Domain           string  `json:"domain"`
	Urgency          float64 `json:"urgency"`
	ConnectionImpact int     `json:"connection_impact"`
}

// SolutionSummary is the abbreviated solution record in a Process result.
// ImplementationPreview holds at most the first three plan steps.
type SolutionSummary struct {
	ProblemID             string   `json:"problem_id"`
	ProblemDescription    string   `json:"problem_description"`
	SolutionApproach      string   `json:"solution_approach"`
	ImplementationPreview []string `json:"implementation_preview"`
	ConnectionEnhancement int      `json:"connection_enhancement"`
	Confidence            float64  `json:"confidence"`
	ExecutionTime         string   `json:"execution_time"`
}

// Result is the full output of one Process call.
type Result struct {
	SessionID          string            `json:"session_id"`
	Processing         ProcessingSummary `json:"ucp_processing"`
	Analysis           AnalysisSummary   `json:"autonomous_analysis"`
	CompressedResponse string            `json:"compressed_response"`
	Problems           []ProblemSummary  `json:"detailed_problems"`
	Solutions          []SolutionSummary `json:"generated_solutions"`
	ExecutionTimeMS    float64           `json:"execution_time_ms"`
}

// System owns the pipeline components and the session history.
type System struct {
	processor *compress.Processor
	library   *pattern.Library
	detector  *detect.Detector
	generator *solution.Generator
	history   []Session
	log       *slog.Logger
}

// NewSystem builds a System around the given pattern library.
func NewSystem(lib *pattern.Library) *System {
	return &System{
		processor: compress.NewProcessor(),
		library:   lib,
		detector:  detect.NewDetector(lib),
		generator: solution.NewGenerator(lib),
		log:       logging.New("session"),
	}
}

// topProblems is how many detected problems get solutions per call.
const topProblems = 3

// Process runs the full pipeline on one input. With autonomous set,
// solutions are generated for the top detected problems and fed back into
// the pattern library, which is then saved.
func (s *System) Process(text string, autonomous bool) (*Result, error) {
	start := time.Now()

	report := s.processor.Process(text)
	problems := s.detector.Analyze(text, "user_input")

	var solutions []SolutionSummary
	totalEnhancement := 0
	if autonomous && len(problems) > 0 {
		top := problems
		if len(top) > topProblems {
			top = top[:topProblems]
		}
		for _, problem := range top {
			sol, err := s.generator.Generate(problem)
			if err != nil {
				return nil, fmt.Errorf("generate solution for %s: %w", problem.ID, err)
			}
			solutions = append(solutions, summarize(problem, sol))
			totalEnhancement += sol.ConnectionEnhancement
			s.learn(problem, sol)
		}
		if err := s.library.Save(); err != nil {
			return nil, fmt.Errorf("save pattern library: %w", err)
		}
	}

	session := Session{
		ID:                    "ucp_" + uuid.NewString(),
		StartTime:             start,
		EnhancementScore:      report.EnhancementScore,
		ProblemsIdentified:    len(problems),
		SolutionsGenerated:    len(solutions),
		ConnectionEnhancement: totalEnhancement,
		CompressionRatio:      report.Compression.CompressionRatio,
		LogicalCoherence:      report.Compression.LogicalCoherence,
	}
	s.history = append(s.history, session)

	res := &Result{
		SessionID: session.ID,
		Processing: ProcessingSummary{
			EnhancementScore:     report.EnhancementScore,
			CompressionRatio:     report.Compression.CompressionRatio,
			LogicalCoherence:     report.Compression.LogicalCoherence,
			BiasDetection:        report.BiasCounts,
			ConnectionAxiomValid: report.ConnectionAxiomValid,
		},
		Analysis: AnalysisSummary{
			ProblemsDetected:           len(problems),
			SolutionsGenerated:         len(solutions),
			TotalConnectionEnhancement: totalEnhancement,
		},
		CompressedResponse: response(report, len(problems), len(solutions), totalEnhancement),
		Solutions:          solutions,
		ExecutionTimeMS:    float64(time.Since(start).Microseconds()) / 1000,
	}
	for _, p := range problems {
		res.Problems = append(res.Problems, ProblemSummary{
			ID:               p.ID,
			Description:      p.Description,
			Domain:           p.Domain,
			Urgency:          p.UrgencyScore,
			ConnectionImpact: p.ConnectionImpact,
		})
	}
	return res, nil
}

func summarize(p detect.DetectedProblem, sol solution.GeneratedSolution) SolutionSummary {
	preview := sol.ImplementationPlan
	if len(preview) > 3 {
		preview = preview[:3]
	}
	return SolutionSummary{
		ProblemID:             p.ID,
		ProblemDescription:    p.Description,
		SolutionApproach:      sol.Approach,
		ImplementationPreview: preview,
		ConnectionEnhancement: sol.ConnectionEnhancement,
		Confidence:            sol.ConfidenceScore,
		ExecutionTime:         sol.ExecutionTimeEstimate,
	}
}

// learn feeds a generated solution back into the library as a new pattern.
func (s *System) learn(p detect.DetectedProblem, sol solution.GeneratedSolution) {
	s.library.Extract(
		p.Description,
		sol.Approach,
		strings.Join(sol.ImplementationPlan, "\n"),
		"autonomous_generation",
	)
}

// response assembles the compressed reply: logical conclusion first, then
// problem/solution/enhancement summaries.
func response(report *compress.Report, problems, solutions, enhancement int) string {
	var parts []string
	if report.Chain.Conclusion != "" {
		parts = append(parts, report.Chain.Conclusion)
	}
	if problems > 0 {
		parts = append(parts, fmt.Sprintf("Detected %d optimization opportunities", problems))
	}
	if solutions > 0 {
		parts = append(parts, fmt.Sprintf("Generated %d autonomous solutions", solutions))
	}
	if enhancement > 0 {
		parts = append(parts, fmt.Sprintf("Connection enhancement: +%d", enhancement))
	}
	if len(parts) == 0 {
		return "Input processed - no action required"
	}
	return strings.Join(parts, ". ")
}

// History returns a copy of the session records in order.
func (s *System) History() []Session {
	return append([]Session(nil), s.history...)
}

// Library exposes the backing pattern library.
func (s *System) Library() *pattern.Library { return s.library }

// Detector exposes the shared problem detector.
func (s *System) Detector() *detect.Detector { return s.detector }
