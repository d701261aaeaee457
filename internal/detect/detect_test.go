package detect

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ucp/internal/pattern"
)

func newTestDetector() *Detector {
	return NewDetector(pattern.NewMemLibrary())
}

func TestAnalyze_NoIndicatorsNoProblem(t *testing.T) {
	d := newTestDetector()
	got := d.Analyze("The sky is blue today. Birds sing in the morning.", "test")
	if len(got) != 0 {
		t.Errorf("got %d problems for indicator-free text, want 0", len(got))
	}
}

func TestAnalyze_CrashCoordinateSentence(t *testing.T) {
	d := newTestDetector()
	got := d.Analyze("Our system frequently crashes and teams can't coordinate effectively", "test")

	if len(got) == 0 {
		t.Fatal("expected at least one problem")
	}
	p := got[0]
	// "crash" hits reliability and "coordinate" hits coordination, one
	// keyword each; the tie resolves to the first-declared domain.
	if p.Domain != "coordination" && p.Domain != "reliability" {
		t.Errorf("domain = %q, want coordination or reliability", p.Domain)
	}
	if p.Domain != "coordination" {
		t.Errorf("tie-break should pick coordination (declared first), got %q", p.Domain)
	}
	if p.UrgencyScore <= 0 {
		t.Errorf("urgency = %v, want > 0", p.UrgencyScore)
	}
	if !strings.HasPrefix(p.Description, "Reliability issue detected:") {
		t.Errorf("description = %q, want the fragility template", p.Description)
	}
	if diff := cmp.Diff([]string{"coordinate"}, p.Constraints); diff != "" {
		t.Errorf("constraints mismatch (-want +got):\n%s", diff)
	}
	if len(p.Stakeholders) == 0 {
		t.Error("expected 'team' stakeholder")
	}
}

func TestAnalyze_DedupesOnDescriptionPrefix(t *testing.T) {
	d := newTestDetector()
	got := d.Analyze("The deploy is slow and manual. The deploy is slow and manual.", "test")
	if len(got) != 1 {
		t.Errorf("got %d problems, want 1 after dedup", len(got))
	}
}

func TestAnalyze_ProblemIDShape(t *testing.T) {
	d := newTestDetector()
	got := d.Analyze("The deploy process is slow", "test")
	if len(got) != 1 {
		t.Fatalf("got %d problems, want 1", len(got))
	}
	id := got[0].ID
	if !strings.HasPrefix(id, got[0].Domain+"_") {
		t.Errorf("id %q should start with domain prefix", id)
	}
	suffix := strings.TrimPrefix(id, got[0].Domain+"_")
	if len(suffix) != 4 {
		t.Errorf("id suffix %q should be 4 digits", suffix)
	}
}

func TestUrgency_KeywordBonusAndCap(t *testing.T) {
	d := newTestDetector()

	got := d.Analyze("The critical deploy is slow", "test")
	if len(got) != 1 {
		t.Fatalf("got %d problems", len(got))
	}
	// One indicator (slow) plus one urgency keyword (critical).
	if got[0].UrgencyScore != 0.5 {
		t.Errorf("urgency = %v, want 0.5", got[0].UrgencyScore)
	}

	d2 := newTestDetector()
	capped := d2.Analyze("Critical urgent emergency: broken, failing, slow, manual, redundant deploy", "test")
	if len(capped) != 1 {
		t.Fatalf("got %d problems", len(capped))
	}
	if capped[0].UrgencyScore != 1.0 {
		t.Errorf("urgency = %v, want capped at 1.0", capped[0].UrgencyScore)
	}
}

func TestComplexity_LengthFactorCap(t *testing.T) {
	d := newTestDetector()
	long := "The slow pipeline " + strings.Repeat("word ", 60) + "ends here"
	got := d.Analyze(long, "test")
	if len(got) != 1 {
		t.Fatalf("got %d problems", len(got))
	}
	if got[0].ComplexityScore != 0.3 {
		t.Errorf("complexity = %v, want 0.3 (length factor cap, no complexity keywords)", got[0].ComplexityScore)
	}
}

func TestConnectionImpact_KeywordsPlusQuantifier(t *testing.T) {
	d := newTestDetector()
	got := d.Analyze("The slow rollout blocks 5 teams and their users", "test")
	if len(got) != 1 {
		t.Fatalf("got %d problems", len(got))
	}
	// team + users keywords plus the quantifier 5.
	if got[0].ConnectionImpact != 7 {
		t.Errorf("connection impact = %d, want 7", got[0].ConnectionImpact)
	}
}

func TestSuggestSolutions_UsesLibraryAndGenerics(t *testing.T) {
	lib := pattern.NewMemLibrary()
	lib.Extract(
		"teams cannot coordinate work",
		"standard sync protocol",
		"Implement shared sync protocol",
		"seed",
	)
	d := NewDetector(lib)

	got := d.Analyze("Work is siloed and teams can't coordinate", "test")
	if len(got) != 1 {
		t.Fatalf("got %d problems", len(got))
	}
	var hasPatternSuggestion, hasGeneric bool
	for _, s := range got[0].PotentialSolutions {
		if strings.HasPrefix(s, "standardization:") {
			hasPatternSuggestion = true
		}
		if s == "Establish communication channels and integration" {
			hasGeneric = true
		}
	}
	if !hasPatternSuggestion {
		t.Errorf("missing library-backed suggestion in %v", got[0].PotentialSolutions)
	}
	if !hasGeneric {
		t.Errorf("missing generic isolation remedy in %v", got[0].PotentialSolutions)
	}
}

func TestPrioritize_OrdersByScore(t *testing.T) {
	d := newTestDetector()
	d.Analyze("The critical system frequently crashes and is broken", "test")
	d.Analyze("Documentation is slow to load", "test")

	ranked := d.Prioritize()
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked problems, want 2", len(ranked))
	}
	if ranked[0].PriorityScore < ranked[1].PriorityScore {
		t.Error("ranking is not descending")
	}
	if ranked[0].UrgencyScore <= ranked[1].UrgencyScore {
		t.Errorf("expected the critical/broken problem first, got %q", ranked[0].Description)
	}
}

func TestScanStoreGaps(t *testing.T) {
	lib := pattern.NewMemLibrary()
	d := NewDetector(lib)

	gaps := d.ScanStoreGaps()
	if len(gaps) != 4 {
		t.Fatalf("empty library: got %d gaps, want 4", len(gaps))
	}
	for _, g := range gaps {
		if g.Domain != "pattern_gap" {
			t.Errorf("gap domain = %q, want pattern_gap", g.Domain)
		}
	}

	// The bootstrap seeds classify as efficiency and general, neither of
	// which is a critical domain, so all four gaps stay open.
	if _, err := lib.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	gaps = d.ScanStoreGaps()
	if len(gaps) != 4 {
		t.Errorf("after bootstrap: got %d gaps, want 4", len(gaps))
	}

	// A pattern that classifies into a critical domain closes its gap.
	lib.Extract(
		"We automate the deployment workflow process",
		"scripted rollout",
		"Implement scripted rollout pipeline",
		"seed",
	)
	gaps = d.ScanStoreGaps()
	if len(gaps) != 3 {
		t.Errorf("after automation pattern: got %d gaps, want 3", len(gaps))
	}
	for _, g := range gaps {
		if g.ID == "gap_automation" {
			t.Error("automation gap should be closed by the automation pattern")
		}
	}
}
