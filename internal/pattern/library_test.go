package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func extractSample(l *Library) SolutionPattern {
	return l.Extract(
		"Teams cannot coordinate and communication is fragmented",
		"Standardize the protocol to improve collaboration and connect teams",
		"- Create shared protocol spec\n- Implement validation tooling\nRequires buy-in from team leads",
		"test",
	)
}

func TestExtract_DerivedFields(t *testing.T) {
	l := NewMemLibrary()
	p := extractSample(l)

	if p.ProblemDomain != "coordination" {
		t.Errorf("domain = %q, want coordination", p.ProblemDomain)
	}
	// "standard" appears before any optimization/integration keyword group.
	if p.SolutionApproach != "standardization" {
		t.Errorf("approach = %q, want standardization", p.SolutionApproach)
	}
	// The "Requires" line is not a bullet and carries no step verb, so it
	// lands in prerequisites only.
	wantSteps := []string{
		"Create shared protocol spec",
		"Implement validation tooling",
	}
	if diff := cmp.Diff(wantSteps, p.ImplementationSteps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	if len(p.Prerequisites) != 1 {
		t.Errorf("prerequisites = %v, want the 'Requires' line", p.Prerequisites)
	}
	if p.ConnectionsEnhanced == 0 {
		t.Error("expected non-zero connection count for collaborate/connect")
	}
	if p.ConfidenceScore < 0 || p.ConfidenceScore > 1 {
		t.Errorf("confidence %v out of [0,1]", p.ConfidenceScore)
	}
}

func TestExtract_SameDomainApproachOverwrites(t *testing.T) {
	l := NewMemLibrary()
	first := extractSample(l)
	second := l.Extract(
		"Teams cannot coordinate on releases",
		"Standard release protocol",
		"Implement the standard checklist",
		"test2",
	)

	if first.ID != second.ID {
		t.Fatalf("expected identical IDs for same domain+approach, got %s and %s", first.ID, second.ID)
	}
	if l.Len() != 1 {
		t.Errorf("library size = %d, want 1 after overwrite", l.Len())
	}
	stored, _ := l.Get(first.ID)
	if stored.Source != "test2" {
		t.Errorf("stored source = %q, want the overwriting extraction", stored.Source)
	}
}

func TestExtract_FallbacksForUnmatchedText(t *testing.T) {
	l := NewMemLibrary()
	p := l.Extract("zzz", "zzz", "zzz", "test")

	if p.ProblemDomain != "general" {
		t.Errorf("domain = %q, want general", p.ProblemDomain)
	}
	if p.SolutionApproach != "custom" {
		t.Errorf("approach = %q, want custom", p.SolutionApproach)
	}
	if diff := cmp.Diff([]string{"zzz"}, p.ImplementationSteps); diff != "" {
		t.Errorf("fallback steps mismatch (-want +got):\n%s", diff)
	}
}

func TestSimilarity_Weights(t *testing.T) {
	p := SolutionPattern{
		ProblemDomain:       "coordination",
		ImplementationSteps: []string{"Create shared dashboard", "Sync meetings weekly"},
	}

	cases := []struct {
		name string
		sig  ProblemSignature
		want float64
	}{
		{"domain only", ProblemSignature{Domain: "coordination"}, 0.6},
		{"no match", ProblemSignature{Domain: "automation"}, 0.0},
		{"domain plus one of two constraints",
			ProblemSignature{Domain: "coordination", Constraints: []string{"dashboard", "tooling"}}, 0.8},
		{"constraints only",
			ProblemSignature{Domain: "automation", Constraints: []string{"dashboard"}}, 0.4},
	}
	for _, tc := range cases {
		if got := Similarity(tc.sig, p); got != tc.want {
			t.Errorf("%s: Similarity = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFindSimilar_OrderedBestFirst(t *testing.T) {
	l := NewMemLibrary()
	l.Extract("teams cannot coordinate", "standard sync protocol", "Implement sync protocol", "a")
	l.Extract("manual process workflow", "automate the workflow", "Implement automation", "b")

	got := l.FindSimilar(ProblemSignature{Domain: "coordination"}, 0.3)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	if got[0].ProblemDomain != "coordination" {
		t.Errorf("best match domain = %q", got[0].ProblemDomain)
	}

	if matches := l.FindSimilar(ProblemSignature{Domain: "nonexistent"}, 0.3); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestRecombine_EmptyInputIsSentinelError(t *testing.T) {
	l := NewMemLibrary()
	_, err := l.Recombine(nil, "context")
	if !errors.Is(err, ErrNoPatterns) {
		t.Errorf("err = %v, want ErrNoPatterns", err)
	}
}

func TestRecombine_MergesAndDedupes(t *testing.T) {
	l := NewMemLibrary()
	a := SolutionPattern{
		ID:                  "a",
		ImplementationSteps: []string{"Create dashboard", "Sync weekly"},
		Prerequisites:       []string{"team buy-in"},
		ConfidenceScore:     0.4,
		ConnectionsEnhanced: 2,
	}
	b := SolutionPattern{
		ID:                  "b",
		ImplementationSteps: []string{"create dashboard", "Train users"},
		Prerequisites:       []string{"team buy-in", "budget"},
		ConfidenceScore:     0.8,
		ConnectionsEnhanced: 3,
	}

	got, err := l.Recombine([]SolutionPattern{a, b}, "demo context")
	if err != nil {
		t.Fatalf("Recombine: %v", err)
	}

	wantSteps := []string{"Create dashboard", "Sync weekly", "Train users"}
	if diff := cmp.Diff(wantSteps, got.ImplementationSteps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"team buy-in", "budget"}, got.Prerequisites); diff != "" {
		t.Errorf("prerequisites mismatch (-want +got):\n%s", diff)
	}
	if got.ConfidenceScore != 0.6000000000000001 && got.ConfidenceScore != 0.6 {
		t.Errorf("confidence = %v, want mean 0.6", got.ConfidenceScore)
	}
	if got.ConnectionsEnhanced != 5 {
		t.Errorf("connections = %d, want 5", got.ConnectionsEnhanced)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got.SourcePatterns); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestBootstrap_SeedsTwoPatterns(t *testing.T) {
	l := NewMemLibrary()
	seeded, err := l.Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if len(seeded) != 2 {
		t.Fatalf("seeded %d patterns, want 2", len(seeded))
	}
	if l.Len() != 2 {
		t.Errorf("library size = %d, want 2", l.Len())
	}
	for _, p := range seeded {
		if p.ID == "" || p.ProblemDomain == "" {
			t.Errorf("seeded pattern incomplete: %+v", p)
		}
	}
}

func TestFingerprint_KnownValues(t *testing.T) {
	// FNV-1a 32-bit reference values.
	if got := Fingerprint(""); got != 2166136261 {
		t.Errorf("Fingerprint(\"\") = %d, want the offset basis 2166136261", got)
	}
	if got := Fingerprint("a"); got != 0xe40c292c {
		t.Errorf("Fingerprint(\"a\") = %#x, want 0xe40c292c", got)
	}
	if got := fingerprint("a"); got != "e40c292c" {
		t.Errorf("fingerprint(\"a\") = %q, want \"e40c292c\"", got)
	}
}
