package lexicon

import (
	"testing"
)

func TestDefault_TablesPopulated(t *testing.T) {
	tab := Default()

	if len(tab.ProblemIndicators) != 6 {
		t.Errorf("problem indicators: got %d categories, want 6", len(tab.ProblemIndicators))
	}
	if len(tab.ProblemDomains) != 7 {
		t.Errorf("problem domains: got %d categories, want 7", len(tab.ProblemDomains))
	}
	if len(tab.PatternDomains) != 7 {
		t.Errorf("pattern domains: got %d categories, want 7", len(tab.PatternDomains))
	}
	if len(tab.BiasCategories) != 6 {
		t.Errorf("bias categories: got %d, want 6", len(tab.BiasCategories))
	}
	for _, c := range tab.ProblemIndicators {
		if len(c.Keywords) == 0 {
			t.Errorf("indicator %q has no keywords", c.Name)
		}
	}
}

func TestDefault_DomainDeclarationOrder(t *testing.T) {
	// Coordination must be declared before reliability so that equal-score
	// classification ties resolve to coordination.
	tab := Default()
	idx := map[string]int{}
	for i, c := range tab.ProblemDomains {
		idx[c.Name] = i
	}
	if idx["coordination"] >= idx["reliability"] {
		t.Errorf("coordination declared at %d, reliability at %d; want coordination first",
			idx["coordination"], idx["reliability"])
	}
}

func TestClassify_TieBreaksFirstDeclared(t *testing.T) {
	cats := []Category{
		{Name: "alpha", Keywords: []string{"shared"}},
		{Name: "beta", Keywords: []string{"shared"}},
	}
	name, ok := Classify("a shared keyword", cats)
	if !ok || name != "alpha" {
		t.Errorf("Classify = %q, %v; want alpha, true", name, ok)
	}
}

func TestClassify_NoHits(t *testing.T) {
	tab := Default()
	if name, ok := Classify("completely unrelated zebra text", tab.ProblemDomains); ok {
		t.Errorf("expected no classification, got %q", name)
	}
}

func TestMatchCount_CountsPresenceOnce(t *testing.T) {
	got := MatchCount("slow slow slow manual", []string{"slow", "manual", "waste"})
	if got != 2 {
		t.Errorf("MatchCount = %d, want 2", got)
	}
}

func TestFindCount_CountsEveryOccurrence(t *testing.T) {
	tab := Default()
	got := FindCount("collaborate and collaborate to improve", tab.CollaborativePatterns)
	if got != 3 {
		t.Errorf("FindCount = %d, want 3 (two collaborate + one improve)", got)
	}
}

func TestBiasPatterns_CaseInsensitive(t *testing.T) {
	tab := Default()
	var padding RegexCategory
	for _, bc := range tab.BiasCategories {
		if bc.Name == "narrative_padding" {
			padding = bc
		}
	}
	if padding.Name == "" {
		t.Fatal("narrative_padding category missing")
	}
	if FindCount("Obviously, CLEARLY true", padding.Patterns) != 2 {
		t.Error("expected case-insensitive matches for obviously and clearly")
	}
}
