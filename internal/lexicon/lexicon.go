// Package lexicon holds the static keyword and regex tables every scoring
// component runs against. Tables are embedded YAML, parsed once at first use,
// and never mutated afterwards. Category order is significant: classification
// ties break toward the first-declared entry.
package lexicon

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// Category is an ordered keyword list under a label.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RegexCategory is an ordered pattern list under a label. Patterns are
// compiled case-insensitive at load.
type RegexCategory struct {
	Name     string
	Patterns []*regexp.Regexp
}

// Table is the full immutable lexicon.
type Table struct {
	ProblemIndicators  []Category
	ProblemDomains     []Category
	PatternDomains     []Category
	SolutionApproaches []Category
	BiasCategories     []RegexCategory

	UrgencyKeywords      []string
	ComplexityKeywords   []string
	ConnectionKeywords   []string
	ConnectionIndicators []string
	StakeholderKeywords  []string

	LogicalOperators []string
	CausalKeywords   []string
	NegationWords    []string

	HarmfulPatterns       []*regexp.Regexp
	CollaborativePatterns []*regexp.Regexp
	ConstraintPatterns    []*regexp.Regexp
	MetricPatterns        []*regexp.Regexp

	PrerequisiteKeywords []string
	ActionVerbs          []string
	StepVerbs            []string
}

type rawTable struct {
	ProblemIndicators  []Category `yaml:"problem_indicators"`
	ProblemDomains     []Category `yaml:"problem_domains"`
	PatternDomains     []Category `yaml:"pattern_domains"`
	SolutionApproaches []Category `yaml:"solution_approaches"`
	BiasCategories     []struct {
		Name     string   `yaml:"name"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"bias_categories"`

	UrgencyKeywords      []string `yaml:"urgency_keywords"`
	ComplexityKeywords   []string `yaml:"complexity_keywords"`
	ConnectionKeywords   []string `yaml:"connection_keywords"`
	ConnectionIndicators []string `yaml:"connection_indicators"`
	StakeholderKeywords  []string `yaml:"stakeholder_keywords"`

	LogicalOperators []string `yaml:"logical_operators"`
	CausalKeywords   []string `yaml:"causal_keywords"`
	NegationWords    []string `yaml:"negation_words"`

	HarmfulPatterns       []string `yaml:"harmful_patterns"`
	CollaborativePatterns []string `yaml:"collaborative_patterns"`
	ConstraintPatterns    []string `yaml:"constraint_patterns"`
	MetricPatterns        []string `yaml:"metric_patterns"`

	PrerequisiteKeywords []string `yaml:"prerequisite_keywords"`
	ActionVerbs          []string `yaml:"action_verbs"`
	StepVerbs            []string `yaml:"step_verbs"`
}

var (
	loadOnce sync.Once
	loaded   *Table
	loadErr  error
)

// Default returns the embedded lexicon. Panics if the embedded YAML is
// malformed, which can only happen at development time.
func Default() *Table {
	loadOnce.Do(func() {
		loaded, loadErr = parse(lexiconYAML)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("load lexicon.yaml: %v", loadErr))
	}
	return loaded
}

func parse(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal lexicon: %w", err)
	}

	t := &Table{
		ProblemIndicators:    raw.ProblemIndicators,
		ProblemDomains:       raw.ProblemDomains,
		PatternDomains:       raw.PatternDomains,
		SolutionApproaches:   raw.SolutionApproaches,
		UrgencyKeywords:      raw.UrgencyKeywords,
		ComplexityKeywords:   raw.ComplexityKeywords,
		ConnectionKeywords:   raw.ConnectionKeywords,
		ConnectionIndicators: raw.ConnectionIndicators,
		StakeholderKeywords:  raw.StakeholderKeywords,
		LogicalOperators:     raw.LogicalOperators,
		CausalKeywords:       raw.CausalKeywords,
		NegationWords:        raw.NegationWords,
		PrerequisiteKeywords: raw.PrerequisiteKeywords,
		ActionVerbs:          raw.ActionVerbs,
		StepVerbs:            raw.StepVerbs,
	}

	for _, bc := range raw.BiasCategories {
		compiled, err := compileAll(bc.Patterns)
		if err != nil {
			return nil, fmt.Errorf("bias category %q: %w", bc.Name, err)
		}
		t.BiasCategories = append(t.BiasCategories, RegexCategory{Name: bc.Name, Patterns: compiled})
	}

	var err error
	if t.HarmfulPatterns, err = compileAll(raw.HarmfulPatterns); err != nil {
		return nil, fmt.Errorf("harmful_patterns: %w", err)
	}
	if t.CollaborativePatterns, err = compileAll(raw.CollaborativePatterns); err != nil {
		return nil, fmt.Errorf("collaborative_patterns: %w", err)
	}
	if t.ConstraintPatterns, err = compileAll(raw.ConstraintPatterns); err != nil {
		return nil, fmt.Errorf("constraint_patterns: %w", err)
	}
	if t.MetricPatterns, err = compileAll(raw.MetricPatterns); err != nil {
		return nil, fmt.Errorf("metric_patterns: %w", err)
	}

	return t, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// MatchCount returns how many of the keywords occur in text as substrings.
// Each keyword counts at most once. Text is expected to be lowercased already.
func MatchCount(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// FindCount sums all pattern occurrences in text (every match counts, not
// just pattern presence).
func FindCount(text string, patterns []*regexp.Regexp) int {
	count := 0
	for _, re := range patterns {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}

// Classify returns the category with the highest keyword hit count, or
// ok=false when no category scores above zero. Ties break toward the
// first-declared category, which keeps classification deterministic.
func Classify(text string, categories []Category) (name string, ok bool) {
	lower := strings.ToLower(text)
	best := 0
	for _, c := range categories {
		if score := MatchCount(lower, c.Keywords); score > best {
			best = score
			name = c.Name
		}
	}
	return name, best > 0
}
