package compress

import (
	"fmt"
	"regexp"
	"strings"

	"ucp/internal/lexicon"
)

// LogicalChain is the premise/reasoning/conclusion skeleton extracted from
// text. Confidence is 0 when contradictions are present.
type LogicalChain struct {
	Premise        string   `json:"premise"`
	Reasoning      []string `json:"reasoning"`
	Conclusion     string   `json:"conclusion"`
	Confidence     float64  `json:"confidence"`
	Contradictions []string `json:"contradictions"`
}

var sentenceEnd = regexp.MustCompile(`[.!?]`)

// SplitSentences splits on sentence terminators and trims whitespace,
// dropping empty fragments.
func SplitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExtractChain pulls the logical skeleton out of text: first sentence as
// premise, last as conclusion, and any sentence carrying a logical operator
// or causal keyword as reasoning. When nothing qualifies, middle sentences
// are treated as implicit reasoning.
func (p *Processor) ExtractChain(text string) LogicalChain {
	sentences := SplitSentences(text)

	var premise, conclusion string
	if len(sentences) > 0 {
		premise = sentences[0]
		conclusion = sentences[len(sentences)-1]
	}

	var reasoning []string
	for _, s := range sentences {
		lower := strings.ToLower(s)
		if lexicon.MatchCount(lower, p.lex.LogicalOperators) > 0 ||
			lexicon.MatchCount(lower, p.lex.CausalKeywords) > 0 {
			reasoning = append(reasoning, s)
		}
	}
	if len(reasoning) == 0 && len(sentences) > 2 {
		reasoning = append(reasoning, sentences[1:len(sentences)-1]...)
	}

	contradictions := p.detectContradictions(sentences)

	return LogicalChain{
		Premise:        premise,
		Reasoning:      reasoning,
		Conclusion:     conclusion,
		Confidence:     chainConfidence(reasoning, contradictions),
		Contradictions: contradictions,
	}
}

// detectContradictions flags sentence pairs that become identical once
// negation words are removed from the first. Crude, but deterministic.
func (p *Processor) detectContradictions(sentences []string) []string {
	negation := regexp.MustCompile(`(?i)\b(` + strings.Join(p.lex.NegationWords, "|") + `)\b`)

	var contradictions []string
	for i, first := range sentences {
		stripped := strings.ToLower(strings.TrimSpace(negation.ReplaceAllString(first, "")))
		stripped = strings.Join(strings.Fields(stripped), " ")
		for _, second := range sentences[i+1:] {
			normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(second))), " ")
			if stripped != "" && stripped == normalized {
				contradictions = append(contradictions, fmt.Sprintf("Contradiction: %q vs %q", first, second))
			}
		}
	}
	return contradictions
}

func chainConfidence(reasoning, contradictions []string) float64 {
	if len(contradictions) > 0 {
		return 0.0
	}
	// 0.5 base for any logical structure, plus 0.3 per reasoning sentence.
	return min(1.0, 0.5+float64(len(reasoning))*0.3)
}
