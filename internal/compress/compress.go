// Package compress implements the core text pipeline: bias-pattern counting,
// logical-chain extraction, compression by bias removal, and the connection
// axiom check. All scoring is deterministic string matching against the
// lexicon tables; there is no language understanding here and no claim of it.
package compress

import (
	"strings"

	"ucp/internal/lexicon"
)

// Result carries the length accounting for one compression pass.
// CompressionRatio is 0 for empty input and never exceeds 1.
type Result struct {
	OriginalLength     int     `json:"original_length"`
	CompressedLength   int     `json:"compressed_length"`
	CompressionRatio   float64 `json:"compression_ratio"`
	InformationDensity float64 `json:"information_density"`
	BiasScore          float64 `json:"bias_score"`
	LogicalCoherence   float64 `json:"logical_coherence"`
}

// Report is the full output of Process.
type Report struct {
	OriginalText         string         `json:"original_text"`
	BiasCounts           map[string]int `json:"bias_detection"`
	Chain                LogicalChain   `json:"logical_chain"`
	Compression          Result         `json:"compression"`
	CompressedText       string         `json:"compressed_text"`
	ConnectionAxiomValid bool           `json:"connection_axiom_valid"`
	EnhancementScore     float64        `json:"enhancement_score"`
}

// Processor scores text against the lexicon tables.
type Processor struct {
	lex *lexicon.Table
}

// NewProcessor returns a Processor backed by the default lexicon.
func NewProcessor() *Processor {
	return &Processor{lex: lexicon.Default()}
}

// DetectBias counts occurrences of every bias pattern, keyed by category.
// All categories appear in the result, zero counts included.
func (p *Processor) DetectBias(text string) map[string]int {
	counts := make(map[string]int, len(p.lex.BiasCategories))
	for _, bc := range p.lex.BiasCategories {
		counts[bc.Name] = lexicon.FindCount(text, bc.Patterns)
	}
	return counts
}

// Compress strips bias patterns, rebuilds the text from its logical chain,
// and returns the length accounting plus the compressed text.
func (p *Processor) Compress(text string) (Result, string) {
	originalLength := len(text)

	stripped := text
	totalBias := 0
	for _, bc := range p.lex.BiasCategories {
		for _, re := range bc.Patterns {
			totalBias += len(re.FindAllStringIndex(stripped, -1))
			stripped = re.ReplaceAllString(stripped, "")
		}
	}

	chain := p.ExtractChain(stripped)

	var core []string
	if chain.Premise != "" {
		core = append(core, chain.Premise)
	}
	core = append(core, chain.Reasoning...)
	// A single-sentence input has premise == conclusion; appending both would
	// make the "compressed" text longer than the original.
	if chain.Conclusion != "" && (chain.Conclusion != chain.Premise || len(chain.Reasoning) > 0) {
		core = append(core, chain.Conclusion)
	}
	compressed := strings.Join(core, ". ")
	compressedLength := len(compressed)

	res := Result{
		OriginalLength:   originalLength,
		CompressedLength: compressedLength,
		LogicalCoherence: chain.Confidence,
	}
	if originalLength > 0 {
		res.CompressionRatio = min(1.0, float64(compressedLength)/float64(originalLength))
		res.BiasScore = float64(totalBias) / float64(originalLength)
	}
	if compressedLength > 0 {
		res.InformationDensity = float64(len(chain.Reasoning)) / float64(compressedLength)
	}
	return res, compressed
}

// Process runs the full pipeline on one input.
func (p *Processor) Process(text string) *Report {
	biasCounts := p.DetectBias(text)
	chain := p.ExtractChain(text)
	compression, compressed := p.Compress(text)
	axiomValid := p.ValidateConnectionAxiom(text)

	return &Report{
		OriginalText:         text,
		BiasCounts:           biasCounts,
		Chain:                chain,
		Compression:          compression,
		CompressedText:       compressed,
		ConnectionAxiomValid: axiomValid,
		EnhancementScore:     enhancementScore(compression, chain, axiomValid),
	}
}

// enhancementScore aggregates compression benefit, chain confidence, the
// axiom bonus, and a capped bias penalty. Floored at 0.3 so any processed
// input reports some enhancement; the floor is inherited behavior, not a
// quality statement.
func enhancementScore(c Result, chain LogicalChain, axiomValid bool) float64 {
	compressionBenefit := 1 - c.CompressionRatio
	connectionBonus := 0.0
	if axiomValid {
		connectionBonus = 1.0
	}
	biasPenalty := min(0.5, c.BiasScore)

	base := (compressionBenefit + chain.Confidence + connectionBonus - biasPenalty) / 3.0
	return max(0.3, base)
}
