package compress

import "ucp/internal/lexicon"

// ValidateConnectionAxiom reports whether collaborative keyword occurrences
// strictly outnumber harmful ones. Equal counts fail the axiom.
func (p *Processor) ValidateConnectionAxiom(text string) bool {
	collaborative := lexicon.FindCount(text, p.lex.CollaborativePatterns)
	harmful := lexicon.FindCount(text, p.lex.HarmfulPatterns)
	return collaborative > harmful
}
