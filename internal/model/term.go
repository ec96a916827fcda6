package model

import "strings"

// Term is a domain term extracted from one document.
type Term struct {
	Text           string   `json:"text"`
	Language       Language `json:"language"`
	SourceDocument string   `json:"source_document"`
}

// AlignedPair couples a Chinese term with its English equivalent.
// Confidence is optional; it is only present when the model reports one.
type AlignedPair struct {
	ZH         string `json:"zh"`
	EN         string `json:"en"`
	Confidence string `json:"confidence,omitempty"`
}

// NormalizeTerm returns the key used for term deduplication:
// surrounding whitespace trimmed and case folded. The original casing
// of the first occurrence is what ends up in the output.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
