package model

// Language tags which side of the bilingual pair a document or term belongs to.
type Language string

const (
	LangChinese Language = "zh"
	LangEnglish Language = "en"
)

// DisplayName returns the language name used inside LLM prompts.
func (l Language) DisplayName() string {
	switch l {
	case LangChinese:
		return "Chinese"
	case LangEnglish:
		return "English"
	default:
		return string(l)
	}
}

// Document is a source file plus the text extracted from it.
// It lives from load time until splitting; nothing persists across runs.
type Document struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	Text     string   `json:"text"`
}

// Chunk is one bounded segment of a document's text.
// Chunks are ordered by Index; concatenating them in order reproduces
// the cleaned document text modulo boundary whitespace.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}
