package split

import (
	"strings"
	"unicode"

	"github.com/termtools/extract-terms/internal/model"
)

// Mode selects the boundary heuristic the splitter prefers.
type Mode string

const (
	// ModeParagraph splits at blank lines, falling back to sentences
	// for paragraphs that alone exceed the bound.
	ModeParagraph Mode = "paragraph"
	// ModeSentence splits at sentence-ending punctuation.
	ModeSentence Mode = "sentence"
	// ModeLength cuts fixed-size rune windows, breaking at whitespace
	// when one is close enough.
	ModeLength Mode = "length"
)

var sentenceDelimiters = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true, '；': true,
}

// Config bounds the splitter. Sizes are in runes, not bytes, so
// Chinese and English text get comparable chunk budgets.
type Config struct {
	Mode         Mode
	ChunkSize    int
	ChunkOverlap int // length mode only
}

// Splitter partitions cleaned document text into ordered chunks. No
// chunk exceeds ChunkSize except when a single indivisible unit (one
// sentence) alone exceeds it: that unit becomes its own oversized
// chunk rather than being truncated.
type Splitter struct {
	cfg Config
}

// New validates the configuration and creates a splitter.
func New(cfg Config) (*Splitter, error) {
	if cfg.ChunkSize <= 0 {
		return nil, model.NewError(model.ConfigurationError, "chunk size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 {
		return nil, model.NewError(model.ConfigurationError, "chunk overlap must not be negative, got %d", cfg.ChunkOverlap)
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, model.NewError(model.ConfigurationError,
			"chunk overlap (%d) must be smaller than chunk size (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}
	switch cfg.Mode {
	case ModeParagraph, ModeSentence, ModeLength:
	default:
		return nil, model.NewError(model.ConfigurationError, "unknown split mode: %q", cfg.Mode)
	}
	return &Splitter{cfg: cfg}, nil
}

// Split partitions text into ordered, non-empty chunks whose
// concatenation reproduces the input modulo boundary whitespace.
func (s *Splitter) Split(text string) ([]model.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var pieces []string
	switch s.cfg.Mode {
	case ModeParagraph:
		pieces = s.packUnits(splitParagraphs(text), "\n\n")
	case ModeSentence:
		pieces = s.packUnits(splitSentences(text), " ")
	case ModeLength:
		pieces = s.splitByLength(text)
	}

	chunks := make([]model.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		chunks = append(chunks, model.Chunk{Index: len(chunks), Text: piece})
	}
	return chunks, nil
}

// packUnits greedily merges consecutive units into chunks up to the
// bound. Units larger than the bound are re-split at the next finer
// boundary; a single oversized sentence stays whole.
func (s *Splitter) packUnits(units []string, sep string) []string {
	var packed []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			packed = append(packed, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, unit := range units {
		unitLen := runeLen(unit)

		if unitLen > s.cfg.ChunkSize {
			flush()
			if sentences := splitSentences(unit); len(sentences) > 1 {
				packed = append(packed, s.packUnits(sentences, " ")...)
			} else {
				// indivisible: keep whole, oversized
				packed = append(packed, unit)
			}
			continue
		}

		if currentLen > 0 && currentLen+runeLen(sep)+unitLen > s.cfg.ChunkSize {
			flush()
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += runeLen(sep)
		}
		current.WriteString(unit)
		currentLen += unitLen
	}
	flush()

	return packed
}

// splitByLength cuts rune windows of the configured size, preferring a
// whitespace break near the end of the window so words and terms are
// not severed mid-token.
func (s *Splitter) splitByLength(text string) []string {
	runes := []rune(text)
	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + s.cfg.ChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		// Back up to the nearest whitespace inside the window.
		cut := end
		for cut > start+1 && !unicode.IsSpace(runes[cut]) {
			cut--
		}
		if cut <= start+1 {
			cut = end // no whitespace in the window, hard cut
		}

		chunks = append(chunks, string(runes[start:cut]))

		next := cut - s.cfg.ChunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// splitParagraphs splits at blank lines and drops empty paragraphs.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitSentences splits at sentence-ending punctuation, Chinese and
// Western alike, keeping the delimiter with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if sentenceDelimiters[r] {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

func runeLen(s string) int {
	return len([]rune(s))
}
