package llm

import (
	"fmt"
	"strings"

	"github.com/termtools/extract-terms/internal/model"
)

// The prompts steer the model into XML output bracketed by an <output>
// tag: the assistant response is prefilled with the opening tag and
// generation stops at the closing one, so the reply is pure payload.
const (
	OutputPrefill = "Sure, here is the result: <output>"
	OutputStop    = "</output>"
)

const extractionSystemPrompt = "You are a medical terminology expert extracting domain terms from clinical and device documentation."

const alignmentSystemPrompt = "You are a medical terminology expert specializing in Chinese-English medical terminology."

// BuildExtractionPrompt returns the prompt asking the model to extract
// the medical terms of one language from one chunk of text.
func BuildExtractionPrompt(text string, lang model.Language) string {
	return fmt.Sprintf(`Please extract only the medical-related %[1]s terms from the text and format them in XML structure following this example:
<terminology>
  <term>患者通气</term>
  <term>呼吸机</term>
  <term>潮气量</term>
</terminology>

<terminology>
  <term>FiO2 sensor</term>
  <term>Oxygen inlet</term>
  <term>Tidal volume</term>
</terminology>

Important extraction rules:

Extract ONLY %[1]s medical terms
Extract complete medical terms
List each term only once
Include compound medical terms

Exclude:

Technical/mechanical terms
Non-medical terms
General descriptive terms

Please start the extraction with <output>:
%[2]s
`, lang.DisplayName(), text)
}

// BuildAlignmentPrompt returns the prompt asking the model to pair one
// batch of Chinese terms against the full English term list.
func BuildAlignmentPrompt(zhBatch, enTerms []string) string {
	return fmt.Sprintf(`Please align the Chinese medical terms with their English equivalents from the provided lists.
Return the results in XML format like this:

<alignments>
  <pair>
    <zh>呼吸机</zh>
    <en>Ventilator</en>
  </pair>
</alignments>

Only create pairs when you are highly confident about the alignment.
Skip terms that don't have a clear match.
Do not invent terms that are not in the lists.
Maintain medical accuracy in the alignments.

Chinese terms:
%s

English terms:
%s

Start your response with <output>:`, strings.Join(zhBatch, ", "), strings.Join(enTerms, ", "))
}

// ExtractionRequest assembles the full completion request for one chunk.
func ExtractionRequest(text string, lang model.Language, modelName string, maxTokens int) CompletionRequest {
	return CompletionRequest{
		System:        extractionSystemPrompt,
		Prompt:        BuildExtractionPrompt(text, lang),
		Prefill:       OutputPrefill,
		Model:         modelName,
		MaxTokens:     maxTokens,
		Temperature:   0,
		StopSequences: []string{OutputStop},
	}
}

// AlignmentRequest assembles the full completion request for one
// alignment batch.
func AlignmentRequest(zhBatch, enTerms []string, modelName string, maxTokens int) CompletionRequest {
	return CompletionRequest{
		System:        alignmentSystemPrompt,
		Prompt:        BuildAlignmentPrompt(zhBatch, enTerms),
		Prefill:       OutputPrefill,
		Model:         modelName,
		MaxTokens:     maxTokens,
		Temperature:   0,
		StopSequences: []string{OutputStop},
	}
}
