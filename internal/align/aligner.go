// Package align pairs the Chinese and English term lists using batched
// LLM calls. The similarity judgment is entirely the model's; this
// package only batches, parses, and enforces the no-fabrication and
// at-most-one-pair-per-term invariants.
package align

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/termtools/extract-terms/internal/llm"
	"github.com/termtools/extract-terms/internal/model"
	"github.com/termtools/extract-terms/internal/worker"
)

// Aligner performs bilingual term alignment.
type Aligner struct {
	provider      llm.Provider
	limiter       *worker.Limiter
	batchSize     int
	modelName     string
	maxTokens     int
	keepUnmatched bool
	log           *logrus.Entry
}

// New creates an aligner. limiter may be nil.
func New(provider llm.Provider, limiter *worker.Limiter, cfg model.Config, log *logrus.Entry) *Aligner {
	batchSize := cfg.Align.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Aligner{
		provider:      provider,
		limiter:       limiter,
		batchSize:     batchSize,
		modelName:     cfg.LLM.Model,
		maxTokens:     cfg.LLM.MaxTokens,
		keepUnmatched: cfg.Align.KeepUnmatched,
		log:           log,
	}
}

// Align pairs zhTerms against enTerms. Chinese terms go out in batches
// against the full English list, the way a human reviewer would scan a
// glossary column against the whole candidate page. Pairs citing a
// term absent from the inputs are dropped; conflicting pairs resolve
// first-wins by input order. Unmatched terms are omitted unless
// keep_unmatched is configured, in which case they are appended with
// an empty counterpart.
func (a *Aligner) Align(ctx context.Context, zhTerms, enTerms []string) ([]model.AlignedPair, error) {
	if len(zhTerms) == 0 || len(enTerms) == 0 {
		a.log.Warn("one term list is empty, nothing to align")
		return a.unmatchedTail(nil, zhTerms, enTerms), nil
	}

	zhIndex := indexTerms(zhTerms)
	enIndex := indexTerms(enTerms)

	usedZH := make(map[string]bool)
	usedEN := make(map[string]bool)
	var pairs []model.AlignedPair

	for start := 0; start < len(zhTerms); start += a.batchSize {
		end := start + a.batchSize
		if end > len(zhTerms) {
			end = len(zhTerms)
		}
		batch := zhTerms[start:end]

		if a.limiter != nil {
			if err := a.limiter.Wait(ctx, a.provider.Name()); err != nil {
				return nil, model.WrapError(model.AlignmentError, err, "rate limit wait")
			}
		}

		req := llm.AlignmentRequest(batch, enTerms, a.modelName, a.maxTokens)
		resp, err := a.provider.Complete(ctx, req)
		if err != nil {
			return nil, model.WrapError(model.AlignmentError, err,
				"alignment batch %d-%d failed", start, end-1)
		}

		for _, raw := range ParsePairs(resp.Text) {
			zh, zhOK := zhIndex[model.NormalizeTerm(raw.ZH)]
			en, enOK := enIndex[model.NormalizeTerm(raw.EN)]
			if !zhOK || !enOK {
				a.log.WithFields(logrus.Fields{"zh": raw.ZH, "en": raw.EN}).
					Warn("dropping fabricated pair not present in term lists")
				continue
			}
			zhKey := model.NormalizeTerm(zh)
			enKey := model.NormalizeTerm(en)
			if usedZH[zhKey] || usedEN[enKey] {
				// first pairing wins, later conflicts are dropped
				continue
			}
			usedZH[zhKey] = true
			usedEN[enKey] = true
			pairs = append(pairs, model.AlignedPair{ZH: zh, EN: en, Confidence: raw.Confidence})
		}

		a.log.WithFields(logrus.Fields{
			"batch_start": start,
			"batch_size":  len(batch),
			"pairs":       len(pairs),
		}).Debug("alignment batch done")
	}

	if a.keepUnmatched {
		pairs = a.appendUnmatched(pairs, zhTerms, enTerms, usedZH, usedEN)
	}

	return pairs, nil
}

// unmatchedTail handles the degenerate empty-list case.
func (a *Aligner) unmatchedTail(pairs []model.AlignedPair, zhTerms, enTerms []string) []model.AlignedPair {
	if !a.keepUnmatched {
		return pairs
	}
	return a.appendUnmatched(pairs, zhTerms, enTerms, map[string]bool{}, map[string]bool{})
}

func (a *Aligner) appendUnmatched(pairs []model.AlignedPair, zhTerms, enTerms []string, usedZH, usedEN map[string]bool) []model.AlignedPair {
	for _, zh := range zhTerms {
		if !usedZH[model.NormalizeTerm(zh)] {
			pairs = append(pairs, model.AlignedPair{ZH: zh})
		}
	}
	for _, en := range enTerms {
		if !usedEN[model.NormalizeTerm(en)] {
			pairs = append(pairs, model.AlignedPair{EN: en})
		}
	}
	return pairs
}

// indexTerms maps normalized forms back to the original input forms.
func indexTerms(terms []string) map[string]string {
	index := make(map[string]string, len(terms))
	for _, t := range terms {
		key := model.NormalizeTerm(t)
		if _, exists := index[key]; !exists {
			index[key] = t
		}
	}
	return index
}
