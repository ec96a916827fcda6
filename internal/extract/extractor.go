// Package extract turns document chunks into per-document term lists
// with one LLM call per chunk, dispatched through a bounded pool.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/termtools/extract-terms/internal/cache"
	"github.com/termtools/extract-terms/internal/llm"
	"github.com/termtools/extract-terms/internal/model"
	"github.com/termtools/extract-terms/internal/worker"
)

// Extractor extracts domain terms from a document, chunk by chunk.
// Chunk calls are independent and run in parallel; a failed chunk
// never cancels its siblings.
type Extractor struct {
	provider  llm.Provider
	limiter   *worker.Limiter
	cache     cache.Cache // nil disables caching
	workers   int
	modelName string
	maxTokens int
	log       *logrus.Entry
}

// New creates an extractor. limiter and cache may be nil.
func New(provider llm.Provider, limiter *worker.Limiter, respCache cache.Cache, cfg model.Config, log *logrus.Entry) *Extractor {
	workers := cfg.Concurrency.Workers
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Extractor{
		provider:  provider,
		limiter:   limiter,
		cache:     respCache,
		workers:   workers,
		modelName: cfg.LLM.Model,
		maxTokens: cfg.LLM.MaxTokens,
		log:       log,
	}
}

// chunkJob is one chunk's extraction call, run on the worker pool.
type chunkJob struct {
	extractor *Extractor
	chunk     model.Chunk
	lang      model.Language
}

// chunkResult is the isolated output slot for one chunk.
type chunkResult struct {
	index int
	terms []string
	err   error
}

func (r *chunkResult) Err() error { return r.err }

// Execute performs the single blocking LLM call for this chunk.
func (j *chunkJob) Execute(ctx context.Context) worker.Result {
	terms, err := j.extractor.extractChunk(ctx, j.chunk, j.lang)
	return &chunkResult{index: j.chunk.Index, terms: terms, err: err}
}

// ExtractDocument extracts the deduplicated term list of one document.
// Per-chunk failures are collected, not retried: if any chunk failed,
// the whole document fails with an ExtractionError naming every failed
// chunk, after all in-flight calls have finished.
func (e *Extractor) ExtractDocument(ctx context.Context, doc *model.Document, chunks []model.Chunk) ([]model.Term, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	log := e.log.WithFields(logrus.Fields{
		"document": filepath.Base(doc.Path),
		"language": doc.Language,
		"chunks":   len(chunks),
	})
	log.Info("extracting terms")
	start := time.Now()

	pool := worker.NewPool(e.workers)
	pool.Start()
	for _, chunk := range chunks {
		pool.Submit(&chunkJob{extractor: e, chunk: chunk, lang: doc.Language})
	}
	results := pool.Wait()

	// Re-assemble completion-ordered results into chunk order.
	slots := make([]*chunkResult, len(chunks))
	var failed []int
	for _, res := range results {
		cr := res.(*chunkResult)
		slots[cr.index] = cr
		if cr.err != nil {
			failed = append(failed, cr.index)
			log.WithField("chunk", cr.index).WithError(cr.err).Error("chunk extraction failed")
		}
	}

	if len(failed) > 0 {
		sort.Ints(failed)
		return nil, model.NewError(model.ExtractionError,
			"%d of %d chunks failed for %s (chunks %s)",
			len(failed), len(chunks), filepath.Base(doc.Path), formatIndexes(failed))
	}

	terms := e.merge(slots, doc)
	log.WithFields(logrus.Fields{
		"terms":   len(terms),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("extraction complete")

	return terms, nil
}

// extractChunk performs one LLM call, going through the rate limiter
// and the response cache.
func (e *Extractor) extractChunk(ctx context.Context, chunk model.Chunk, lang model.Language) ([]string, error) {
	req := llm.ExtractionRequest(chunk.Text, lang, e.modelName, e.maxTokens)

	text, ok := e.cacheGet(req.Prompt)
	if !ok {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx, e.provider.Name()); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		resp, err := e.provider.Complete(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		text = resp.Text
		e.cacheSet(req.Prompt, text)
	}

	terms, err := ParseTerms(text)
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
	}
	return terms, nil
}

// merge folds the per-chunk term lists into one deduplicated document
// list, iterating in chunk order so output is deterministic: the first
// occurrence of a term (trimmed, case-folded) wins and keeps its
// original form.
func (e *Extractor) merge(slots []*chunkResult, doc *model.Document) []model.Term {
	source := filepath.Base(doc.Path)
	seen := make(map[string]bool)
	var terms []model.Term

	for _, slot := range slots {
		if slot == nil {
			continue
		}
		for _, raw := range slot.terms {
			text := strings.TrimSpace(raw)
			key := model.NormalizeTerm(text)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			terms = append(terms, model.Term{
				Text:           text,
				Language:       doc.Language,
				SourceDocument: source,
			})
		}
	}

	return terms
}

func (e *Extractor) cacheGet(prompt string) (string, bool) {
	if e.cache == nil {
		return "", false
	}
	key := cache.Key(e.provider.Name(), e.modelName, prompt)
	if data, found := e.cache.Get(key); found {
		return string(data), true
	}
	return "", false
}

func (e *Extractor) cacheSet(prompt, text string) {
	if e.cache == nil {
		return
	}
	key := cache.Key(e.provider.Name(), e.modelName, prompt)
	if err := e.cache.Set(key, []byte(text), 0); err != nil {
		e.log.WithError(err).Debug("cache write failed")
	}
}

func formatIndexes(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ", ")
}
