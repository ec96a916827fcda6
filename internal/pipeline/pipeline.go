// Package pipeline wires loader, splitter, extractor, aligner and
// writer into the one-shot run a single invocation performs.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/termtools/extract-terms/internal/align"
	"github.com/termtools/extract-terms/internal/cache"
	"github.com/termtools/extract-terms/internal/extract"
	"github.com/termtools/extract-terms/internal/llm"
	"github.com/termtools/extract-terms/internal/loader"
	"github.com/termtools/extract-terms/internal/model"
	"github.com/termtools/extract-terms/internal/split"
	"github.com/termtools/extract-terms/internal/worker"
)

// Pipeline orchestrates one extraction-and-alignment run.
type Pipeline struct {
	cfg       *model.Config
	provider  llm.Provider
	splitter  *split.Splitter
	extractor *extract.Extractor
	aligner   *align.Aligner
	writer    *Writer
	log       *logrus.Entry
}

// RunResult summarizes a completed run.
type RunResult struct {
	TermsFile    string
	GlossaryFile string
	ZHTerms      int
	ENTerms      int
	Pairs        int
}

// New builds the pipeline from configuration. Provider and splitter
// construction validate their config here, so a bad run dies before
// any document is touched.
func New(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}
	return NewWithProvider(cfg, provider)
}

// NewWithProvider builds the pipeline around an already-constructed
// provider. This is the seam tests use to substitute a stub client
// without touching environment state.
func NewWithProvider(cfg *model.Config, provider llm.Provider) (*Pipeline, error) {
	splitter, err := split.New(split.Config{
		Mode:         split.Mode(cfg.Split.Mode),
		ChunkSize:    cfg.Split.ChunkSize,
		ChunkOverlap: cfg.Split.ChunkOverlap,
	})
	if err != nil {
		return nil, err
	}

	log := logrus.WithField("run_id", uuid.New().String()[:8])

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	var respCache cache.Cache
	if cfg.Cache.Enabled {
		respCache = cache.NewLayeredCache(
			time.Duration(cfg.Cache.MemoryTTL)*time.Minute,
			cfg.Cache.Dir,
			time.Duration(cfg.Cache.DiskTTLDay)*24*time.Hour,
		)
	}

	return &Pipeline{
		cfg:       cfg,
		provider:  provider,
		splitter:  splitter,
		extractor: extract.New(provider, limiter, respCache, *cfg, log),
		aligner:   align.New(provider, limiter, *cfg, log),
		writer:    NewWriter(cfg.Output.Dir, cfg.Align.WithConfidence),
		log:       log,
	}, nil
}

// Run processes the Chinese and English documents and writes both
// CSVs. The output directory is probed before any LLM traffic.
func (p *Pipeline) Run(ctx context.Context, zhPath, enPath string) (*RunResult, error) {
	zhPath = p.resolveInput(zhPath)
	enPath = p.resolveInput(enPath)

	// Fail fast on an unwritable destination before paying for tokens.
	if err := p.writer.EnsureOutputDir(); err != nil {
		return nil, err
	}

	zhTerms, err := p.processDocument(ctx, zhPath, model.LangChinese)
	if err != nil {
		return nil, err
	}
	enTerms, err := p.processDocument(ctx, enPath, model.LangEnglish)
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"zh_terms": len(zhTerms),
		"en_terms": len(enTerms),
	}).Info("aligning terms")

	pairs, err := p.aligner.Align(ctx, termTexts(zhTerms), termTexts(enTerms))
	if err != nil {
		return nil, err
	}

	timestamp := Timestamp(time.Now())

	allTerms := append(append([]model.Term{}, zhTerms...), enTerms...)
	termsFile, err := p.writer.WriteTerms(allTerms, timestamp)
	if err != nil {
		return nil, err
	}

	glossaryFile, err := p.writer.WriteGlossary(pairs, timestamp)
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"terms_file":    termsFile,
		"glossary_file": glossaryFile,
		"pairs":         len(pairs),
	}).Info("run complete")

	return &RunResult{
		TermsFile:    termsFile,
		GlossaryFile: glossaryFile,
		ZHTerms:      len(zhTerms),
		ENTerms:      len(enTerms),
		Pairs:        len(pairs),
	}, nil
}

// processDocument loads, cleans, splits and extracts one document.
func (p *Pipeline) processDocument(ctx context.Context, path string, lang model.Language) ([]model.Term, error) {
	doc, err := loader.Load(path, lang)
	if err != nil {
		return nil, err
	}

	cleaned := split.CleanText(doc.Text)
	chunks, err := p.splitter.Split(cleaned)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, model.NewError(model.InputError, "document has no usable text after cleaning: %s", path)
	}

	p.log.WithFields(logrus.Fields{
		"document": filepath.Base(path),
		"language": lang,
		"chunks":   len(chunks),
	}).Debug("document split")

	return p.extractor.ExtractDocument(ctx, doc, chunks)
}

// resolveInput resolves a document path against the input directory
// unless it is already absolute.
func (p *Pipeline) resolveInput(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.cfg.Input.Dir, path)
}

func termTexts(terms []model.Term) []string {
	texts := make([]string, len(terms))
	for i, t := range terms {
		texts[i] = t.Text
	}
	return texts
}
