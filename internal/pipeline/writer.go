package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/termtools/extract-terms/internal/model"
)

const (
	termsFilePrefix    = "technical_terms"
	glossaryFilePrefix = "aligned_glossary"
	timestampLayout    = "20060102_150405"
)

// Writer persists the term and glossary CSVs. Rows are buffered in
// memory and written in one shot, so a failed run never leaves a
// partially written file behind.
type Writer struct {
	dir            string
	withConfidence bool
}

// NewWriter creates a writer rooted at the output directory.
func NewWriter(dir string, withConfidence bool) *Writer {
	return &Writer{dir: dir, withConfidence: withConfidence}
}

// EnsureOutputDir creates the output directory if missing and probes
// it for writability. Called before any network traffic: an unwritable
// destination should fail the run before a single token is paid for.
func (w *Writer) EnsureOutputDir() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return model.WrapError(model.PathError, err, "create output directory %s", w.dir)
	}

	probe, err := os.CreateTemp(w.dir, ".write_probe_*")
	if err != nil {
		return model.WrapError(model.PathError, err, "output directory not writable: %s", w.dir)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	return nil
}

// Timestamp returns the run timestamp used in output filenames.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// WriteTerms writes technical_terms_<timestamp>.csv with one row per
// extracted term: term, language, source_document.
func (w *Writer) WriteTerms(terms []model.Term, timestamp string) (string, error) {
	records := make([][]string, 0, len(terms)+1)
	records = append(records, []string{"term", "language", "source_document"})
	for _, t := range terms {
		records = append(records, []string{t.Text, string(t.Language), t.SourceDocument})
	}

	return w.writeCSV(fmt.Sprintf("%s_%s.csv", termsFilePrefix, timestamp), records)
}

// WriteGlossary writes aligned_glossary_<timestamp>.csv with one row
// per aligned pair: zh_term, en_term and, when configured, confidence.
func (w *Writer) WriteGlossary(pairs []model.AlignedPair, timestamp string) (string, error) {
	header := []string{"zh_term", "en_term"}
	if w.withConfidence {
		header = append(header, "confidence")
	}

	records := make([][]string, 0, len(pairs)+1)
	records = append(records, header)
	for _, p := range pairs {
		row := []string{p.ZH, p.EN}
		if w.withConfidence {
			row = append(row, p.Confidence)
		}
		records = append(records, row)
	}

	return w.writeCSV(fmt.Sprintf("%s_%s.csv", glossaryFilePrefix, timestamp), records)
}

func (w *Writer) writeCSV(name string, records [][]string) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(records); err != nil {
		return "", model.WrapError(model.PathError, err, "encode %s", name)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", model.WrapError(model.PathError, err, "write %s", path)
	}

	return path, nil
}
