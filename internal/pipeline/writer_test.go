package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termtools/extract-terms/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	assert.Equal(t, "20250314_092653", ts)
}

func TestEnsureOutputDir_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	w := NewWriter(dir, false)

	require.NoError(t, w.EnsureOutputDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureOutputDir_Unwritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind root")
	}

	dir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	w := NewWriter(dir, false)
	err := w.EnsureOutputDir()
	require.Error(t, err)
	assert.Equal(t, model.PathError, model.KindOf(err))
}

func TestWriteTerms(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false)

	terms := []model.Term{
		{Text: "呼吸机", Language: model.LangChinese, SourceDocument: "manual_zh.pdf"},
		{Text: "Ventilator", Language: model.LangEnglish, SourceDocument: "manual_en.pdf"},
	}

	path, err := w.WriteTerms(terms, "20250314_092653")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "technical_terms_20250314_092653.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"term", "language", "source_document"}, records[0])
	assert.Equal(t, []string{"呼吸机", "zh", "manual_zh.pdf"}, records[1])
	assert.Equal(t, []string{"Ventilator", "en", "manual_en.pdf"}, records[2])
}

func TestWriteGlossary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false)

	pairs := []model.AlignedPair{
		{ZH: "呼吸机", EN: "Ventilator"},
		{ZH: "潮气量", EN: ""},
	}

	path, err := w.WriteGlossary(pairs, "20250314_092653")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aligned_glossary_20250314_092653.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"zh_term", "en_term"}, records[0])
	assert.Equal(t, []string{"呼吸机", "Ventilator"}, records[1])
	assert.Equal(t, []string{"潮气量", ""}, records[2])
}

func TestWriteGlossary_WithConfidence(t *testing.T) {
	w := NewWriter(t.TempDir(), true)

	pairs := []model.AlignedPair{
		{ZH: "肿瘤", EN: "Tumor", Confidence: "0.95"},
	}

	path, err := w.WriteGlossary(pairs, "20250314_092653")
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"zh_term", "en_term", "confidence"}, records[0])
	assert.Equal(t, []string{"肿瘤", "Tumor", "0.95"}, records[1])
}

func TestWriteTerms_FieldsWithCommasAreQuoted(t *testing.T) {
	w := NewWriter(t.TempDir(), false)

	terms := []model.Term{
		{Text: "tidal volume, expiratory", Language: model.LangEnglish, SourceDocument: "doc.pdf"},
	}

	path, err := w.WriteTerms(terms, "20250314_092653")
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "tidal volume, expiratory", records[1][0])
}
