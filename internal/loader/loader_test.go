package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termtools/extract-terms/internal/model"
)

func TestParserFor(t *testing.T) {
	p, err := ParserFor("manual_zh.pdf")
	require.NoError(t, err)
	assert.IsType(t, &PDFParser{}, p)

	p, err = ParserFor("NOTES.TXT")
	require.NoError(t, err)
	assert.IsType(t, &PlainTextParser{}, p)
}

func TestParserFor_Unsupported(t *testing.T) {
	_, err := ParserFor("glossary.docx")
	require.Error(t, err)
	assert.Equal(t, model.InputError, model.KindOf(err))
}

func TestLoad_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("  呼吸机用于患者通气。\n"), 0644))

	doc, err := Load(path, model.LangChinese)
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, model.LangChinese, doc.Language)
	assert.Equal(t, "呼吸机用于患者通气。", doc.Text)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), model.LangEnglish)
	require.Error(t, err)
	assert.Equal(t, model.InputError, model.KindOf(err))
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir(), model.LangEnglish)
	require.Error(t, err)
	assert.Equal(t, model.InputError, model.KindOf(err))
}

func TestSortByPage(t *testing.T) {
	names := []string{
		"manual_Content_page_10.txt",
		"manual_Content_page_2.txt",
		"manual_Content_page_1.txt",
		"manual_Content_page_21.txt",
		"manual_Content_page_3.txt",
	}

	sortByPage(names)

	assert.Equal(t, []string{
		"manual_Content_page_1.txt",
		"manual_Content_page_2.txt",
		"manual_Content_page_3.txt",
		"manual_Content_page_10.txt",
		"manual_Content_page_21.txt",
	}, names)
}

func TestLoad_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n\n  "), 0644))

	_, err := Load(path, model.LangEnglish)
	require.Error(t, err)
	assert.Equal(t, model.InputError, model.KindOf(err))
}
