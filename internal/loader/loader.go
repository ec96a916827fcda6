// Package loader reads source documents and extracts their raw text.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/termtools/extract-terms/internal/model"
)

// Parser extracts plain text from one document format.
type Parser interface {
	// Parse returns the document's text content.
	Parse(path string) (string, error)
}

// ParserFor picks a parser by file extension.
func ParserFor(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFParser(), nil
	case ".txt":
		return NewPlainTextParser(), nil
	default:
		return nil, model.NewError(model.InputError, "unsupported document type: %s", path)
	}
}

// Load reads and parses the document at path, tagging it with lang.
// A missing, unreadable or textless document is an InputError.
func Load(path string, lang model.Language) (*model.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, model.WrapError(model.InputError, err, "document not accessible: %s", path)
	}
	if info.IsDir() {
		return nil, model.NewError(model.InputError, "document is a directory: %s", path)
	}

	parser, err := ParserFor(path)
	if err != nil {
		return nil, err
	}

	text, err := parser.Parse(path)
	if err != nil {
		return nil, model.WrapError(model.InputError, err, "parse document: %s", path)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.NewError(model.InputError, "no text content in document: %s", path)
	}

	return &model.Document{
		Path:     path,
		Language: lang,
		Text:     text,
	}, nil
}
