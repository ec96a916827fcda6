package loader

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts text from PDF files. It tries the pure-Go reader
// first and falls back to content-stream extraction for documents the
// reader can't decode (unusual encodings, generator quirks).
type PDFParser struct{}

// NewPDFParser creates a PDF parser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse returns the concatenated plain text of every page.
func (p *PDFParser) Parse(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	text, err := extractPages(content)
	if err != nil || strings.TrimSpace(text) == "" {
		fallback, fbErr := extractWithPdfcpu(path)
		if fbErr == nil && strings.TrimSpace(fallback) != "" {
			return fallback, nil
		}
		if err != nil {
			return "", err
		}
	}

	return text, nil
}

// extractPages pulls plain text page by page with the pure-Go reader.
func extractPages(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		buf.WriteString(text)
		if i < numPages {
			buf.WriteByte('\n')
		}
	}

	return buf.String(), nil
}
