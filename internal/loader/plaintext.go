package loader

import (
	"fmt"
	"os"
)

// PlainTextParser reads pre-extracted .txt documents as-is.
type PlainTextParser struct{}

// NewPlainTextParser creates a plain text parser.
func NewPlainTextParser() *PlainTextParser {
	return &PlainTextParser{}
}

// Parse returns the file content.
func (p *PlainTextParser) Parse(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}
