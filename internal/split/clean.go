// Package split cleans document text and partitions it into bounded,
// ordered chunks for per-chunk LLM extraction.
package split

import (
	"regexp"
	"strings"
)

// Table-of-contents shapes that carry no extractable terminology:
// numbered entries, chapter headings used as TOC rows, lone page numbers.
var tocLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\..*$`),
	regexp.MustCompile(`^\d+\.\d+.*$`),
	regexp.MustCompile(`^第[一二三四五六七八九十]+[章节].*$`),
	regexp.MustCompile(`^目录$`),
	regexp.MustCompile(`^Table of Contents$`),
	regexp.MustCompile(`^\s*\d+\s*$`),
}

var (
	tocStartRe = regexp.MustCompile(`^(目录|Table of Contents)`)
	tocEndRe   = regexp.MustCompile(`^(第[一二三四五六七八九十]+[章节]|1\.|Chapter)`)

	// "Overview ........ 12": keep the page number, drop the leader.
	dotLeaderPageRe = regexp.MustCompile(`\s*\.{2,}\s*(\d+[-\d]*)$`)
	dotLeaderRe     = regexp.MustCompile(`\s*\.{2,}\s*`)

	blankRunRe = regexp.MustCompile(`\n\s*\n`)
)

// CleanText strips table-of-contents blocks, TOC-shaped lines and dot
// leaders from extracted document text, and collapses blank-line runs.
// PDF extractors reproduce the TOC as ordinary text; feeding it to the
// extractor just wastes tokens on headings and page numbers.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	inTOC := false
	for _, line := range lines {
		if tocStartRe.MatchString(line) {
			inTOC = true
			continue
		}
		if inTOC && tocEndRe.MatchString(line) {
			inTOC = false
		}
		if inTOC {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		isTOCLine := false
		for _, re := range tocLinePatterns {
			if re.MatchString(trimmed) {
				isTOCLine = true
				break
			}
		}
		if isTOCLine {
			continue
		}

		trimmed = dotLeaderPageRe.ReplaceAllString(trimmed, " $1")
		trimmed = dotLeaderRe.ReplaceAllString(trimmed, " ")
		cleaned = append(cleaned, strings.TrimSpace(trimmed))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}
