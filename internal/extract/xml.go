package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	termRe        = regexp.MustCompile(`(?s)<term>(.*?)</term>`)
	terminologyRe = regexp.MustCompile(`<terminology>`)
)

// ParseTerms pulls the <term> entries out of one extraction response,
// deduplicated within the chunk and sorted for determinism. A response
// with a <terminology> block but no terms is a valid empty result; a
// response with neither is malformed.
func ParseTerms(response string) ([]string, error) {
	matches := termRe.FindAllStringSubmatch(response, -1)

	if len(matches) == 0 {
		if terminologyRe.MatchString(response) {
			return nil, nil
		}
		return nil, fmt.Errorf("malformed extraction response: no terminology block found")
	}

	seen := make(map[string]bool, len(matches))
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		term := strings.TrimSpace(m[1])
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return terms, nil
}
