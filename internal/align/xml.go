package align

import (
	"regexp"
	"strings"

	"github.com/termtools/extract-terms/internal/model"
)

var (
	pairRe       = regexp.MustCompile(`(?s)<pair>(.*?)</pair>`)
	zhRe         = regexp.MustCompile(`(?s)<zh>(.*?)</zh>`)
	enRe         = regexp.MustCompile(`(?s)<en>(.*?)</en>`)
	confidenceRe = regexp.MustCompile(`(?s)<confidence>(.*?)</confidence>`)
)

// ParsePairs pulls the <pair> entries out of one alignment response.
// Pairs missing either side are skipped; membership and conflict
// checks against the input lists happen in the caller.
func ParsePairs(response string) []model.AlignedPair {
	var pairs []model.AlignedPair

	for _, m := range pairRe.FindAllStringSubmatch(response, -1) {
		body := m[1]

		zh := firstMatch(zhRe, body)
		en := firstMatch(enRe, body)
		if zh == "" || en == "" {
			continue
		}

		pairs = append(pairs, model.AlignedPair{
			ZH:         zh,
			EN:         en,
			Confidence: firstMatch(confidenceRe, body),
		})
	}

	return pairs
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
