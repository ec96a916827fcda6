package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractWithPdfcpu extracts page content streams into a temp dir and
// stitches the per-page text files back together in page order.
func extractWithPdfcpu(path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "extract_terms_pdf_")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	conf := pdfcpumodel.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, tmpDir, nil, conf); err != nil {
		return "", fmt.Errorf("extract PDF content: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("read extracted content dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sortByPage(names)

	var all strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			continue
		}
		if all.Len() > 0 {
			all.WriteString("\n\n")
		}
		all.Write(data)
	}

	return all.String(), nil
}

var pageNumRe = regexp.MustCompile(`(\d+)\.txt$`)

// sortByPage orders extracted page files by their numeric page suffix.
// Lexicographic order would put page 10 before page 2.
func sortByPage(names []string) {
	sort.Slice(names, func(i, j int) bool {
		ni, iok := pageNumber(names[i])
		nj, jok := pageNumber(names[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok // numbered pages first, extras at the end
		}
		return names[i] < names[j]
	})
}

func pageNumber(name string) (int, bool) {
	m := pageNumRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
