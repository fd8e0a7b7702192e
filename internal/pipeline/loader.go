package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skipgram/internal/domain"
)

// LoadDocuments reads the .txt corpus files matched by the glob
// patterns; a pattern that matches nothing is tried as a literal path.
// With perLine set every non-blank line becomes its own document, the
// shape sentence-per-line corpora want; otherwise one file is one
// document.
func LoadDocuments(patterns []string, perLine bool) ([]domain.Document, error) {
	var docs []domain.Document
	for _, p := range patterns {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, fmt.Errorf("read corpus file: %w", err)
			}
			if perLine {
				for i, line := range strings.Split(string(data), "\n") {
					line = strings.TrimSpace(line)
					if line == "" {
						continue
					}
					docs = append(docs, domain.Document{
						ID:      fmt.Sprintf("%s:%d", filepath.Base(m), i+1),
						Path:    m,
						Content: line,
					})
				}
				continue
			}
			docs = append(docs, domain.Document{ID: filepath.Base(m), Path: m, Content: string(data)})
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .txt corpus files found")
	}
	return docs, nil
}
