package document

import (
	"bytes"
	"fmt"
	"strings"

	"ai-doc-assistant/pkg/apperror/status"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts text page by page, joined with blank lines so page
// boundaries survive as paragraph separators. Returns the page count.
func extractPDF(raw []byte) (string, int, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", 0, status.New(status.InvalidStructure, fmt.Errorf("pdf open: %w", err))
	}

	var parts []string
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not invalidate the document.
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, "\n\n"), pages, nil
}
