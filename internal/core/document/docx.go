package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"ai-doc-assistant/pkg/apperror/status"
)

// extractDOCX reads the main document part of a .docx archive paragraph by
// paragraph, preserving original ordering. Returns the paragraph count.
//
// A docx file is a zip whose word/document.xml carries text runs in <w:t>
// elements grouped under <w:p> paragraphs.
func extractDOCX(raw []byte) (string, int, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", 0, status.New(status.InvalidStructure, fmt.Errorf("docx open: %w", err))
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", 0, status.New(status.InvalidStructure, fmt.Errorf("docx document part: %w", err))
			}
			break
		}
	}
	if docXML == nil {
		return "", 0, status.New(status.InvalidStructure, fmt.Errorf("docx missing word/document.xml"))
	}
	defer docXML.Close()

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)

	dec := xml.NewDecoder(docXML)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, status.New(status.InvalidStructure, fmt.Errorf("docx xml: %w", err))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if p := strings.TrimSpace(current.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), len(paragraphs), nil
}
