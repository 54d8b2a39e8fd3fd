package document

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"ai-doc-assistant/pkg/apperror/status"
)

// Format identifies a supported upload format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
)

// ParseFormat maps a lowercase file extension (without dot) to a Format.
func ParseFormat(ext string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(ext, "."))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatTXT:
		return FormatTXT, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", status.New(status.UnsupportedFormat, fmt.Errorf("unsupported format %q", ext))
	}
}

// Document is the normalized form of one uploaded file. Immutable after
// creation; a new upload produces a new Document.
type Document struct {
	Text         string
	SourceFormat Format
	Metadata     map[string]string
}

// Normalize turns raw uploaded bytes of a declared format into a Document.
// Zero extractable characters is a distinct failure, not an empty success.
func Normalize(raw []byte, format Format) (*Document, error) {
	var (
		text  string
		units int
		err   error
	)

	switch format {
	case FormatPDF:
		text, units, err = extractPDF(raw)
	case FormatDOCX:
		text, units, err = extractDOCX(raw)
	case FormatTXT:
		text, err = decodeText(raw)
		units = 1
	case FormatJSON:
		text, units, err = extractJSON(raw)
	default:
		return nil, status.New(status.UnsupportedFormat, fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		return nil, err
	}

	text = sanitizePrintable(text)
	if text == "" {
		return nil, status.New(status.EmptyDocument, fmt.Errorf("no extractable text in %s input", format))
	}

	meta := map[string]string{
		"source_format": string(format),
		"chars":         strconv.Itoa(utf8.RuneCountInString(text)),
	}
	switch format {
	case FormatPDF:
		meta["pages"] = strconv.Itoa(units)
	case FormatDOCX:
		meta["paragraphs"] = strconv.Itoa(units)
	case FormatJSON:
		meta["text_fields"] = strconv.Itoa(units)
	}

	return &Document{
		Text:         text,
		SourceFormat: format,
		Metadata:     meta,
	}, nil
}

// decodeText decodes plain text, trying UTF-8 first and falling back to
// Latin-1. NUL bytes mark binary data and are rejected.
func decodeText(raw []byte) (string, error) {
	for _, b := range raw {
		if b == 0x00 {
			return "", status.New(status.EncodingFailed, fmt.Errorf("undecodable bytes: NUL in text input"))
		}
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// sanitizePrintable removes BOM and non-printable runes, keeping common whitespace.
func sanitizePrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\uFEFF' {
			continue
		}
		if r == unicode.ReplacementChar {
			continue
		}
		if r == '\n' || r == '\t' || r == '\r' {
			// keep
		} else if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
