package document

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"ai-doc-assistant/pkg/apperror/status"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		ext  string
		want Format
		ok   bool
	}{
		{".pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{".docx", FormatDOCX, true},
		{".txt", FormatTXT, true},
		{".json", FormatJSON, true},
		{".exe", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.ext)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseFormat(%q) = %v, %v", tc.ext, got, err)
		}
		if !tc.ok && !status.Is(err, status.UnsupportedFormat) {
			t.Errorf("ParseFormat(%q): expected UnsupportedFormat, got %v", tc.ext, err)
		}
	}
}

func TestNormalizeTXTRoundTrip(t *testing.T) {
	text := "Hello, world.\nSecond line with café."
	doc, err := Normalize([]byte(text), FormatTXT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != text {
		t.Errorf("text changed: %q", doc.Text)
	}
	if doc.SourceFormat != FormatTXT {
		t.Errorf("unexpected format %q", doc.SourceFormat)
	}
	if doc.Metadata["source_format"] != "txt" {
		t.Errorf("metadata missing source_format: %v", doc.Metadata)
	}
}

func TestNormalizeTXTLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid as standalone UTF-8.
	raw := []byte{'c', 'a', 'f', 0xE9}
	doc, err := Normalize(raw, FormatTXT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "café" {
		t.Errorf("expected café, got %q", doc.Text)
	}
}

func TestNormalizeTXTRejectsBinary(t *testing.T) {
	_, err := Normalize([]byte{'a', 0x00, 'b'}, FormatTXT)
	if !status.Is(err, status.EncodingFailed) {
		t.Fatalf("expected EncodingFailed, got %v", err)
	}
}

func TestNormalizeEmptyDocument(t *testing.T) {
	for _, raw := range [][]byte{[]byte(""), []byte("   \n\t  ")} {
		_, err := Normalize(raw, FormatTXT)
		if !status.Is(err, status.EmptyDocument) {
			t.Errorf("Normalize(%q): expected EmptyDocument, got %v", raw, err)
		}
	}
}

func TestNormalizeJSONDocumentOrder(t *testing.T) {
	raw := []byte(`{"title": "First", "items": ["second", {"nested": "third"}], "count": 3}`)
	doc, err := Normalize(raw, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "First\nsecond\nthird"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
	if doc.Metadata["text_fields"] != "3" {
		t.Errorf("expected 3 text fields, got %v", doc.Metadata)
	}
}

func TestNormalizeJSONKeysAreNotText(t *testing.T) {
	_, err := Normalize([]byte(`{"only_numbers": 42, "flag": true}`), FormatJSON)
	if !status.Is(err, status.InvalidStructure) {
		t.Fatalf("expected InvalidStructure, got %v", err)
	}
}

func TestNormalizeJSONMalformed(t *testing.T) {
	_, err := Normalize([]byte(`{"broken":`), FormatJSON)
	if !status.Is(err, status.InvalidStructure) {
		t.Fatalf("expected InvalidStructure, got %v", err)
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNormalizeDOCX(t *testing.T) {
	raw := buildDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	doc, err := Normalize(raw, FormatDOCX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "First paragraph.\nSecond paragraph."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
	if doc.Metadata["paragraphs"] != "2" {
		t.Errorf("expected 2 paragraphs, got %v", doc.Metadata)
	}
}

func TestNormalizeDOCXNotAZip(t *testing.T) {
	_, err := Normalize([]byte("plain text pretending"), FormatDOCX)
	if !status.Is(err, status.InvalidStructure) {
		t.Fatalf("expected InvalidStructure, got %v", err)
	}
}

func TestNormalizeDOCXMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	_, _ = w.Write([]byte("<styles/>"))
	_ = zw.Close()

	_, err := Normalize(buf.Bytes(), FormatDOCX)
	if !status.Is(err, status.InvalidStructure) {
		t.Fatalf("expected InvalidStructure, got %v", err)
	}
}

func TestNormalizePDFGarbage(t *testing.T) {
	_, err := Normalize([]byte("not a pdf at all"), FormatPDF)
	if err == nil {
		t.Fatal("expected error for garbage pdf bytes")
	}
}

func TestSanitizeStripsBOMAndControls(t *testing.T) {
	raw := []byte("\uFEFFline one\x07\nline\ttwo")
	doc, err := Normalize(raw, FormatTXT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.ContainsRune(doc.Text, '\uFEFF') || strings.ContainsRune(doc.Text, 0x07) {
		t.Errorf("control characters survived: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "line\ttwo") {
		t.Errorf("tab should survive: %q", doc.Text)
	}
}
