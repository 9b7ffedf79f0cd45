// Package extract wraps PDF and DOCX text extraction behind the adapter
// contract the analyzers rely on: given a file path, return plain text, or
// an empty string on any failure. It never reports an error to the caller;
// downstream scorers treat empty text as valid-but-empty input.
package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-matcher-backend/internal/shared/telemetry"
)

// Text extracts plain text from the file at path. Corrupt files, unsupported
// formats, and missing files all yield "".
func Text(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		telemetry.Warn("extract.read_failed", map[string]any{"path": path, "err": err.Error()})
		return ""
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		text, err = extractDOCX(data)
	default:
		text, err = extractPDF(data)
	}
	if err != nil {
		telemetry.Warn("extract.parse_failed", map[string]any{"path": path, "err": err.Error()})
		return ""
	}
	return text
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}
