// Package doctext extracts plain text from uploaded proposal documents.
// It is a boundary service: whatever goes wrong inside, the caller receives
// either usable text or a human-readable failure message, never an error.
package doctext

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// maxTextRunes bounds the extracted text handed to the relevance matcher.
const maxTextRunes = 800

// Failure messages surfaced in place of extracted text.
const (
	msgUnsupported = "Unsupported file type."
	msgUnreadable  = "Could not read any text from this document."
)

// FromBytes extracts plain text from the document bytes, dispatching on the
// filename extension. The result is truncated to a bounded length; failures
// come back as a readable message rather than an error.
func FromBytes(data []byte, filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return pdfText(data)
	case ".xlsx", ".xlsm", ".xls":
		return excelText(data)
	case ".txt":
		return truncate(string(data))
	default:
		return msgUnsupported
	}
}

// excelText flattens every worksheet into lines of space-joined cells, in
// sheet order. Legacy binary .xls workbooks fail to open and come back as
// unreadable.
func excelText(data []byte) string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return msgUnreadable
	}
	defer f.Close()

	var b strings.Builder

	for _, sheet := range f.GetSheetList() {
		rows, rowsErr := f.GetRows(sheet)
		if rowsErr != nil {
			continue
		}

		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return msgUnreadable
	}

	return truncate(extracted)
}

// pdfText pulls the text layer out of a PDF. The underlying parser panics
// on some malformed files, so the whole call is guarded.
func pdfText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = msgUnreadable
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return msgUnreadable
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return msgUnreadable
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return msgUnreadable
	}

	extracted := strings.TrimSpace(buf.String())
	if extracted == "" {
		return msgUnreadable
	}

	return truncate(extracted)
}

// truncate caps the text at the bounded length on a rune boundary.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTextRunes {
		return text
	}
	return string(runes[:maxTextRunes])
}
