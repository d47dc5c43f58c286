package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader decodes one statement file format into raw delimited text for the
// Parser. Formats register by file extension.
type Reader interface {
	ReadText(r io.Reader) (string, error)
	Extensions() []string
}

// Registry holds readers keyed by lowercase file extension.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate extension.
func (r *Registry) Register(reader Reader) {
	for _, ext := range reader.Extensions() {
		key := strings.ToLower(ext)
		if _, ok := r.readers[key]; ok {
			panic("duplicate reader extension: " + key)
		}
		r.readers[key] = reader
	}
}

// Get returns the reader for a file extension (with or without the leading
// dot), or nil.
func (r *Registry) Get(ext string) Reader {
	return r.readers[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TextReader{})
	r.Register(&WorkbookReader{})
	return r
}

// TextReader passes delimited text files through unchanged.
type TextReader struct{}

// Extensions returns the plain-text statement extensions.
func (t *TextReader) Extensions() []string { return []string{"csv", "txt", "tsv"} }

// ReadText reads the whole file as UTF-8 text.
func (t *TextReader) ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading statement text: %w", err)
	}
	return string(data), nil
}

// WorkbookReader flattens the first sheet of a spreadsheet export into
// tab-delimited text so the same tokenizer handles both formats.
type WorkbookReader struct{}

// Extensions returns the spreadsheet statement extensions.
func (w *WorkbookReader) Extensions() []string { return []string{"xlsx", "xlsm"} }

// ReadText opens the workbook and joins first-sheet cells with tabs.
func (w *WorkbookReader) ReadText(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
