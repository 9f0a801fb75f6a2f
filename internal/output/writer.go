// Package output appends composed prompts to the prompt file and reads
// them back for display.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ponymatrix/internal/logging"
	"ponymatrix/internal/prompt"
)

// Format selects the block layout written to the prompt file.
type Format string

const (
	// FormatFenced writes labeled, fenced positive and negative sections.
	FormatFenced Format = "fenced"
	// FormatBreak writes the positive prompt, a BREAK line, then the negative prompt.
	FormatBreak Format = "break"
)

// Markers used by both formats.
const (
	headerPrefix  = "# Prompt for: "
	breakToken    = "BREAK"
	fence         = "```"
	positiveLabel = "Positive Prompt:"
	negativeLabel = "Negative Prompt:"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatFenced, FormatBreak:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: fenced, break)", s)
	}
}

// Render formats one block, trailing blank line included.
func Render(rec prompt.Record, format Format) string {
	var b strings.Builder
	b.WriteString(headerPrefix + rec.Metadata + "\n")
	switch format {
	case FormatBreak:
		b.WriteString(rec.Positive + "\n")
		b.WriteString(breakToken + "\n")
		b.WriteString(rec.Negative + "\n")
	default:
		b.WriteString(positiveLabel + "\n" + fence + "\n")
		b.WriteString(rec.Positive + "\n" + fence + "\n")
		b.WriteString(negativeLabel + "\n" + fence + "\n")
		b.WriteString(rec.Negative + "\n" + fence + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// Writer appends prompt blocks to a file. The file is opened and closed
// on every append so no handle is held while the session waits on input.
type Writer struct {
	path   string
	format Format
}

// NewWriter returns a writer for path.
func NewWriter(path string, format Format) *Writer {
	return &Writer{path: path, format: format}
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// Format returns the block format in use.
func (w *Writer) Format() Format {
	return w.format
}

// Append writes one block. The file is created if absent and never
// truncated. The block goes out in a single Write call.
func (w *Writer) Append(rec prompt.Record) (err error) {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	block := Render(rec, w.format)
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("failed to append prompt: %w", err)
	}

	logging.Get(logging.CategoryOutput).Debug("appended %d bytes for %q to %s", len(block), rec.Metadata, w.path)
	return nil
}
