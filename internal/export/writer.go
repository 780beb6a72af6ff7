// Package export builds the plain-text download artifacts offered for a
// conversion: the full extracted text and, for long results, a head/tail
// summary.
package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Summary thresholds: a summary is offered only when the text is longer than
// SummaryMinChars, and it keeps the first SummaryHeadChars and the last
// SummaryTailChars characters around a truncation notice.
const (
	SummaryMinChars  = 1000
	SummaryHeadChars = 500
	SummaryTailChars = 300
)

const truncationNotice = "\n\n[... content truncated for summary ...]\n\n"

// Writer writes a text artifact to w.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a Writer that writes plain text to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteText writes the extracted text.
func (w *Writer) WriteText(text string) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = io.WriteString(w.w, text)
	return w.err
}

// Error returns the first write error encountered, if any.
func (w *Writer) Error() error {
	return w.err
}

// DownloadName derives the attachment name for the full extracted text:
// extracted_<original without .pptx>.txt.
func DownloadName(uploadName string) string {
	return fmt.Sprintf("extracted_%s.txt", baseName(uploadName))
}

// SummaryName derives the attachment name for the summary artifact.
func SummaryName(uploadName string) string {
	return fmt.Sprintf("summary_%s.txt", baseName(uploadName))
}

func baseName(uploadName string) string {
	return strings.TrimSuffix(uploadName, ".pptx")
}

// WantSummary reports whether the extracted text is long enough to offer a
// summary artifact.
func WantSummary(text string) bool {
	return utf8.RuneCountInString(text) > SummaryMinChars
}

// Summary returns the head and tail of the text joined by a truncation
// notice. Callers should gate on WantSummary first.
func Summary(text string) string {
	runes := []rune(text)
	head := runes[:min(SummaryHeadChars, len(runes))]
	tail := runes[max(0, len(runes)-SummaryTailChars):]
	return string(head) + truncationNotice + string(tail)
}
