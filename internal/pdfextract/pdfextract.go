// Package pdfextract is the external PDF-extraction collaborator: it
// validates a PDF's binary shape, reads its page count/dimensions, and
// extracts positioned text spans for the classifier to consume. Native
// PDF libraries are not always reentrant, so extraction runs through a
// single-slot serialized worker.
package pdfextract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	rpdf "rsc.io/pdf"

	"github.com/screenplaykit/screenplay/internal/model"
)

const pdfMagic = "%PDF"

// PDFError reports a failure inside the extraction collaborator: a bad
// file on disk, a corrupt PDF structure, or an extraction timeout.
type PDFError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PDFError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf error: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("pdf error: %s: %s", e.Path, e.Reason)
}

func (e *PDFError) Unwrap() error { return e.Err }

// Limits bounds the PDF binary validation check.
type Limits struct {
	MinSizeBytes int64
	MaxSizeBytes int64
}

// ValidateBytes rejects PDFs outside the configured size bounds or
// without a %PDF magic header.
func ValidateBytes(data []byte, path string, limits Limits) error {
	size := int64(len(data))
	if size < limits.MinSizeBytes {
		return &PDFError{Path: path, Reason: fmt.Sprintf("file too small (%d bytes)", size)}
	}
	if size > limits.MaxSizeBytes {
		return &PDFError{Path: path, Reason: fmt.Sprintf("file too large (%d bytes)", size)}
	}
	if len(data) < 4 || !bytes.Equal(data[:4], []byte(pdfMagic)) {
		return &PDFError{Path: path, Reason: "missing %PDF magic header"}
	}
	return nil
}

// Worker serializes calls to the underlying PDF libraries behind one
// semaphore slot, with bounded retry on transient file I/O.
type Worker struct {
	mu       sync.Mutex
	attempts uint
	delay    time.Duration
}

// NewWorker returns a serialized extraction worker with the given retry
// policy.
func NewWorker(attempts uint, delay time.Duration) *Worker {
	if attempts == 0 {
		attempts = 1
	}
	return &Worker{attempts: attempts, delay: delay}
}

// Extract validates, opens, and extracts positioned spans from the PDF
// at path, returning one PageInput per page with default dimensions
// applied where pdfcpu reports none.
func (w *Worker) Extract(ctx context.Context, path string, limits Limits, defaultWidth, defaultHeight float64) ([]model.PageInput, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var pages []model.PageInput
	err := retry.Do(
		func() error {
			p, extractErr := extractOnce(path, limits, defaultWidth, defaultHeight)
			if extractErr != nil {
				return extractErr
			}
			pages = p
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(w.attempts),
		retry.Delay(w.delay),
	)
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func extractOnce(path string, limits Limits, defaultWidth, defaultHeight float64) ([]model.PageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PDFError{Path: path, Reason: "read failed", Err: err}
	}
	if err := ValidateBytes(data, path, limits); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &PDFError{Path: path, Reason: "open failed", Err: err}
	}
	defer f.Close()

	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, &PDFError{Path: path, Reason: "page count failed", Err: err}
	}

	doc, err := rpdf.NewReader(f, int64(len(data)))
	if err != nil {
		return nil, &PDFError{Path: path, Reason: "pdf structure unreadable", Err: err}
	}

	pages := make([]model.PageInput, 0, pageCount)
	for n := 1; n <= pageCount; n++ {
		page := doc.Page(n)
		width, height := defaultWidth, defaultHeight
		content := page.Content()

		spans := make([]model.Span, 0, len(content.Text))
		for _, t := range content.Text {
			spans = append(spans, model.Span{
				Text:     t.S,
				X:        t.X,
				Y:        normalizeY(t.Y, height),
				Width:    t.W,
				Height:   fontLineHeight(t.FontSize),
				FontSize: t.FontSize,
				Font:     t.Font,
			})
		}

		pages = append(pages, model.PageInput{
			PageNumber: n,
			Width:      width,
			Height:     height,
			TextItems:  spans,
		})
	}

	return pages, nil
}

// normalizeY converts rsc.io/pdf's bottom-left-origin Y into the
// top-left-origin convention the classifier expects.
func normalizeY(bottomLeftY, pageHeight float64) float64 {
	return pageHeight - bottomLeftY
}

func fontLineHeight(fontSize float64) float64 {
	if fontSize == 0 {
		return 12
	}
	return fontSize
}
