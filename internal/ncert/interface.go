package ncert

import "context"

// Checker is the PDF availability check used by ncertctl.
type Checker interface {
	CheckPDF(ctx context.Context, url string) (*PDFStatus, error)
	CheckChapters(ctx context.Context, targets []Target) ([]PDFStatus, error)
}

var _ Checker = (*Client)(nil)
