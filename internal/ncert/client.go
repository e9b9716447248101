package ncert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/ncertflash/internal/logger"
)

const userAgent = "NCERTFlash (educational use)"

// Client checks that chapter PDFs are still published on ncert.nic.in.
// Requests are spaced by Delay so a full curriculum check stays gentle on
// the NCERT servers.
type Client struct {
	httpClient *http.Client
	delay      time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 15s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithDelay sets the pause between consecutive requests in CheckChapters.
func WithDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		delay:      time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PDFStatus is the outcome of probing one chapter PDF.
type PDFStatus struct {
	ChapterID   int64
	URL         string
	StatusCode  int
	ContentType string
	Size        int64
	Available   bool
	Err         error
}

// CheckPDF probes url with a HEAD request, falling back to a ranged GET
// when the server rejects HEAD (403, 405 or 501). A non-200 answer is reported through the
// status, not the error; the error is reserved for transport failures.
func (c *Client) CheckPDF(ctx context.Context, url string) (*PDFStatus, error) {
	log := logger.FromContext(ctx).WithPrefix("ncert").WithField("url", url)

	log.Debug("checking pdf")
	start := time.Now()

	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		log.Error("failed to check pdf: %v", err)
		return nil, err
	}
	if headRejected(resp.StatusCode) {
		resp.Body.Close()
		log.Debug("HEAD rejected with status %d, retrying with GET", resp.StatusCode)
		resp, err = c.do(ctx, http.MethodGet, url)
		if err != nil {
			log.Error("failed to check pdf: %v", err)
			return nil, err
		}
	}
	defer resp.Body.Close()

	log.Debug("pdf response received in %v, status=%d", time.Since(start), resp.StatusCode)

	status := &PDFStatus{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}
	if total, ok := rangeTotal(resp.Header.Get("Content-Range")); ok {
		status.Size = total
	}
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent:
		status.Available = strings.Contains(strings.ToLower(status.ContentType), "pdf")
		if !status.Available {
			log.Warn("unexpected content type %q", status.ContentType)
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn("pdf request failed: status=%d, body=%s", resp.StatusCode, string(body))
	}
	return status, nil
}

// Target names one chapter PDF to probe.
type Target struct {
	ChapterID int64
	URL       string
}

// CheckChapters probes every target in order. Per-target transport errors are
// recorded in PDFStatus.Err; only context cancellation stops the run early.
func (c *Client) CheckChapters(ctx context.Context, targets []Target) ([]PDFStatus, error) {
	log := logger.FromContext(ctx).WithPrefix("ncert")
	out := make([]PDFStatus, 0, len(targets))

	for i, t := range targets {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(c.delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		st, err := c.CheckPDF(ctx, t.URL)
		if err != nil {
			st = &PDFStatus{URL: t.URL, Err: err}
		}
		st.ChapterID = t.ChapterID
		out = append(out, *st)
	}

	missing := 0
	for _, st := range out {
		if !st.Available {
			missing++
		}
	}
	log.Info("checked %d chapter pdfs, %d unavailable", len(out), missing)
	return out, nil
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/pdf")
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	return c.httpClient.Do(req)
}

func headRejected(code int) bool {
	switch code {
	case http.StatusForbidden, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return false
}

// rangeTotal reads the complete length from a "bytes 0-0/12345" header.
func rangeTotal(contentRange string) (int64, bool) {
	_, total, ok := strings.Cut(contentRange, "/")
	if !ok || total == "*" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(total), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
