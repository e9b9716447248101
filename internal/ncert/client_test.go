package ncert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPDFServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/textbook/pdf/femh101.pdf", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Length", "2048")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/textbook/pdf/femh102.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		assert.Equal(t, "bytes=0-0", r.Header.Get("Range"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Range", "bytes 0-0/734003")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("%"))
	})
	mux.HandleFunc("/textbook/pdf/femh104.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Range", "bytes 0-0/*")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("%"))
	})
	mux.HandleFunc("/textbook/pdf/femh105.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/textbook/pdf/femh103.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckPDF(t *testing.T) {
	srv := newPDFServer(t)
	c := New(WithDelay(0), WithHTTPClient(srv.Client()))
	ctx := context.Background()

	st, err := c.CheckPDF(ctx, srv.URL+"/textbook/pdf/femh101.pdf")
	require.NoError(t, err)
	assert.True(t, st.Available)
	assert.Equal(t, http.StatusOK, st.StatusCode)
	assert.Equal(t, int64(2048), st.Size)

	st, err = c.CheckPDF(ctx, srv.URL+"/textbook/pdf/femh102.pdf")
	require.NoError(t, err)
	assert.True(t, st.Available, "falls back to GET when HEAD is rejected")
	assert.Equal(t, http.StatusPartialContent, st.StatusCode)
	assert.Equal(t, int64(734003), st.Size, "full size from Content-Range")

	st, err = c.CheckPDF(ctx, srv.URL+"/textbook/pdf/femh104.pdf")
	require.NoError(t, err)
	assert.True(t, st.Available, "403 on HEAD falls back to GET")
	assert.Equal(t, int64(1), st.Size, "unknown total keeps the body length")

	st, err = c.CheckPDF(ctx, srv.URL+"/textbook/pdf/femh105.pdf")
	require.NoError(t, err)
	assert.False(t, st.Available)
	assert.Equal(t, http.StatusNotFound, st.StatusCode, "status comes from the GET after a 501")

	st, err = c.CheckPDF(ctx, srv.URL+"/textbook/pdf/femh103.pdf")
	require.NoError(t, err)
	assert.False(t, st.Available, "html error pages are not pdfs")

	st, err = c.CheckPDF(ctx, srv.URL+"/textbook/pdf/missing.pdf")
	require.NoError(t, err)
	assert.False(t, st.Available)
	assert.Equal(t, http.StatusNotFound, st.StatusCode)
}

func TestCheckChapters(t *testing.T) {
	srv := newPDFServer(t)
	c := New(WithDelay(time.Millisecond))

	results, err := c.CheckChapters(context.Background(), []Target{
		{ChapterID: 1, URL: srv.URL + "/textbook/pdf/femh101.pdf"},
		{ChapterID: 2, URL: srv.URL + "/textbook/pdf/missing.pdf"},
		{ChapterID: 3, URL: "http://127.0.0.1:1/unreachable.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int64(1), results[0].ChapterID)
	assert.True(t, results[0].Available)
	assert.False(t, results[1].Available)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, int64(3), results[2].ChapterID)
	assert.Error(t, results[2].Err)
	assert.False(t, results[2].Available)
}

func TestCheckChapters_Cancelled(t *testing.T) {
	srv := newPDFServer(t)
	c := New(WithDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	results, err := c.CheckChapters(ctx, []Target{
		{ChapterID: 1, URL: srv.URL + "/textbook/pdf/femh101.pdf"},
		{ChapterID: 2, URL: srv.URL + "/textbook/pdf/femh101.pdf"},
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, results, 1)
}

func TestRangeTotal(t *testing.T) {
	n, ok := rangeTotal("bytes 0-0/1234")
	assert.True(t, ok)
	assert.Equal(t, int64(1234), n)

	for _, v := range []string{"", "bytes 0-0/*", "bytes 0-0/abc", "bytes */-5"} {
		_, ok := rangeTotal(v)
		assert.False(t, ok, v)
	}
}
