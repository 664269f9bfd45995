package models

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// CacheEntry is a stored response blob plus the metadata needed to replay it.
// Entries are keyed by request identity (method + URL) and live inside a
// generation-named bucket until that generation is superseded.
type CacheEntry struct {
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	StoredAt int64       `json:"stored_at"`
}

// EntryFromResponse drains resp.Body and converts the response into a cache
// entry. The response body is consumed; callers must use the returned entry
// (or WriteTo) to replay it.
func EntryFromResponse(req *http.Request, resp *http.Response) (*CacheEntry, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	// resp.Request tracks the final URL after redirects; fall back to the
	// original request when the transport did not populate it.
	finalURL := req.URL.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &CacheEntry{
		Method:   req.Method,
		URL:      finalURL,
		Status:   resp.StatusCode,
		Header:   resp.Header.Clone(),
		Body:     body,
		StoredAt: time.Now().Unix(),
	}, nil
}

// Response rebuilds an http.Response from the stored blob.
func (e *CacheEntry) Response() *http.Response {
	return &http.Response{
		StatusCode: e.Status,
		Header:     e.Header.Clone(),
		Body:       io.NopCloser(bytes.NewReader(e.Body)),
	}
}

// WriteTo replays the entry onto an HTTP response writer.
func (e *CacheEntry) WriteTo(w http.ResponseWriter) error {
	for k, vals := range e.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(e.Status)
	_, err := w.Write(e.Body)
	return err
}
