package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("127.0.0.1:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8080" {
		t.Fatalf("url = %q, want http://127.0.0.1:8080", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatalf("parseBaseURL accepted an empty url")
	}
}

func TestHTTP_PageEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != feedPath {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pageResponse{Lines: []string{"a", "b"}, Next: 12, More: true})
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL)
	if err != nil {
		t.Fatalf("NewHTTP returned error: %v", err)
	}
	page, err := src.Page(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}

	want := Page{Lines: []string{"a", "b"}, Next: 12, More: true}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
	if gotQuery.Get("offset") != "10" || gotQuery.Get("limit") != "2" {
		t.Fatalf("query = %v, want offset=10 limit=2", gotQuery)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestHTTP_PageInfersNextWhenMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lines":["x","y","z"]}`))
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL)
	if err != nil {
		t.Fatalf("NewHTTP returned error: %v", err)
	}
	page, err := src.Page(context.Background(), 30, 3)
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	if page.Next != 33 || page.More {
		t.Fatalf("Next/More = %d/%v, want 33/false", page.Next, page.More)
	}
}

func TestHTTP_PageErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "0" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	src, err := NewHTTP(server.URL)
	if err != nil {
		t.Fatalf("NewHTTP returned error: %v", err)
	}
	if _, err := src.Page(context.Background(), 0, 5); err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("Page error = %v, want status 500", err)
	}
	if _, err := src.Page(context.Background(), 5, 5); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Page error = %v, want decode error", err)
	}

	var nilSrc *HTTP
	if _, err := nilSrc.Page(context.Background(), 0, 1); err == nil {
		t.Fatalf("nil source returned nil error")
	}
}
