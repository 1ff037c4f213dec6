package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTP pages through a remote feed. It requests
// GET {base}/api/feed?offset=N&limit=M and expects
// {"lines": [...], "next": N, "more": bool}.
type HTTP struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Ensure HTTP implements Source at compile time.
var _ Source = (*HTTP)(nil)

const (
	feedPath         = "/api/feed"
	defaultUserAgent = "pullrefresh/0.1"
	requestTimeout   = 5 * time.Second
)

type pageResponse struct {
	Lines []string `json:"lines"`
	Next  int      `json:"next"`
	More  bool     `json:"more"`
}

// NewHTTP builds an HTTP source for a host:port or URL.
func NewHTTP(base string) (*HTTP, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &HTTP{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Page fetches one page.
func (h *HTTP) Page(ctx context.Context, offset, limit int) (Page, error) {
	if h == nil {
		return Page{}, fmt.Errorf("feed client is nil")
	}
	values := url.Values{}
	values.Set("offset", strconv.Itoa(max(offset, 0)))
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: feedPath, RawQuery: values.Encode()}

	var payload pageResponse
	if err := h.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return Page{}, err
	}
	next := payload.Next
	if next < offset {
		next = max(offset, 0) + len(payload.Lines)
	}
	return Page{Lines: payload.Lines, Next: next, More: payload.More}, nil
}

func (h *HTTP) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := h.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("feed %s returned status %d", rel.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("feed url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse feed url %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
