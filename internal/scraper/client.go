package scraper

import (
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
)

const (
	// AtCoderBaseURL is the site the scraper talks to. Tests point this at
	// an httptest server instead.
	AtCoderBaseURL = "https://atcoder.jp"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Pause between listing pages so we don't hammer AtCoder
	defaultPageDelay = 500 * time.Millisecond
)

// Client fetches and parses AtCoder pages. The session cookie is an
// explicit constructor argument rather than ambient state; an empty
// session degrades to unauthenticated access.
type Client struct {
	http      *http.Client
	baseURL   string
	session   string
	pageDelay time.Duration
}

func NewClient(session string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 20 * time.Second},
		baseURL:   AtCoderBaseURL,
		session:   session,
		pageDelay: defaultPageDelay,
	}
}

// WithBaseURL points the client at a different host. Tests use this to
// target a local fixture server.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// fetchDocument GETs a page and parses it. No retries: a failed fetch is
// surfaced immediately and the next refresh cycle is the retry mechanism.
func (c *Client) fetchDocument(url string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	if c.session != "" {
		req.Header.Set("Cookie", "REVEL_SESSION="+c.session)
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.FetchError{URL: url, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &apperrors.ParseError{URL: url, Reason: err.Error()}
	}
	return doc, nil
}
