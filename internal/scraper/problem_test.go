package scraper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestClient(baseURL string) *Client {
	c := NewClient("")
	c.baseURL = baseURL
	c.pageDelay = 0
	return c
}

func TestScrapeProblemInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>A - Vacation Validation - AtCoder</title></head><body></body></html>`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	info, err := c.ScrapeProblemInfo(ts.URL + "/contests/abc404/tasks/abc404_a")
	assert.NoError(t, err)
	assert.Equal(t, "A - Vacation Validation", info.Name)
	assert.Equal(t,
		ts.URL+"/contests/abc404/submissions?f.LanguageName=&f.Status=&f.Task=abc404_a&f.User=&page=1",
		info.SubmissionURL)
}

func TestScrapeProblemInfo_InvalidURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Whatever - AtCoder</title></head></html>`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	_, err := c.ScrapeProblemInfo(ts.URL + "/not/a/problem/page")
	var parseErr *apperrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestScrapeProblemInfo_FetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	_, err := c.ScrapeProblemInfo(ts.URL + "/contests/abc404/tasks/abc404_a")
	var fetchErr *apperrors.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}
