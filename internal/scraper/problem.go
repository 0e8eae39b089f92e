package scraper

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
)

// ProblemInfo is what we need from an AtCoder problem page to register it
// in a contest: a display name and the submissions-listing URL template.
type ProblemInfo struct {
	Name          string
	SubmissionURL string
}

var problemURLPattern = regexp.MustCompile(`contests/([^/]+)/tasks/([^/]+)`)

// ScrapeProblemInfo fetches a problem page and derives its name and
// submissions URL. The submissions URL is parameterized by page number
// and carries no user/language/status filter.
func (c *Client) ScrapeProblemInfo(problemURL string) (*ProblemInfo, error) {
	doc, err := c.fetchDocument(problemURL)
	if err != nil {
		return nil, err
	}

	// Page title looks like "A - Vacation Validation - AtCoder"
	name := strings.TrimSpace(strings.Replace(doc.Find("title").Text(), " - AtCoder", "", 1))

	m := problemURLPattern.FindStringSubmatch(problemURL)
	if m == nil {
		return nil, &apperrors.ParseError{URL: problemURL, Reason: "not a contests/<id>/tasks/<id> URL"}
	}
	contestID, taskID := m[1], m[2]

	submissionURL := fmt.Sprintf(
		"%s/contests/%s/submissions?f.LanguageName=&f.Status=&f.Task=%s&f.User=&page=1",
		c.baseURL, contestID, taskID,
	)

	return &ProblemInfo{
		Name:          name,
		SubmissionURL: submissionURL,
	}, nil
}
