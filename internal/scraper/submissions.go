package scraper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
)

// Submission is one row scraped from an AtCoder submissions listing.
// UserID is the AtCoder handle, not a database id.
type Submission struct {
	SubmissionID string
	Status       string
	SubmittedAt  time.Time
	UserID       string
}

// AtCoder renders times like "2025-07-30 20:44:02+0900"
const atcoderTimeLayout = "2006-01-02 15:04:05-0700"

var pageParamPattern = regexp.MustCompile(`page=\d+`)

// ScrapeSubmissions walks an AtCoder submissions listing page by page and
// collects rows for the given roster handles, optionally bounded by a
// contest time window. Each call starts at page 1; there is no mid-scrape
// resume. Fetch failures are logged and end the walk with whatever was
// collected so far — the caller only ever sees a completed sequence.
//
// Rows are listed newest-first, which the termination rules depend on:
//   - a row older than windowStart ends the scan (everything below it on
//     the page is older still);
//   - a row newer than windowEnd is discarded and flags termination after
//     this page, without cutting the row scan short;
//   - a page that yields no roster-matching, non-CE rows ends the walk.
//     This assumes roster activity is front-loaded in the listing; deep
//     history pages full of non-participants are never traversed.
//
// Records are not deduplicated here; insert-if-absent by external id is
// the submission store's job.
func (c *Client) ScrapeSubmissions(submissionURL string, handles []string, windowStart, windowEnd *time.Time) []Submission {
	roster := make(map[string]struct{}, len(handles))
	for _, h := range handles {
		roster[h] = struct{}{}
	}

	var submissions []Submission
	page := 1

	for {
		pageURL := pageParamPattern.ReplaceAllString(submissionURL, fmt.Sprintf("page=%d", page))

		doc, err := c.fetchDocument(pageURL)
		if err != nil {
			logger.Error().Err(err).Int("page", page).Msg("Failed to fetch submissions page, returning partial results")
			return submissions
		}

		rows := doc.Find(".table.table-bordered.table-striped tbody tr")
		if rows.Length() == 0 {
			return submissions
		}

		stop := false
		pageYielded := false

		rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Find("td")
			if cells.Length() < 8 {
				return true
			}

			timeText := strings.TrimSpace(cells.Eq(0).Find("time.fixtime").Text())
			submittedAt, err := time.Parse(atcoderTimeLayout, timeText)
			if err != nil {
				// Skip just this row, not the page
				logger.Warn().Str("time", timeText).Msg("Unparseable submission time")
				return true
			}

			// Window checks are strict: boundary timestamps are included.
			if windowStart != nil && submittedAt.Before(*windowStart) {
				// Everything further down the page is older; cut the scan.
				stop = true
				return false
			}
			if windowEnd != nil && submittedAt.After(*windowEnd) {
				// Recent out-of-window activity at the top of the page.
				// Discard the row but keep scanning for in-window rows.
				stop = true
				return true
			}

			handle := strings.TrimSpace(cells.Eq(2).Find("a").First().Text())
			if _, ok := roster[handle]; !ok {
				return true
			}

			status := strings.TrimSpace(cells.Eq(6).Find("span.label").Text())
			if status == "CE" {
				// Compilation errors don't count as attempts
				return true
			}

			href, _ := cells.Eq(9).Find("a.submission-details-link").Attr("href")
			parts := strings.Split(href, "/")
			submissionID := parts[len(parts)-1]
			if submissionID == "" {
				return true
			}

			submissions = append(submissions, Submission{
				SubmissionID: submissionID,
				Status:       status,
				SubmittedAt:  submittedAt,
				UserID:       handle,
			})
			pageYielded = true
			return true
		})

		if stop {
			return submissions
		}

		next := doc.Find(".pager li a").FilterFunction(func(_ int, link *goquery.Selection) bool {
			return strings.Contains(link.Text(), "Next")
		})
		if next.Length() == 0 {
			return submissions
		}
		if !pageYielded {
			return submissions
		}

		page++
		time.Sleep(c.pageDelay)
	}
}
