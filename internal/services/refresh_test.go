package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/scraper"
	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// serveSubmissionListing serves a single AtCoder-shaped listing page with
// one AC row for the given handle at the given timestamp.
func serveSubmissionListing(t *testing.T, handle, timestamp, submissionID string) *httptest.Server {
	t.Helper()
	body := fmt.Sprintf(`<html><body>
		<table class="table table-bordered table-striped"><tbody>
		<tr>
			<td><time class="fixtime">%s</time></td>
			<td><a href="/contests/abc404/tasks/abc404_a">A - Problem</a></td>
			<td><a href="/users/%s">%s</a></td>
			<td>Go (go 1.21)</td>
			<td>100</td>
			<td>1234 Byte</td>
			<td><span class="label">AC</span></td>
			<td>12 ms</td>
			<td>3400 KB</td>
			<td><a class="submission-details-link" href="/contests/abc404/submissions/%s">Detail</a></td>
		</tr>
		</tbody></table>
		<ul class="pager"><li><a href="?page=1">&lt; Prev</a></li></ul>
		</body></html>`, timestamp, handle, handle, submissionID)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestRefreshStandings_ContestNotFound(t *testing.T) {
	SetupTestDB(t)

	err := RefreshStandings("missing")
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestRefreshStandings_RejectsNotStarted(t *testing.T) {
	SetupTestDB(t)

	contest := createContest(t, models.ContestStatusBefore, nil, 100)

	err := RefreshStandings(contest.ID)
	var stateErr *apperrors.ContestStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestRefreshStandings_RejectsPastGraceWindow(t *testing.T) {
	SetupTestDB(t)

	// Ended 100 minutes ago, well past the 30 minute grace window
	start := time.Now().Add(-200 * time.Minute)
	contest := createContest(t, models.ContestStatusAfter, &start, 100)

	err := RefreshStandings(contest.ID)
	var stateErr *apperrors.ContestStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestRefreshStandings_AllowsFinishedWithinGrace(t *testing.T) {
	SetupTestDB(t)

	// Ended 10 minutes ago, still inside the grace window. No problems
	// registered, so nothing is scraped.
	start := time.Now().Add(-110 * time.Minute)
	contest := createContest(t, models.ContestStatusAfter, &start, 100)

	assert.NoError(t, RefreshStandings(contest.ID))
}

func TestRefreshStandings_InsertsAndDedupes(t *testing.T) {
	SetupTestDB(t)

	jst := time.FixedZone("JST", 9*60*60)
	start := time.Date(2025, 7, 30, 20, 0, 0, 0, jst)
	contest := createContest(t, models.ContestStatusRunning, &start, 100)
	user := createUser(t, contest.ID, "alice")

	ts := serveSubmissionListing(t, "alice", "2025-07-30 20:44:02+0900", "67890")
	defer ts.Close()

	problem := createProblem(t, contest.ID, 100, 0)
	assert.NoError(t, database.DB.Model(&models.Problem{}).
		Where("id = ?", problem.ID).
		Update("submission_url", ts.URL+"/contests/abc404/submissions?page=1").Error)

	InitScraper(scraper.NewClient(""))

	assert.NoError(t, RefreshStandings(contest.ID))

	var stored []models.Submission
	assert.NoError(t, database.DB.Find(&stored).Error)
	assert.Len(t, stored, 1)
	assert.Equal(t, "67890", stored[0].SubmissionID)
	assert.Equal(t, "AC", stored[0].Status)
	assert.Equal(t, user.ID, stored[0].UserID)
	assert.Equal(t, problem.ID, stored[0].ProblemID)

	// A second refresh sees the same listing and must not duplicate
	assert.NoError(t, RefreshStandings(contest.ID))
	assert.NoError(t, database.DB.Find(&stored).Error)
	assert.Len(t, stored, 1)
}
