package services

import (
	"errors"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/scraper"
	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scrapeClient is set once at startup (and swapped by tests)
var scrapeClient *scraper.Client

// InitScraper wires the AtCoder client used by refreshes
func InitScraper(c *scraper.Client) {
	scrapeClient = c
}

// RefreshStandings scrapes every problem of a contest and upserts new
// submissions. Scraping is best-effort per problem: one problem's failure
// never aborts the others, and the refresh succeeds even if some problems
// yielded nothing. Only the top-level preconditions (contest missing, not
// started, past the update grace window) are reported to the caller.
func RefreshStandings(contestID string) error {
	var contest models.Contest
	err := database.DB.
		Preload("Problems").
		Preload("Users").
		First(&contest, "id = ?", contestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Contest not found")
		}
		return err
	}

	if contest.Status == models.ContestStatusBefore {
		return apperrors.ContestState("Contest has not started yet")
	}

	endTime := utils.ComputeEndTime(contest.StartTime, contest.DurationMinutes)

	if contest.Status == models.ContestStatusAfter && endTime != nil {
		if !utils.WithinUpdateGrace(time.Now(), *endTime, utils.UpdateGraceMinutes) {
			return apperrors.ContestState("Contest ended more than 30 minutes ago, standings can no longer be updated")
		}
	}

	handles := make([]string, 0, len(contest.Users))
	usersByHandle := make(map[string]models.User, len(contest.Users))
	for _, u := range contest.Users {
		handles = append(handles, u.AtCoderID)
		usersByHandle[u.AtCoderID] = u
	}

	for _, problem := range contest.Problems {
		logger.Info().
			Str("contest_id", contestID).
			Str("problem_id", problem.ID).
			Str("problem", problem.Name).
			Msg("Scraping submissions")

		records := scrapeClient.ScrapeSubmissions(problem.SubmissionURL, handles, contest.StartTime, endTime)

		for _, rec := range records {
			user, ok := usersByHandle[rec.UserID]
			if !ok {
				continue
			}

			// The scraper already filtered by window; re-check anyway so a
			// scraper bug can't leak out-of-contest submissions into the store.
			if contest.StartTime != nil && rec.SubmittedAt.Before(*contest.StartTime) {
				continue
			}
			if endTime != nil && rec.SubmittedAt.After(*endTime) {
				continue
			}

			if err := upsertSubmission(rec, user.ID, problem.ID); err != nil {
				logger.Error().Err(err).Str("submission_id", rec.SubmissionID).Msg("Failed to store submission")
			}
		}
	}

	return nil
}

// upsertSubmission inserts a scraped submission unless its external id is
// already stored. Submissions are immutable, so an existing row wins.
func upsertSubmission(rec scraper.Submission, userID, problemID string) error {
	var existing models.Submission
	err := database.DB.First(&existing, "submission_id = ?", rec.SubmissionID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return database.DB.Create(&models.Submission{
		ID:           uuid.New().String(),
		SubmissionID: rec.SubmissionID,
		Status:       rec.Status,
		SubmittedAt:  rec.SubmittedAt,
		UserID:       userID,
		ProblemID:    problemID,
	}).Error
}
