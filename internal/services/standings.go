package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	apperrors "github.com/WACPAC/wacpac-virtual-contest/pkg/errors"
	"gorm.io/gorm"
)

type StandingsEntry struct {
	Rank       int         `json:"rank"`
	User       models.User `json:"user"`
	TotalScore int         `json:"totalScore"`
	Penalty    int         `json:"penalty"`
	// Milliseconds from contest start to the last first-AC (the standard
	// last-AC tiebreak metric)
	TotalTime      int64           `json:"totalTime"`
	ProblemResults []ProblemResult `json:"problemResults"`
}

type ProblemResult struct {
	ProblemID  string     `json:"problemId"`
	Score      int        `json:"score"`
	Attempts   int        `json:"attempts"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	Penalty    int        `json:"penalty"`
}

// CalculateStandings recomputes the full standings table from submission
// history. It is a pure reduction over committed rows: no incremental
// state, so it is safe to call on every request and concurrently with
// scraping.
func CalculateStandings(contestID string) ([]StandingsEntry, error) {
	var contest models.Contest
	err := database.DB.
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Users").
		First(&contest, "id = ?", contestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Contest not found")
		}
		return nil, err
	}

	problemIDs := make([]string, 0, len(contest.Problems))
	for _, p := range contest.Problems {
		problemIDs = append(problemIDs, p.ID)
	}

	var submissions []models.Submission
	if len(problemIDs) > 0 {
		if err := database.DB.
			Where("problem_id IN ?", problemIDs).
			Order("submitted_at asc").
			Find(&submissions).Error; err != nil {
			return nil, err
		}
	}

	standings := make([]StandingsEntry, 0, len(contest.Users))

	for _, user := range contest.Users {
		entry := StandingsEntry{
			User:           user,
			ProblemResults: make([]ProblemResult, 0, len(contest.Problems)),
		}

		for _, problem := range contest.Problems {
			// This user's submissions to this problem, CE excluded,
			// already in submitted_at order
			var subs []models.Submission
			for _, s := range submissions {
				if s.UserID == user.ID && s.ProblemID == problem.ID && s.Status != models.SubmissionStatusCE {
					subs = append(subs, s)
				}
			}

			result := ProblemResult{
				ProblemID: problem.ID,
				Attempts:  len(subs),
			}

			for _, s := range subs {
				if s.Status == models.SubmissionStatusAC {
					acceptedAt := s.SubmittedAt
					result.AcceptedAt = &acceptedAt
					result.Score = problem.Points
					for _, prior := range subs {
						if prior.SubmittedAt.Before(acceptedAt) && prior.Status != models.SubmissionStatusAC {
							result.Penalty++
						}
					}
					break
				}
			}

			if result.AcceptedAt != nil {
				entry.TotalScore += result.Score
				// Only solved problems contribute penalty to the total
				entry.Penalty += result.Penalty
				if contest.StartTime != nil {
					acMillis := result.AcceptedAt.Sub(*contest.StartTime).Milliseconds()
					if acMillis > entry.TotalTime {
						entry.TotalTime = acMillis
					}
				}
			}

			entry.ProblemResults = append(entry.ProblemResults, result)
		}

		standings = append(standings, entry)
	}

	// Score desc, then last-AC time asc
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalScore != standings[j].TotalScore {
			return standings[i].TotalScore > standings[j].TotalScore
		}
		return standings[i].TotalTime < standings[j].TotalTime
	})

	// Competition ranking: ties share a rank, the next distinct
	// (score,time) pair gets its 1-based position
	currentRank := 1
	for i := range standings {
		if i > 0 {
			prev, curr := standings[i-1], standings[i]
			if prev.TotalScore != curr.TotalScore || prev.TotalTime != curr.TotalTime {
				currentRank = i + 1
			}
		}
		standings[i].Rank = currentRank
	}

	return standings, nil
}

// GenerateStandingsCSV renders a standings snapshot as CSV for download.
// Output is UTF-8 with a BOM so spreadsheet tools display the Japanese
// header and non-ASCII handles correctly.
//
// The time column formula mixes milliseconds and unix seconds and does
// not match any on-screen time value. It reproduces the historical
// export byte for byte; see the renderer test before changing it.
func GenerateStandingsCSV(standings []StandingsEntry, problems []models.Problem, contest *models.Contest) string {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)

	header := []string{"順位", "ユーザー名", "得点", "時間"}
	for i := range problems {
		header = append(header, string(rune('A'+i))) // A, B, C, ...
	}
	w.Write(header)

	var startUnix int64
	if contest != nil && contest.StartTime != nil {
		startUnix = contest.StartTime.Unix()
	}

	for _, entry := range standings {
		seconds := (entry.TotalTime*1000 + int64(entry.Penalty)*5*60*1000 - startUnix) / 1000

		row := []string{
			strconv.Itoa(entry.Rank),
			entry.User.AtCoderID,
			strconv.Itoa(entry.TotalScore),
			fmt.Sprintf("%d:%02d", seconds/60, seconds%60),
		}

		for _, result := range entry.ProblemResults {
			switch {
			case result.Score > 0:
				row = append(row, strconv.Itoa(result.Score))
			case result.Attempts > 0:
				row = append(row, fmt.Sprintf("(%d)", result.Attempts))
			default:
				row = append(row, "")
			}
		}

		w.Write(row)
	}

	w.Flush()
	return buf.String()
}
