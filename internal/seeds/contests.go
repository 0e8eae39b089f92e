package seeds

import (
	"fmt"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
	"github.com/google/uuid"
)

// SeedDemoContest creates a ready-to-start contest with a four problem
// board and a small roster, for local development. Idempotent: reuses
// the existing demo contest if one is already seeded.
func SeedDemoContest() (models.Contest, error) {
	const demoName = "Demo Virtual Contest"

	var contest models.Contest
	err := database.DB.Where("name = ?", demoName).First(&contest).Error
	if err == nil {
		logger.Info().Str("contest_id", contest.ID).Msg("Demo contest already seeded")
		return contest, nil
	}

	contest = models.Contest{
		ID:              uuid.New().String(),
		Name:            demoName,
		Status:          models.ContestStatusBefore,
		DurationMinutes: 100,
	}
	if err := database.DB.Create(&contest).Error; err != nil {
		return models.Contest{}, err
	}

	tasks := []struct {
		letter string
		points int
	}{
		{"a", 100},
		{"b", 200},
		{"c", 300},
		{"d", 400},
	}
	for i, task := range tasks {
		problem := models.Problem{
			ID:        uuid.New().String(),
			ContestID: contest.ID,
			Name:      fmt.Sprintf("%s - Sample Task", task.letter),
			ProblemURL: fmt.Sprintf(
				"https://atcoder.jp/contests/abs/tasks/abc086_%s", task.letter),
			SubmissionURL: fmt.Sprintf(
				"https://atcoder.jp/contests/abs/submissions?f.LanguageName=&f.Status=&f.Task=abc086_%s&f.User=&page=1", task.letter),
			Points:     task.points,
			OrderIndex: i,
		}
		if err := database.DB.Create(&problem).Error; err != nil {
			return models.Contest{}, err
		}
	}

	for _, handle := range []string{"tourist", "chokudai"} {
		user := models.User{
			ID:          uuid.New().String(),
			ContestID:   contest.ID,
			AtCoderID:   handle,
			RatingColor: "red",
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return models.Contest{}, err
		}
	}

	logger.Info().Str("contest_id", contest.ID).Msg("Demo contest seeded")
	return contest, nil
}
