package services

import (
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/utils"
	"github.com/robfig/cron/v3"
)

// StartScheduler wires the two background jobs: the status sweep that
// ends running contests past their end time, and the periodic standings
// refresh. Returns the cron so the caller can Stop() it on shutdown.
func StartScheduler(statusSweepCron, refreshCron string) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(statusSweepCron, func() {
		if n := SweepContestStatuses(); n > 0 {
			logger.Info().Int("ended", n).Msg("Contest status sweep")
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(refreshCron, RefreshEligibleContests); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// SweepContestStatuses flips running contests past their end time to
// "after". Returns how many contests were ended.
func SweepContestStatuses() int {
	now := time.Now()

	var running []models.Contest
	if err := database.DB.
		Where("status = ? AND start_time IS NOT NULL", models.ContestStatusRunning).
		Find(&running).Error; err != nil {
		logger.Error().Err(err).Msg("Status sweep query failed")
		return 0
	}

	ended := 0
	for _, contest := range running {
		end := utils.ComputeEndTime(contest.StartTime, contest.DurationMinutes)
		if end == nil || now.Before(*end) {
			continue
		}
		if err := database.DB.Model(&contest).Update("status", models.ContestStatusAfter).Error; err != nil {
			logger.Error().Err(err).Str("contest_id", contest.ID).Msg("Failed to end contest")
			continue
		}
		logger.Info().Str("contest_id", contest.ID).Str("name", contest.Name).Time("end", *end).Msg("Contest ended")
		ended++
	}
	return ended
}

// RefreshEligibleContests refreshes standings for every running contest
// and for finished contests still inside the update grace window. An
// in-flight scrape is never cancelled; eligibility is simply re-checked
// on the next tick.
func RefreshEligibleContests() {
	now := time.Now()

	var contests []models.Contest
	if err := database.DB.
		Where("status IN ?", []models.ContestStatus{models.ContestStatusRunning, models.ContestStatusAfter}).
		Find(&contests).Error; err != nil {
		logger.Error().Err(err).Msg("Refresh sweep query failed")
		return
	}

	for _, contest := range contests {
		if contest.Status == models.ContestStatusAfter {
			end := utils.ComputeEndTime(contest.StartTime, contest.DurationMinutes)
			if end == nil || !utils.WithinUpdateGrace(now, *end, utils.UpdateGraceMinutes) {
				continue
			}
		}
		if err := RefreshStandings(contest.ID); err != nil {
			logger.Error().Err(err).Str("contest_id", contest.ID).Msg("Scheduled refresh failed")
		}
	}
}
