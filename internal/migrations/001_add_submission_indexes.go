package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddSubmissionIndexes adds composite indexes for the two hot
// queries: the standings reduction (submissions by problem in time order)
// and per-user submission lookups.
func Migration001AddSubmissionIndexes() Migration {
	return Migration{
		ID:   "001_add_submission_indexes",
		Name: "Add submission hot-path indexes",
		Up: func(db *gorm.DB) error {
			if err := db.Exec(
				"CREATE INDEX IF NOT EXISTS idx_submissions_problem_time ON submissions (problem_id, submitted_at)",
			).Error; err != nil {
				return err
			}
			return db.Exec(
				"CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions (user_id)",
			).Error
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec("DROP INDEX IF EXISTS idx_submissions_problem_time").Error; err != nil {
				return err
			}
			return db.Exec("DROP INDEX IF EXISTS idx_submissions_user").Error
		},
	}
}
