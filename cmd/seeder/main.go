package main

import (
	"os"

	"github.com/WACPAC/wacpac-virtual-contest/internal/config"
	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/seeds"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
)

// Seeds a demo contest for local development. Safe to re-run.
func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.Contest{},
		&models.Problem{},
		&models.User{},
		&models.Submission{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	contest, err := seeds.SeedDemoContest()
	if err != nil {
		logger.Fatal().Err(err).Msg("Seeding failed")
	}

	logger.Info().
		Str("contest_id", contest.ID).
		Str("name", contest.Name).
		Msg("Seeding complete")
}
