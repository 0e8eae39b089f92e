package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// AtCoder session cookie. Optional: without it the scraper fetches
	// public pages unauthenticated.
	RevelSession string `mapstructure:"REVEL_SESSION"`

	// Cron expressions for the background jobs
	StatusSweepCron string `mapstructure:"STATUS_SWEEP_CRON"`
	RefreshCron     string `mapstructure:"REFRESH_CRON"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.SetDefault("STATUS_SWEEP_CRON", "* * * * *")
	viper.SetDefault("REFRESH_CRON", "*/3 * * * *")

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
