package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PostingAccountCodes names the chart-of-accounts codes the posting engine writes
// against. Each must resolve to exactly one active account at runtime.
type PostingAccountCodes struct {
	Receivable string
	Revenue    string
	Cash       string
	Unapplied  string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	PostingAccounts PostingAccountCodes
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("COA_AR_CODE", "1100")
	viper.SetDefault("COA_REVENUE_CODE", "4000")
	viper.SetDefault("COA_CASH_CODE", "1000")
	viper.SetDefault("COA_UNAPPLIED_CODE", "2200")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.PostingAccounts = PostingAccountCodes{
		Receivable: viper.GetString("COA_AR_CODE"),
		Revenue:    viper.GetString("COA_REVENUE_CODE"),
		Cash:       viper.GetString("COA_CASH_CODE"),
		Unapplied:  viper.GetString("COA_UNAPPLIED_CODE"),
	}

	return cfg, nil
}
