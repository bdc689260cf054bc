package main

import (
	"fmt"
	"log"
	"os"

	"scheduler-backend/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "scheduler",
	Short:         "Personal reminder scheduler",
	Long:          `Calendar UI and REST API for dated reminders.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to YAML config file (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the configuration and applies the gin mode.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	return cfg, nil
}

// openDB connects and migrates.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		config.CloseDB(db)
		return nil, err
	}
	return db, nil
}
