package main

import (
	"context"
	"fmt"
	"log"

	"scheduler-backend/config"
	"scheduler-backend/models"
	"scheduler-backend/services"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the reminder table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		config.CloseDB(db)
		log.Println("[DB] migration complete")
		return nil
	},
}

// sampleReminders are the rows inserted by the seed command.
var sampleReminders = []struct {
	Subject string
	Message string
	Date    string
}{
	{"Doctor Appointment", "You have a doctor appointment on 20th March 2025.", "2025-03-20"},
	{"John Wick", "Meeting scheduled with John at 3 PM on 22nd March 2025.", "2025-03-22"},
	{"Work Deadline", "Submit the project report by the end of 25th March 2025.", "2025-03-25"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer config.CloseDB(db)

		n, err := seed(cmd.Context(), services.NewReminderService(db))
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d reminders\n", n)
		return nil
	},
}

func seed(ctx context.Context, reminders *services.ReminderService) (int, error) {
	for i, s := range sampleReminders {
		date, err := models.ParseDate(s.Date)
		if err != nil {
			return i, err
		}
		if _, err := reminders.Create(ctx, services.ReminderInput{
			Subject: s.Subject,
			Message: s.Message,
			Date:    date,
		}); err != nil {
			return i, fmt.Errorf("seed %q: %w", s.Subject, err)
		}
	}
	return len(sampleReminders), nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
