package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"scheduler-backend/config"
	"scheduler-backend/routes"
	"scheduler-backend/services"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
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

		r, err := routes.SetupRouter(routes.Deps{Config: cfg, DB: db})
		if err != nil {
			return err
		}

		agenda := services.NewAgendaService(services.NewReminderService(db), nil)
		if err := agenda.Start(cfg.Agenda.Cron); err != nil {
			return err
		}
		defer agenda.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
