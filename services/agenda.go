package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"scheduler-backend/models"
	"scheduler-backend/utils"

	"github.com/robfig/cron/v3"
)

// Agenda is the result of one agenda run.
type Agenda struct {
	Date      models.Date
	Reminders []models.Reminder
	Next      *models.Reminder
	DaysAhead int // days until Next; zero when Next is nil
}

// AgendaService writes the day's reminders to the log on a cron schedule.
type AgendaService struct {
	reminders *ReminderService
	now       utils.Clock
	cron      *cron.Cron
}

func NewAgendaService(reminders *ReminderService, now utils.Clock) *AgendaService {
	if now == nil {
		now = time.Now
	}
	return &AgendaService{reminders: reminders, now: now}
}

// Start schedules the agenda job. An empty schedule leaves the job disabled.
func (s *AgendaService) Start(schedule string) error {
	if schedule == "" {
		log.Println("[AGENDA] disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if _, err := s.Run(context.Background()); err != nil {
			log.Printf("[AGENDA] run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid agenda schedule %q: %w", schedule, err)
	}

	c.Start()
	s.cron = c
	log.Printf("[AGENDA] scheduler started (%s)", schedule)
	return nil
}

// Stop waits for a running job to finish.
func (s *AgendaService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("[AGENDA] scheduler stopped")
}

// Run collects today's reminders and the next upcoming one, and logs them.
func (s *AgendaService) Run(ctx context.Context) (*Agenda, error) {
	now := s.now()
	today := models.DateOf(now)

	reminders, err := s.reminders.OnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	next, err := s.reminders.Next(ctx, today)
	if err != nil {
		return nil, err
	}

	agenda := &Agenda{Date: today, Reminders: reminders, Next: next}
	if next != nil {
		agenda.DaysAhead = utils.DaysBetween(now, next.Date.In(now.Location()))
	}

	log.Printf("[AGENDA] %s: %d reminder(s) today", today, len(reminders))
	for _, r := range reminders {
		log.Printf("[AGENDA]   #%d %s", r.ID, r.Subject)
	}
	if next != nil {
		log.Printf("[AGENDA] next: #%d %s on %s (in %d days)", next.ID, next.Subject, next.Date, agenda.DaysAhead)
	}
	return agenda, nil
}
