package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"scheduler-backend/models"
	"scheduler-backend/services"
	"scheduler-backend/utils"

	"github.com/gin-gonic/gin"
)

// upcomingDays is how far ahead the dashboard looks, today included.
const upcomingDays = 7

type UpcomingReminder struct {
	ID      uint   `json:"id"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	When    string `json:"when"` // e.g. "Today", "Tomorrow", "3 days"
}

type DashboardController struct {
	reminders *services.ReminderService
	now       utils.Clock
}

func NewDashboardController(reminders *services.ReminderService, now utils.Clock) *DashboardController {
	if now == nil {
		now = time.Now
	}
	return &DashboardController{reminders: reminders, now: now}
}

// GetDashboardOverview summarises the reminder book: totals, today's
// obligations and what is due in the coming week.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()
	now := dc.now()
	today := models.DateOf(now)

	total, err := dc.reminders.Count(ctx)
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// This month
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
	monthly, err := dc.reminders.Between(ctx, models.DateOf(firstOfMonth), models.DateOf(lastOfMonth))
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Next seven days
	horizon := models.DateOf(utils.BeginningOfDay(now).AddDate(0, 0, upcomingDays-1))
	week, err := dc.reminders.Between(ctx, today, horizon)
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	todays := []models.Reminder{}
	upcoming := make([]UpcomingReminder, 0, len(week))
	for _, r := range week {
		daysUntil := utils.DaysBetween(now, r.Date.In(now.Location()))
		if daysUntil == 0 {
			todays = append(todays, r)
		}
		upcoming = append(upcoming, UpcomingReminder{
			ID:      r.ID,
			Subject: r.Subject,
			Date:    r.Date.String(),
			When:    relativeDay(daysUntil),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalReminders":    total,
		"monthlyReminders":  len(monthly),
		"todayReminders":    todays,
		"upcomingReminders": upcoming,
	})
}

func relativeDay(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
