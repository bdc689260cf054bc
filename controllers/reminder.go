// controllers/reminder.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"scheduler-backend/models"
	"scheduler-backend/services"
	"scheduler-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReminderInput defines the expected JSON structure for creating and
// updating a reminder. All three fields are replaced on update.
type ReminderInput struct {
	Subject string `json:"subject" binding:"required,notblank,max=255"`
	Message string `json:"message" binding:"required,notblank"`
	Date    string `json:"date" binding:"required,isodate"`
}

func (in ReminderInput) toService() services.ReminderInput {
	// isodate has already accepted the value.
	date, _ := models.ParseDate(in.Date)
	return services.ReminderInput{Subject: in.Subject, Message: in.Message, Date: date}
}

// ReminderController serves the JSON API under /api.
type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// GetReminders lists every reminder ordered by date
func (rc *ReminderController) GetReminders(c *gin.Context) {
	reminders, err := rc.reminders.List(c.Request.Context())
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// GetReminder retrieves a specific reminder by ID
func (rc *ReminderController) GetReminder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	reminder, err := rc.reminders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			log.Printf("[DB] %v", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// CreateReminder creates a new reminder
func (rc *ReminderController) CreateReminder(c *gin.Context) {
	var input ReminderInput
	if !bindReminder(c, &input) {
		return
	}

	reminder, err := rc.reminders.Create(c.Request.Context(), input.toService())
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Reminder successfully created!",
		"reminder": reminder,
	})
}

// UpdateReminder replaces subject, message and date of a reminder.
// The body is validated before the id is looked up.
func (rc *ReminderController) UpdateReminder(c *gin.Context) {
	var input ReminderInput
	if !bindReminder(c, &input) {
		return
	}

	id, ok := parseID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	reminder, err := rc.reminders.Update(c.Request.Context(), id, input.toService())
	if err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			log.Printf("[DB] %v", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule updated successfully",
		"schedule": reminder,
	})
}

// DeleteReminder hard deletes a reminder
func (rc *ReminderController) DeleteReminder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		return
	}

	if err := rc.reminders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		} else {
			log.Printf("[DB] %v", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

func bindReminder(c *gin.Context, input *ReminderInput) bool {
	fieldErrs, err := utils.BindJSON(c, input)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return false
	}
	if len(fieldErrs) > 0 {
		utils.RespondWithValidationErrors(c, fieldErrs)
		return false
	}
	return true
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a reminder.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
