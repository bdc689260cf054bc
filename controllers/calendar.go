// controllers/calendar.go
package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"scheduler-backend/calendar"
	"scheduler-backend/services"
	"scheduler-backend/utils"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
)

const icsProductID = "-//scheduler//reminders//EN"

type CalendarController struct {
	reminders *services.ReminderService
	now       utils.Clock
}

func NewCalendarController(reminders *services.ReminderService, now utils.Clock) *CalendarController {
	if now == nil {
		now = time.Now
	}
	return &CalendarController{reminders: reminders, now: now}
}

// GetCalendar returns the month grid for ?year=&month=, defaulting to the
// current month.
func (cc *CalendarController) GetCalendar(c *gin.Context) {
	now := cc.now()
	view, err := viewFromQuery(c, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	dates, err := cc.reminders.Dates(c.Request.Context())
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// prev and next are null at the edges of the supported years.
	var prev, next gin.H
	if view.HasPrev() {
		prev = viewJSON(view.Prev())
	}
	if view.HasNext() {
		next = viewJSON(view.Next())
	}

	month := calendar.Build(view, dates, now)
	c.JSON(http.StatusOK, gin.H{
		"year":       month.Year,
		"month":      int(month.Month),
		"month_name": month.Name(),
		"prev":       prev,
		"next":       next,
		"cells":      month.Cells,
	})
}

// ExportICS serves every reminder as an all-day event.
func (cc *CalendarController) ExportICS(c *gin.Context) {
	reminders, err := cc.reminders.List(c.Request.Context())
	if err != nil {
		log.Printf("[DB] %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Reminders")

	for _, r := range reminders {
		event := cal.AddEvent(fmt.Sprintf("reminder-%d@scheduler", r.ID))
		event.SetCreatedTime(r.CreatedAt)
		event.SetDtStampTime(r.UpdatedAt)
		event.SetModifiedAt(r.UpdatedAt)
		start := r.Date.In(time.UTC)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetSummary(r.Subject)
		event.SetDescription(r.Message)
	}

	c.Header("Content-Disposition", `attachment; filename="reminders.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

func viewJSON(v calendar.View) gin.H {
	return gin.H{"year": v.Year, "month": int(v.Month)}
}

// viewFromQuery reads year and month. Either may be omitted; the current
// month fills in.
func viewFromQuery(c *gin.Context, now time.Time) (calendar.View, error) {
	current := calendar.Current(now)
	year, month := current.Year, int(current.Month)

	if s := c.Query("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return calendar.View{}, fmt.Errorf("invalid year %q", s)
		}
		year = y
	}
	if s := c.Query("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return calendar.View{}, fmt.Errorf("invalid month %q", s)
		}
		month = m
	}
	return calendar.NewView(year, month)
}
