// controllers/pages.go
package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"scheduler-backend/calendar"
	"scheduler-backend/models"
	"scheduler-backend/services"
	"scheduler-backend/utils"

	"github.com/gin-gonic/gin"
)

// TodayLabel marks list entries dated today.
const TodayLabel = "Today's obligation"

const maxSubjectLength = 255

// Entry is one row of the reminder list.
type Entry struct {
	models.Reminder
	Today     bool
	EditURL   string
	DeleteURL string
}

// FormModal is the add or edit dialog. Errors are keyed by input id.
type FormModal struct {
	Title    string
	Action   string
	IDPrefix string
	Submit   string
	Subject  string
	Message  string
	Date     string
	Errors   map[string]string
}

// Page is everything index.html renders. State that a browser would have
// kept in memory travels in the URL instead.
type Page struct {
	Month      calendar.Month
	Year       int
	MonthNum   int
	PrevURL    string
	NextURL    string
	CurrentURL string
	AddURL     string
	Entries    []Entry
	TodayLabel string
	Modal      *FormModal
	Confirm    *models.Reminder
	Saved      bool
	Removed    bool
	AuthOn     bool
}

type PageController struct {
	reminders *services.ReminderService
	now       utils.Clock
	authOn    bool
}

func NewPageController(reminders *services.ReminderService, now utils.Clock, authOn bool) *PageController {
	if now == nil {
		now = time.Now
	}
	return &PageController{reminders: reminders, now: now, authOn: authOn}
}

// Index renders the calendar and the list. ?add=1, ?edit=ID and
// ?delete=ID open the matching dialog; ?saved=1 and ?removed=1 show the
// confirmation overlay.
func (pc *PageController) Index(c *gin.Context) {
	now := pc.now()
	view, err := viewFromQuery(c, now)
	if err != nil {
		view = calendar.Current(now)
	}

	page, err := pc.buildPage(c, view, now)
	if err != nil {
		log.Printf("[DB] %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	switch {
	case c.Query("add") != "":
		page.Modal = addModal()
	case c.Query("edit") != "":
		if r := pc.lookup(c, c.Query("edit")); r != nil {
			page.Modal = editModal(r)
		}
	case c.Query("delete") != "":
		page.Confirm = pc.lookup(c, c.Query("delete"))
	}
	page.Saved = c.Query("saved") != ""
	page.Removed = c.Query("removed") != ""

	c.HTML(http.StatusOK, "index.html", page)
}

// CreateReminder handles the add form.
func (pc *PageController) CreateReminder(c *gin.Context) {
	view := pc.viewFromForm(c)
	modal := addModal()
	modal.fill(c)

	input, ok := modal.validate()
	if !ok {
		pc.renderModal(c, view, modal)
		return
	}

	if _, err := pc.reminders.Create(c.Request.Context(), input); err != nil {
		log.Printf("[DB] %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.Redirect(http.StatusSeeOther, viewURL(view, "saved=1"))
}

// UpdateReminder handles the edit form. An id that no longer exists is
// logged and the list is shown again.
func (pc *PageController) UpdateReminder(c *gin.Context) {
	view := pc.viewFromForm(c)
	id, ok := parseID(c)
	if !ok {
		log.Printf("[DB] edit of unknown reminder %q", c.Param("id"))
		c.Redirect(http.StatusSeeOther, viewURL(view, ""))
		return
	}

	modal := editModal(&models.Reminder{ID: id})
	modal.fill(c)

	input, valid := modal.validate()
	if !valid {
		pc.renderModal(c, view, modal)
		return
	}

	if _, err := pc.reminders.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			log.Printf("[DB] edit of unknown reminder %d", id)
			c.Redirect(http.StatusSeeOther, viewURL(view, ""))
			return
		}
		log.Printf("[DB] %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.Redirect(http.StatusSeeOther, viewURL(view, "saved=1"))
}

// DeleteReminder is the confirm button of the delete popup.
func (pc *PageController) DeleteReminder(c *gin.Context) {
	view := pc.viewFromForm(c)
	id, ok := parseID(c)
	if !ok {
		log.Printf("[DB] delete of unknown reminder %q", c.Param("id"))
		c.Redirect(http.StatusSeeOther, viewURL(view, ""))
		return
	}

	if err := pc.reminders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			log.Printf("[DB] delete of unknown reminder %d", id)
			c.Redirect(http.StatusSeeOther, viewURL(view, ""))
			return
		}
		log.Printf("[DB] %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.Redirect(http.StatusSeeOther, viewURL(view, "removed=1"))
}

func (pc *PageController) buildPage(c *gin.Context, view calendar.View, now time.Time) (*Page, error) {
	ctx := c.Request.Context()

	dates, err := pc.reminders.Dates(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := pc.reminders.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(reminders))
	for _, r := range reminders {
		entries = append(entries, Entry{
			Reminder:  r,
			Today:     r.IsOn(now),
			EditURL:   viewURL(view, fmt.Sprintf("edit=%d", r.ID)),
			DeleteURL: viewURL(view, fmt.Sprintf("delete=%d", r.ID)),
		})
	}

	var prevURL, nextURL string
	if view.HasPrev() {
		prevURL = viewURL(view.Prev(), "")
	}
	if view.HasNext() {
		nextURL = viewURL(view.Next(), "")
	}

	return &Page{
		Month:      calendar.Build(view, dates, now),
		Year:       view.Year,
		MonthNum:   int(view.Month),
		PrevURL:    prevURL,
		NextURL:    nextURL,
		CurrentURL: viewURL(view, ""),
		AddURL:     viewURL(view, "add=1"),
		Entries:    entries,
		TodayLabel: TodayLabel,
		AuthOn:     pc.authOn,
	}, nil
}

// renderModal re-renders the page with the submitted dialog and its errors.
func (pc *PageController) renderModal(c *gin.Context, view calendar.View, modal *FormModal) {
	page, err := pc.buildPage(c, view, pc.now())
	if err != nil {
		log.Printf("[DB] %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	page.Modal = modal
	c.HTML(http.StatusUnprocessableEntity, "index.html", page)
}

func (pc *PageController) lookup(c *gin.Context, raw string) *models.Reminder {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	r, err := pc.reminders.Get(c.Request.Context(), uint(id))
	if err != nil {
		if !errors.Is(err, services.ErrReminderNotFound) {
			log.Printf("[DB] %v", err)
		}
		return nil
	}
	return r
}

// viewFromForm reads the year and month hidden inputs that keep the
// displayed month across a submit.
func (pc *PageController) viewFromForm(c *gin.Context) calendar.View {
	y, yErr := strconv.Atoi(c.PostForm("year"))
	m, mErr := strconv.Atoi(c.PostForm("month"))
	if yErr == nil && mErr == nil {
		if v, err := calendar.NewView(y, m); err == nil {
			return v
		}
	}
	return calendar.Current(pc.now())
}

func addModal() *FormModal {
	return &FormModal{
		Title:  "Add schedule",
		Action: "/reminders",
		Submit: "Save",
		Errors: map[string]string{},
	}
}

func editModal(r *models.Reminder) *FormModal {
	m := &FormModal{
		Title:    "Edit schedule",
		Action:   fmt.Sprintf("/reminders/%d", r.ID),
		IDPrefix: "edit-",
		Submit:   "Update",
		Subject:  r.Subject,
		Message:  r.Message,
		Errors:   map[string]string{},
	}
	if !r.Date.IsZero() {
		m.Date = r.Date.String()
	}
	return m
}

func (m *FormModal) fill(c *gin.Context) {
	m.Subject = c.PostForm("subject")
	m.Message = c.PostForm("message")
	m.Date = c.PostForm("date")
}

// validate runs the form rules and, once they pass, the same limits the
// JSON API enforces. Each call replaces the previous errors.
func (m *FormModal) validate() (services.ReminderInput, bool) {
	m.Errors = map[string]string{}
	subjectID := m.IDPrefix + "subject"
	messageID := m.IDPrefix + "message"
	dateID := m.IDPrefix + "date"

	for _, fe := range utils.ValidateForm(
		utils.TextField(subjectID, m.Subject),
		utils.TextField(messageID, m.Message),
		utils.DateField(dateID, m.Date),
	) {
		m.Errors[fe.Field] = fe.Message
	}

	if _, bad := m.Errors[subjectID]; !bad && utf8.RuneCountInString(m.Subject) > maxSubjectLength {
		m.Errors[subjectID] = utils.MsgTooLong
	}
	date, err := models.ParseDate(m.Date)
	if _, bad := m.Errors[dateID]; !bad && err != nil {
		m.Errors[dateID] = utils.MsgInvalidDate
	}

	if len(m.Errors) > 0 {
		return services.ReminderInput{}, false
	}
	return services.ReminderInput{Subject: m.Subject, Message: m.Message, Date: date}, true
}

// viewURL links to the home page showing v, with an optional extra query.
func viewURL(v calendar.View, extra string) string {
	q := url.Values{}
	q.Set("year", strconv.Itoa(v.Year))
	q.Set("month", strconv.Itoa(int(v.Month)))
	u := "/?" + q.Encode()
	if extra != "" {
		u += "&" + extra
	}
	return u
}
