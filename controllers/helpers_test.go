package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scheduler-backend/config"
	"scheduler-backend/models"
	"scheduler-backend/services"
	"scheduler-backend/utils"
	"scheduler-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testToday is the pinned "now" for page and calendar tests.
var testToday = time.Date(2025, time.March, 20, 10, 0, 0, 0, time.Local)

type testApp struct {
	router    *gin.Engine
	reminders *services.ReminderService
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()

	db, err := config.ConnectDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { config.CloseDB(db) })

	tmpl, err := views.Templates()
	require.NoError(t, err)

	svc := services.NewReminderService(db)
	clock := utils.FixedClock(testToday)
	rc := NewReminderController(svc)
	cc := NewCalendarController(svc, clock)
	pc := NewPageController(svc, clock, false)
	dc := NewDashboardController(svc, clock)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/health", Health(db))

	api := r.Group("/api")
	api.GET("/schedules", rc.GetReminders)
	api.GET("/schedules/:id", rc.GetReminder)
	api.POST("/schedule/add", rc.CreateReminder)
	api.PUT("/schedule/edit/:id", rc.UpdateReminder)
	api.DELETE("/schedules/:id", rc.DeleteReminder)
	api.GET("/calendar", cc.GetCalendar)
	api.GET("/calendar.ics", cc.ExportICS)
	api.GET("/dashboard", dc.GetDashboardOverview)

	r.GET("/", pc.Index)
	r.POST("/reminders", pc.CreateReminder)
	r.POST("/reminders/:id", pc.UpdateReminder)
	r.POST("/reminders/:id/delete", pc.DeleteReminder)

	return &testApp{router: r, reminders: svc}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = bytes.NewBuffer(nil)
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) seed(t *testing.T, subject, message, date string) *models.Reminder {
	t.Helper()
	d, err := models.ParseDate(date)
	require.NoError(t, err)
	r, err := a.reminders.Create(context.Background(), services.ReminderInput{Subject: subject, Message: message, Date: d})
	require.NoError(t, err)
	return r
}

func (a *testApp) list(t *testing.T) []models.Reminder {
	t.Helper()
	list, err := a.reminders.List(context.Background())
	require.NoError(t, err)
	return list
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
