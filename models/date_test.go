package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-20")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 20}, d)
	assert.Equal(t, "2025-03-20", d.String())
}

func TestParseDateRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "invalid-date", "2025-02-30", "2025-13-01", "20-03-2025", "2025-3-20"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(Date{Year: 2025, Month: time.February, Day: 5})
	require.NoError(t, err)
	assert.Equal(t, `"2025-02-05"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-12-31"`), &d))
	assert.Equal(t, Date{Year: 2024, Month: time.December, Day: 31}, d)

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-22", d.String())

	require.NoError(t, d.Scan("2025-03-25"))
	assert.Equal(t, "2025-03-25", d.String())

	require.NoError(t, d.Scan([]byte("2025-01-02 00:00:00+00:00")))
	assert.Equal(t, "2025-01-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(3.14))
}

func TestDateValue(t *testing.T) {
	v, err := Date{Year: 2025, Month: time.March, Day: 1}.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", v)
}

func TestReminderIsOn(t *testing.T) {
	r := Reminder{Date: Date{Year: 2025, Month: time.March, Day: 20}}
	assert.True(t, r.IsOn(time.Date(2025, time.March, 20, 23, 59, 0, 0, time.Local)))
	assert.False(t, r.IsOn(time.Date(2025, time.March, 21, 0, 0, 0, 0, time.Local)))
}
