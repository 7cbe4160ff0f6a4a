package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-28", d.String())
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())

	for _, bad := range []string{"", "2024-13-01", "28.02.2024", "2024-02-30"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestDate_DaysUntil(t *testing.T) {
	start := NewDate(2025, time.January, 1)
	assert.Equal(t, 0, start.DaysUntil(start))
	assert.Equal(t, 365, start.DaysUntil(NewDate(2026, time.January, 1)))
	assert.Equal(t, -1, start.DaysUntil(NewDate(2024, time.December, 31)))
}

func TestDateOf(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	d := DateOf(time.Date(2025, 5, 9, 23, 30, 0, 0, moscow))
	assert.Equal(t, "2025-05-09", d.String())
	assert.Equal(t, time.UTC, d.Location())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-03-10"}`), &payload))
	assert.Equal(t, NewDate(2025, time.March, 10), payload.Date)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-10"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"date":20250310}`), &payload))
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"date":"2025/03/10"}`), &payload), ErrInvalidInput)
}
