package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOnly(t *testing.T) {
	d, err := ParseDateOnly("2026-04-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-15", d.String())

	_, err = ParseDateOnly("15.04.2026")
	assert.Error(t, err)

	_, err = ParseDateOnly("2026-04-15T10:00:00Z")
	assert.Error(t, err)

	_, err = ParseDateOnly("")
	assert.Error(t, err)
}

func TestNewDateOnlyIgnoresTimeOfDay(t *testing.T) {
	// Любое время суток одного дня дает одно и то же значение
	morning := time.Date(2026, 4, 15, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 4, 15, 23, 59, 59, 0, time.UTC)

	assert.True(t, NewDateOnly(morning).Equal(NewDateOnly(evening)))
	assert.Equal(t, NewDateOnly(morning).String(), NewDateOnly(evening).String())
}

func TestDateOnlyTime(t *testing.T) {
	d, err := ParseDateOnly("2026-04-15")
	require.NoError(t, err)

	ts := d.Time()
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, 0, ts.Hour())
	assert.Equal(t, 15, ts.Day())
}

func TestDateOnlyAddDays(t *testing.T) {
	d, err := ParseDateOnly("2026-04-28")
	require.NoError(t, err)

	assert.Equal(t, "2026-05-03", d.AddDays(5).String())
	assert.Equal(t, "2026-04-21", d.AddDays(-7).String())

	// Переход через границу года
	newYear, err := ParseDateOnly("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2027-01-01", newYear.AddDays(1).String())
}

func TestDateOnlyOrdering(t *testing.T) {
	early, err := ParseDateOnly("2026-04-15")
	require.NoError(t, err)
	late, err := ParseDateOnly("2026-04-16")
	require.NoError(t, err)

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.False(t, early.Equal(late))
	assert.True(t, early.Equal(early))
}

func TestDateOnlyJSON(t *testing.T) {
	d, err := ParseDateOnly("2026-04-15")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-04-15"`, string(raw))

	var decoded DateOnly
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, d.Equal(decoded))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &decoded))
}

func TestDateOnlyScan(t *testing.T) {
	var d DateOnly

	require.NoError(t, d.Scan(time.Date(2026, 4, 15, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2026-04-15", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateOnlyIsZero(t *testing.T) {
	var zero DateOnly
	assert.True(t, zero.IsZero())

	d, err := ParseDateOnly("2026-04-15")
	require.NoError(t, err)
	assert.False(t, d.IsZero())
}
