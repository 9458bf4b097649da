package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 9, 5, 30, 0, time.Local)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("  14:30 ")
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:30"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("half past nine")
	assert.Error(t, err)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.Error(t, TimeString("24:00").Validate())
	assert.Error(t, TimeString("9:30").Validate())
	assert.Error(t, TimeString("").Validate())
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 645, m)

	_, err = TimeString("bad").Minutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), ts)

	// Переход через полночь
	ts, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), ts)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:30"))
	assert.False(t, TimeString("10:30").IsBefore("10:30"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("bad").IsBefore("10:00"))
}

func TestTimeString_Format12Hour(t *testing.T) {
	assert.Equal(t, "9:30 AM", TimeString("09:30").Format12Hour())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Format12Hour())
	assert.Equal(t, "12:15 AM", TimeString("00:15").Format12Hour())
	assert.Equal(t, "11:59 PM", TimeString("23:59").Format12Hour())
	// Некорректное значение возвращается как есть
	assert.Equal(t, "oops", TimeString("oops").Format12Hour())
}

func TestDateOnly(t *testing.T) {
	moment := time.Date(2026, 7, 4, 18, 45, 12, 999, time.Local)
	day := DateOnly(moment)
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, 0, day.Minute())
	assert.True(t, IsSameDay(moment, day))
	assert.False(t, IsSameDay(moment, moment.AddDate(0, 0, 1)))
}
