package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay_OK(t *testing.T) {
	cases := []struct {
		input string
		want  TimeOfDay
	}{
		{"00:00", 0},
		{"09:30", 9*60 + 30},
		{"23:59", 23*60 + 59},
		{"24:00", MinutesPerDay},
		{"15:04:05", 15*60 + 4}, // секунды Postgres отбрасываются
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"9am",
		"9:00",   // часы без ведущего нуля
		"09:5",   // минуты без ведущего нуля
		"25:00",
		"24:01",
		"12:60",
		"-1:00",
		"12-30",
	}

	for _, input := range inputs {
		_, err := ParseTimeOfDay(input)
		require.ErrorIs(t, err, ErrInvalidTimeOfDay, "input %q", input)
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "09:05", TimeOfDay(9*60+5).String())
	assert.Equal(t, "24:00", TimeOfDay(MinutesPerDay).String())
}

func TestTimeOfDay_Comparisons(t *testing.T) {
	morning := TimeOfDay(9 * 60)
	noon := TimeOfDay(12 * 60)

	assert.True(t, morning.IsBefore(noon))
	assert.False(t, noon.IsBefore(morning))
	assert.True(t, noon.IsAfter(morning))

	// Равные значения не раньше и не позже друг друга
	assert.False(t, noon.IsBefore(noon))
	assert.False(t, noon.IsAfter(noon))
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	start := TimeOfDay(10 * 60)
	assert.Equal(t, TimeOfDay(10*60+45), start.AddMinutes(45))
	assert.Equal(t, "11:30", start.AddMinutes(90).String())
}

func TestTimeOfDay_IsValid(t *testing.T) {
	assert.True(t, TimeOfDay(0).IsValid())
	assert.True(t, TimeOfDay(MinutesPerDay).IsValid())
	assert.False(t, TimeOfDay(-1).IsValid())
	assert.False(t, TimeOfDay(MinutesPerDay+1).IsValid())
}

func TestNewTimeOfDay_DropsSeconds(t *testing.T) {
	moment := time.Date(2026, 7, 6, 11, 42, 59, 0, time.UTC)
	assert.Equal(t, TimeOfDay(11*60+42), NewTimeOfDay(moment))
}

func TestTimeOfDay_Scan(t *testing.T) {
	var fromString TimeOfDay
	require.NoError(t, fromString.Scan("14:30:00"))
	assert.Equal(t, TimeOfDay(14*60+30), fromString)

	var fromBytes TimeOfDay
	require.NoError(t, fromBytes.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeOfDay(8*60+15), fromBytes)

	var fromTime TimeOfDay
	require.NoError(t, fromTime.Scan(time.Date(2026, 7, 6, 17, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeOfDay(17*60+5), fromTime)

	var invalid TimeOfDay
	require.Error(t, invalid.Scan(nil))
	require.Error(t, invalid.Scan(12345))
}

func TestTimeOfDay_Value(t *testing.T) {
	v, err := TimeOfDay(9*60 + 30).Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)

	_, err = TimeOfDay(-5).Value()
	require.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestTimeOfDay_JSONRoundTrip(t *testing.T) {
	encoded, err := json.Marshal(TimeOfDay(13 * 60))
	require.NoError(t, err)
	assert.Equal(t, `"13:00"`, string(encoded))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"06:45"`), &decoded))
	assert.Equal(t, TimeOfDay(6*60+45), decoded)

	require.Error(t, json.Unmarshal([]byte(`"bad"`), &decoded))
	require.Error(t, json.Unmarshal([]byte(`42`), &decoded))
}
