package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyOf(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-02", DateKeyOf(instant, time.UTC).String())
	assert.Equal(t, "2024-03-01", DateKeyOf(instant, ny).String())
	assert.Equal(t, "2024-03-02", DateKeyOf(instant, nil).String())
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		in      string
		want    DateKey
		wantErr bool
	}{
		{in: "2024-05-10", want: DateKey{2024, time.May, 10}},
		{in: "2024-02-29", want: DateKey{2024, time.February, 29}},
		{in: "2023-02-29", wantErr: true},
		{in: "10-05-2024", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDateKey_At(t *testing.T) {
	day := MustParseDateKey("2024-05-10")
	clock := time.Date(2030, 1, 1, 14, 30, 5, 0, time.UTC)

	got := day.At(clock, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 10, 14, 30, 5, 0, time.UTC), got)
	assert.Equal(t, day, DateKeyOf(got, time.UTC))
}

func TestDateKey_Navigation(t *testing.T) {
	assert.Equal(t, "2024-03-01", MustParseDateKey("2024-02-29").AddDays(1).String())
	assert.Equal(t, "2023-12-31", MustParseDateKey("2024-01-01").AddDays(-1).String())
	assert.True(t, MustParseDateKey("2024-01-01").Before(MustParseDateKey("2024-01-02")))

	days := MustParseDateKey("2024-02-14").DaysInMonth()
	assert.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0].String())
	assert.Equal(t, "2024-02-29", days[28].String())
}

func TestDateKey_JSON(t *testing.T) {
	r := Reminder{ID: "r1", Date: MustParseDateKey("2024-05-10"), Time: "09:15"}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-05-10"`)

	var back Reminder
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.Date, back.Date)
}

func TestReminder_StartsAt(t *testing.T) {
	r := Reminder{Date: MustParseDateKey("2024-05-10"), Time: "09:15"}
	assert.Equal(t, time.Date(2024, 5, 10, 9, 15, 0, 0, time.UTC), r.StartsAt(time.UTC))

	r.Time = "bogus"
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), r.StartsAt(time.UTC))
}
