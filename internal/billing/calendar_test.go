package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountLessons_January2025(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		join    time.Time
		want    LessonCount
	}{
		{"odd whole month", PatternOdd, date(2024, 12, 20), LessonCount{Planned: 14, Charged: 14}},
		{"even whole month", PatternEven, date(2025, 1, 1), LessonCount{Planned: 13, Charged: 13}},
		{"odd mid month", PatternOdd, date(2025, 1, 15), LessonCount{Planned: 14, Charged: 8}},
		{"even mid month", PatternEven, date(2025, 1, 15), LessonCount{Planned: 13, Charged: 7}},
		{"join after month", PatternOdd, date(2025, 2, 1), LessonCount{Planned: 14, Charged: 0}},
		{"join on last lesson", PatternOdd, date(2025, 1, 31), LessonCount{Planned: 14, Charged: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountLessons(tt.pattern, 2025, 1, tt.join)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountLessons_IgnoresClockOfJoinDate(t *testing.T) {
	tashkent := time.FixedZone("UZT", 5*60*60)
	join := time.Date(2025, 1, 15, 23, 59, 0, 0, tashkent)

	got, err := CountLessons(PatternOdd, 2025, 1, join)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Charged)
}

func TestCountLessons_MatchesDayScan(t *testing.T) {
	weekdays := map[string]map[time.Weekday]bool{
		PatternOdd:  {time.Monday: true, time.Wednesday: true, time.Friday: true},
		PatternEven: {time.Tuesday: true, time.Thursday: true, time.Saturday: true},
	}

	for _, year := range []int{2024, 2025} {
		for month := 1; month <= 12; month++ {
			for pattern, days := range weekdays {
				join := date(year, time.Month(month), 10)
				planned, charged := 0, 0
				for d := date(year, time.Month(month), 1); int(d.Month()) == month; d = d.AddDate(0, 0, 1) {
					if days[d.Weekday()] {
						planned++
						if d.Day() >= 10 {
							charged++
						}
					}
				}

				got, err := CountLessons(pattern, year, month, join)
				require.NoError(t, err)
				assert.Equal(t, LessonCount{Planned: planned, Charged: charged}, got, "%s %d-%02d", pattern, year, month)
			}
		}
	}
}

func TestLessonDates_Ordered(t *testing.T) {
	dates, err := LessonDates(PatternEven, 2025, 2)
	require.NoError(t, err)
	require.NotEmpty(t, dates)

	assert.Equal(t, date(2025, 2, 1), dates[0])
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]))
	}
}

func TestCountLessons_Errors(t *testing.T) {
	_, err := CountLessons("WEEKEND", 2025, 1, date(2025, 1, 1))
	assert.ErrorIs(t, err, ErrUnknownPattern)

	_, err = CountLessons(PatternOdd, 2025, 13, date(2025, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
