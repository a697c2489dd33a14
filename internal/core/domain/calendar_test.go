package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGrid_MondayStart(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	grid := BuildMonthGrid(2024, time.February, nil)

	require.Len(t, grid.Weeks, 5)
	assert.Equal(t, "February", grid.Name)
	assert.Equal(t, 2, grid.Month)
	assert.Equal(t, 2024, grid.Year)

	first := grid.Weeks[0]
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0, first[i].Day, "cell %d should be blank", i)
	}
	assert.Equal(t, 1, first[3].Day)
	assert.Equal(t, 4, first[6].Day)

	last := grid.Weeks[4]
	assert.Equal(t, 26, last[0].Day)
	assert.Equal(t, 29, last[3].Day)
	assert.Equal(t, 0, last[4].Day)
}

func TestBuildMonthGrid_MonthStartingOnMonday(t *testing.T) {
	// January 2024 starts on a Monday.
	grid := BuildMonthGrid(2024, time.January, nil)
	require.NotEmpty(t, grid.Weeks)
	assert.Equal(t, 1, grid.Weeks[0][0].Day)
}

func TestBuildMonthGrid_EveryDayOnce(t *testing.T) {
	grid := BuildMonthGrid(2023, time.September, nil)
	seen := map[int]int{}
	for _, w := range grid.Weeks {
		for _, c := range w {
			if c.Day != 0 {
				seen[c.Day]++
			}
		}
	}
	assert.Len(t, seen, 30)
	for d, n := range seen {
		assert.Equal(t, 1, n, "day %d", d)
	}
}

func TestBuildMonthGrid_MarksLoggedDays(t *testing.T) {
	logged := map[CivilDate]struct{}{
		{Year: 2024, Month: time.March, Day: 3}:  {},
		{Year: 2024, Month: time.March, Day: 17}: {},
		// other months never leak into the grid
		{Year: 2024, Month: time.April, Day: 3}: {},
	}

	grid := BuildMonthGrid(2024, time.March, logged)

	var marked []int
	for _, w := range grid.Weeks {
		for _, c := range w {
			if c.Day == 0 {
				assert.False(t, c.IsLogged, "blank cell must not be logged")
				continue
			}
			if c.IsLogged {
				marked = append(marked, c.Day)
			}
		}
	}
	assert.Equal(t, []int{3, 17}, marked)
}

func TestParseMonthStep(t *testing.T) {
	s, err := ParseMonthStep("")
	require.NoError(t, err)
	assert.Equal(t, MonthStepExact, s)

	s, err = ParseMonthStep("legacy31")
	require.NoError(t, err)
	assert.Equal(t, MonthStepLegacy31, s)

	_, err = ParseMonthStep("weekly")
	assert.Error(t, err)
}

func TestFollowingMonths_Exact(t *testing.T) {
	got := FollowingMonths(time.Date(2024, time.November, 30, 15, 0, 0, 0, time.UTC), 3, MonthStepExact)
	require.Len(t, got, 3)
	assert.Equal(t, time.December, got[0].Month())
	assert.Equal(t, time.January, got[1].Month())
	assert.Equal(t, 2025, got[1].Year())
	assert.Equal(t, time.February, got[2].Month())
}

func TestFollowingMonths_LegacyMatchesExactForShortRanges(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		from := time.Date(2025, m, 28, 0, 0, 0, 0, time.UTC)
		assert.Equal(t,
			FollowingMonths(from, 3, MonthStepExact),
			FollowingMonths(from, 3, MonthStepLegacy31),
			"month %s", m)
	}
}

func TestFollowingMonths_LegacyDriftsOverLongRanges(t *testing.T) {
	from := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	exact := FollowingMonths(from, 51, MonthStepExact)
	legacy := FollowingMonths(from, 51, MonthStepLegacy31)

	assert.Equal(t, time.April, exact[50].Month())
	assert.Equal(t, time.May, legacy[50].Month())
	assert.Equal(t, 2029, legacy[50].Year())
}
