package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 12, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak_Continue(t *testing.T) {
	update := AdvanceStreak(3, 5, nil, false, day(1))

	assert.Equal(t, 4, update.CurrentStreak)
	assert.Equal(t, 5, update.LongestStreak)
	assert.False(t, update.BonusEarned)
	assert.False(t, update.Broken)
	assert.False(t, update.Deduped)
}

func TestAdvanceStreak_Break(t *testing.T) {
	update := AdvanceStreak(12, 12, nil, true, day(1))

	assert.Equal(t, 0, update.CurrentStreak)
	assert.Equal(t, 12, update.LongestStreak)
	assert.True(t, update.Broken)
}

func TestAdvanceStreak_SevenDayBonus(t *testing.T) {
	current, longest := 0, 0
	var lastActive *time.Time
	bonuses := 0

	for d := 1; d <= 7; d++ {
		update := AdvanceStreak(current, longest, lastActive, false, day(d))
		current, longest = update.CurrentStreak, update.LongestStreak
		active := update.LastActiveDate
		lastActive = &active
		if update.BonusEarned {
			bonuses++
		}
	}

	assert.Equal(t, 7, current)
	assert.Equal(t, 7, longest)
	assert.Equal(t, 1, bonuses)
}

func TestAdvanceStreak_BonusRepeatsEveryInterval(t *testing.T) {
	update := AdvanceStreak(13, 13, nil, false, day(1))

	assert.Equal(t, 14, update.CurrentStreak)
	assert.True(t, update.BonusEarned)
}

func TestAdvanceStreak_SameDayRepeatIsNoOp(t *testing.T) {
	first := AdvanceStreak(0, 0, nil, false, day(1))
	active := first.LastActiveDate

	second := AdvanceStreak(first.CurrentStreak, first.LongestStreak, &active, false, day(1).Add(4*time.Hour))

	assert.True(t, second.Deduped)
	assert.Equal(t, 1, second.CurrentStreak)
	assert.Equal(t, 1, second.LongestStreak)
	assert.False(t, second.BonusEarned)
}

func TestAdvanceStreak_RoutineAfterSameDayBreakCounts(t *testing.T) {
	broke := AdvanceStreak(5, 5, nil, true, day(1))
	active := broke.LastActiveDate

	update := AdvanceStreak(broke.CurrentStreak, broke.LongestStreak, &active, false, day(1).Add(10*time.Hour))

	assert.False(t, update.Deduped)
	assert.Equal(t, 1, update.CurrentStreak)
	assert.Equal(t, 5, update.LongestStreak)
}

func TestAdvanceStreak_BreakIsNeverDeduped(t *testing.T) {
	active := day(1)
	update := AdvanceStreak(4, 4, &active, true, day(1).Add(2*time.Hour))

	assert.True(t, update.Broken)
	assert.Equal(t, 0, update.CurrentStreak)
}

func TestAdvanceStreak_LongestIsHighWaterMark(t *testing.T) {
	current, longest := 0, 0
	var lastActive *time.Time

	for d := 1; d <= 20; d++ {
		broken := d == 9 // one missed day in the middle
		update := AdvanceStreak(current, longest, lastActive, broken, day(d))
		current, longest = update.CurrentStreak, update.LongestStreak
		active := update.LastActiveDate
		lastActive = &active

		assert.GreaterOrEqual(t, longest, current)
	}

	assert.Equal(t, 11, current)
	assert.Equal(t, 11, longest)
}
