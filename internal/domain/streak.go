package domain

import "time"

// StreakBonusInterval is the cadence of consecutive-day bonuses:
// every 7th not-broken advance pays StreakBonusFans.
const StreakBonusInterval = 7

// StreakUpdate is the outcome of a single streak advance.
type StreakUpdate struct {
	CurrentStreak int
	LongestStreak int
	// BonusEarned is true when the advance landed on a bonus interval.
	BonusEarned bool
	// Broken is true when the advance reset the streak.
	Broken bool
	// Deduped is true when a not-broken advance was ignored because the
	// streak already advanced on the same calendar day.
	Deduped bool
	LastActiveDate time.Time
}

// AdvanceStreak applies one "daily activity confirmed" (or "daily
// activity missed") fact to a streak. The tracker owns same-day
// deduplication: a second not-broken advance on the same UTC calendar
// day is a no-op. A break also stamps the last-active date but leaves
// the streak at zero, where a not-broken advance always leaves it at
// one or more; current > 0 therefore tells a same-day advance apart
// from a same-day break, so a routine right after the watchdog break
// still counts.
func AdvanceStreak(current, longest int, lastActive *time.Time, broken bool, now time.Time) StreakUpdate {
	if !broken && current > 0 && lastActive != nil && sameDay(*lastActive, now) {
		return StreakUpdate{
			CurrentStreak:  current,
			LongestStreak:  longest,
			Deduped:        true,
			LastActiveDate: *lastActive,
		}
	}

	update := StreakUpdate{LastActiveDate: now}
	if broken {
		update.CurrentStreak = 0
		update.Broken = true
	} else {
		update.CurrentStreak = current + 1
		update.BonusEarned = update.CurrentStreak%StreakBonusInterval == 0
	}

	update.LongestStreak = longest
	if update.CurrentStreak > update.LongestStreak {
		update.LongestStreak = update.CurrentStreak
	}

	return update
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()

	return ay == by && am == bm && ad == bd
}
