package domain

import "time"

// ArtistLevel is derived from the career's fan count, never stored on its own.
type ArtistLevel string

const (
	LevelShower      ArtistLevel = "SHOWER"
	LevelGarage      ArtistLevel = "GARAGE"
	LevelUnderground ArtistLevel = "UNDERGROUND"
	LevelIndie       ArtistLevel = "INDIE"
	LevelRisingStar  ArtistLevel = "RISING_STAR"
	LevelHeadliner   ArtistLevel = "HEADLINER"
	LevelMainStage   ArtistLevel = "MAIN_STAGE"
)

type levelTier struct {
	MinFans     int
	Level       ArtistLevel
	DisplayName string
}

// levelTable is sorted ascending by MinFans; the last tier is open-ended.
var levelTable = []levelTier{
	{0, LevelShower, "Shower Artist"},
	{500, LevelGarage, "Garage Band"},
	{2000, LevelUnderground, "Underground"},
	{5000, LevelIndie, "Indie"},
	{10000, LevelRisingStar, "Rising Star"},
	{20000, LevelHeadliner, "Headliner"},
	{50000, LevelMainStage, "Main Stage"},
}

// LevelForFans maps a non-negative fan count to its level.
// Total over its domain: every count lands in exactly one tier.
func LevelForFans(fans int) ArtistLevel {
	tier := levelTable[0]
	for _, t := range levelTable {
		if fans >= t.MinFans {
			tier = t
		}
	}

	return tier.Level
}

// LevelProgress describes where a fan count sits within its tier.
type LevelProgress struct {
	Level       ArtistLevel `json:"level"`
	DisplayName string      `json:"display_name"`
	FansToNext  int         `json:"fans_to_next"`
	Percent     int         `json:"percent"`
}

func ProgressForFans(fans int) LevelProgress {
	idx := 0
	for i, t := range levelTable {
		if fans >= t.MinFans {
			idx = i
		}
	}
	tier := levelTable[idx]

	if idx == len(levelTable)-1 {
		return LevelProgress{
			Level:       tier.Level,
			DisplayName: tier.DisplayName,
			FansToNext:  0,
			Percent:     100,
		}
	}

	next := levelTable[idx+1]
	span := next.MinFans - tier.MinFans
	percent := (fans - tier.MinFans) * 100 / span

	return LevelProgress{
		Level:       tier.Level,
		DisplayName: tier.DisplayName,
		FansToNext:  next.MinFans - fans,
		Percent:     percent,
	}
}

// LeaderboardEntry is one row of the season ranking, ordered by fans.
type LeaderboardEntry struct {
	Rank      int         `json:"rank"`
	StudentID uint        `json:"student_id"`
	Fans      int         `json:"fans"`
	Level     ArtistLevel `json:"level"`
}

// FanHistoryCap bounds the per-career transaction log. Oldest entries
// are evicted first once the cap is exceeded.
const FanHistoryCap = 50

type FanTransaction struct {
	ID        uint      `json:"id"`
	EventID   string    `json:"event_id"`
	StudentID uint      `json:"student_id"`
	SeasonID  string    `json:"season_id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Career is the per-student, per-season progression aggregate.
// Fans never goes negative; LongestStreak never drops below CurrentStreak.
type Career struct {
	ID                uint        `json:"id"`
	StudentID         uint        `json:"student_id"`
	SeasonID          string      `json:"season_id"`
	Fans              int         `json:"fans"`
	Level             ArtistLevel `json:"level"`
	CurrentStreak     int         `json:"current_streak"`
	LongestStreak     int         `json:"longest_streak"`
	TotalDemos        int         `json:"total_demos"`
	ApprovedDemos     int         `json:"approved_demos"`
	TotalAchievements int         `json:"total_achievements"`
	ToursCompleted    int         `json:"tours_completed"`
	LastActiveDate    *time.Time  `json:"last_active_date,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ApplyFanDelta adjusts the running fan total, clamping at zero.
// The transaction amount itself is stored as given; only the balance clamps.
func (c *Career) ApplyFanDelta(amount int) {
	c.Fans += amount
	if c.Fans < 0 {
		c.Fans = 0
	}
	c.Level = LevelForFans(c.Fans)
}
