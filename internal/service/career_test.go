package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

const testSeason = "2026-1"

type fakeCareerRepo struct {
	careers map[uint]domain.Career
	txns    map[uint][]domain.FanTransaction
	nextID  uint
}

func newFakeCareerRepo() *fakeCareerRepo {
	return &fakeCareerRepo{
		careers: make(map[uint]domain.Career),
		txns:    make(map[uint][]domain.FanTransaction),
		nextID:  1,
	}
}

func (f *fakeCareerRepo) GetOrCreate(_ context.Context, studentID uint, seasonID string) (domain.Career, error) {
	if career, ok := f.careers[studentID]; ok {
		return career, nil
	}

	career := domain.Career{
		ID:        f.nextID,
		StudentID: studentID,
		SeasonID:  seasonID,
		Level:     domain.LevelShower,
	}
	f.nextID++
	f.careers[studentID] = career

	return career, nil
}

func (f *fakeCareerRepo) SaveWithTransactions(_ context.Context, career domain.Career, txns []domain.FanTransaction) (domain.Career, error) {
	f.careers[career.StudentID] = career

	history := f.txns[career.StudentID]
	for _, t := range txns {
		history = append([]domain.FanTransaction{t}, history...)
	}
	if len(history) > domain.FanHistoryCap {
		history = history[:domain.FanHistoryCap]
	}
	f.txns[career.StudentID] = history

	return career, nil
}

func (f *fakeCareerRepo) ListTransactions(_ context.Context, studentID uint, _ string, limit int) ([]domain.FanTransaction, error) {
	history := f.txns[studentID]
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	return history, nil
}

func (f *fakeCareerRepo) ListLapsed(_ context.Context, _ string, cutoff time.Time) ([]domain.Career, error) {
	var lapsed []domain.Career
	for _, career := range f.careers {
		if career.CurrentStreak > 0 && career.LastActiveDate != nil && career.LastActiveDate.Before(cutoff) {
			lapsed = append(lapsed, career)
		}
	}

	return lapsed, nil
}

func (f *fakeCareerRepo) ListTop(_ context.Context, _ string, limit int) ([]domain.Career, error) {
	var careers []domain.Career
	for _, career := range f.careers {
		careers = append(careers, career)
	}
	sort.Slice(careers, func(i, j int) bool {
		return careers[i].Fans > careers[j].Fans
	})
	if len(careers) > limit {
		careers = careers[:limit]
	}

	return careers, nil
}

type fakeAchievementRepo struct {
	catalog  []domain.Achievement
	unlocked map[uint][]domain.StudentAchievement
}

func newFakeAchievementRepo(catalog ...domain.Achievement) *fakeAchievementRepo {
	return &fakeAchievementRepo{
		catalog:  catalog,
		unlocked: make(map[uint][]domain.StudentAchievement),
	}
}

func (f *fakeAchievementRepo) ListActive(_ context.Context) ([]domain.Achievement, error) {
	return f.catalog, nil
}

func (f *fakeAchievementRepo) ListUnlocked(_ context.Context, studentID uint) ([]domain.StudentAchievement, error) {
	return f.unlocked[studentID], nil
}

func (f *fakeAchievementRepo) Unlock(_ context.Context, studentID, achievementID uint, at time.Time) error {
	for _, u := range f.unlocked[studentID] {
		if u.AchievementID == achievementID {
			return repository.ErrAchievementAlreadyUnlocked
		}
	}

	f.unlocked[studentID] = append(f.unlocked[studentID], domain.StudentAchievement{
		StudentID:     studentID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	})

	return nil
}

type fakeTourRepo struct {
	tours map[uint]domain.Tour
	shows map[uint]domain.TourShow
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{
		tours: make(map[uint]domain.Tour),
		shows: make(map[uint]domain.TourShow),
	}
}

func (f *fakeTourRepo) FindByID(_ context.Context, id uint) (domain.Tour, error) {
	tour, ok := f.tours[id]
	if !ok {
		return domain.Tour{}, repository.ErrTourNotFound
	}

	return tour, nil
}

func (f *fakeTourRepo) FindActive(_ context.Context, studentID uint, _ string) (domain.Tour, error) {
	for _, tour := range f.tours {
		if tour.StudentID == studentID && !tour.Completed {
			return tour, nil
		}
	}

	return domain.Tour{}, repository.ErrTourNotFound
}

func (f *fakeTourRepo) Save(_ context.Context, tour domain.Tour) (domain.Tour, error) {
	f.tours[tour.ID] = tour

	return tour, nil
}

func (f *fakeTourRepo) FindShow(_ context.Context, id uint) (domain.TourShow, error) {
	show, ok := f.shows[id]
	if !ok {
		return domain.TourShow{}, repository.ErrTourShowNotFound
	}

	return show, nil
}

func (f *fakeTourRepo) ListShows(_ context.Context, tourID uint) ([]domain.TourShow, error) {
	var shows []domain.TourShow
	for _, show := range f.shows {
		if show.TourID == tourID {
			shows = append(shows, show)
		}
	}

	return shows, nil
}

func (f *fakeTourRepo) SaveShow(_ context.Context, show domain.TourShow) (domain.TourShow, error) {
	f.shows[show.ID] = show

	return show, nil
}

func newTestCareerService(repo *fakeCareerRepo, achievements *fakeAchievementRepo, tours *fakeTourRepo) *CareerService {
	svc := NewCareerService(repo, achievements, tours, nil, testSeason)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}

	return svc
}

func TestCareerService_ApplyEvent_SevenDayStreak(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		current := day.AddDate(0, 0, i)
		svc.now = func() time.Time { return current }

		_, err := svc.ApplyEvent(context.Background(), 1, domain.EventRoutineCompleted)
		require.NoError(t, err)
	}

	career := repo.careers[1]
	assert.Equal(t, 7*50+800, career.Fans)
	assert.Equal(t, 7, career.CurrentStreak)
	assert.Equal(t, 7, career.LongestStreak)
	assert.Equal(t, domain.LevelGarage, career.Level)
}

func TestCareerService_ApplyEvent_SameDayRoutineDeduped(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	_, err := svc.ApplyEvent(context.Background(), 1, domain.EventRoutineCompleted)
	require.NoError(t, err)

	_, err = svc.ApplyEvent(context.Background(), 1, domain.EventRoutineCompleted)
	assert.ErrorIs(t, err, ErrRoutineAlreadyCompleted)

	career := repo.careers[1]
	assert.Equal(t, 50, career.Fans)
	assert.Equal(t, 1, career.CurrentStreak)
}

func TestCareerService_RoutineAfterWatchdogBreakCounts(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	lapsedDate := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	repo.careers[1] = domain.Career{ID: 1, StudentID: 1, SeasonID: testSeason, Fans: 300, CurrentStreak: 5, LongestStreak: 5, LastActiveDate: &lapsedDate}

	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)
	}
	broken, err := svc.BreakLapsedStreaks(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, broken)

	// The break stamps the last-active date; a routine later the same
	// day must still restart the streak.
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	career, err := svc.ApplyEvent(context.Background(), 1, domain.EventRoutineCompleted)
	require.NoError(t, err)

	assert.Equal(t, 1, career.CurrentStreak)
	assert.Equal(t, 5, career.LongestStreak)
	assert.Equal(t, 300-50+50, career.Fans)

	_, err = svc.ApplyEvent(context.Background(), 1, domain.EventRoutineCompleted)
	assert.ErrorIs(t, err, ErrRoutineAlreadyCompleted)
}

func TestCareerService_ApplyEvent_PositiveReview(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	career, err := svc.ApplyEvent(context.Background(), 1, domain.EventReviewPositive)
	require.NoError(t, err)

	assert.Equal(t, 300, career.Fans)
	assert.Equal(t, 1, career.ApprovedDemos)
	assert.Equal(t, 0, career.CurrentStreak)
}

func TestCareerService_ApplyEvent_FansClampAtZero(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	career, _ := repo.GetOrCreate(context.Background(), 1, testSeason)
	career.Fans = 10
	repo.careers[1] = career

	updated, err := svc.ApplyEvent(context.Background(), 1, domain.EventPressQuizFailed)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.Fans)

	// The ledger keeps the amount as charged, not the clamped delta.
	txns := repo.txns[1]
	require.Len(t, txns, 1)
	assert.Equal(t, -20, txns[0].Amount)
}

func TestCareerService_ApplyEvent_UnknownKind(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	_, err := svc.ApplyEvent(context.Background(), 1, domain.EventKind("TROPHY_POLISHED"))
	assert.ErrorIs(t, err, domain.ErrUnknownEventKind)
	assert.Empty(t, repo.careers)
}

func TestCareerService_ApplyEvent_StreakBrokenBreaksTour(t *testing.T) {
	repo := newFakeCareerRepo()
	tours := newFakeTourRepo()
	tours.tours[1] = domain.Tour{
		ID:        1,
		StudentID: 1,
		SeasonID:  testSeason,
		Status:    domain.TourActive,
	}

	svc := newTestCareerService(repo, newFakeAchievementRepo(), tours)

	career, _ := repo.GetOrCreate(context.Background(), 1, testSeason)
	career.Fans = 100
	career.CurrentStreak = 5
	career.LongestStreak = 5
	repo.careers[1] = career

	updated, err := svc.ApplyEvent(context.Background(), 1, domain.EventStreakBroken)
	require.NoError(t, err)

	assert.Equal(t, 50, updated.Fans)
	assert.Equal(t, 0, updated.CurrentStreak)
	assert.Equal(t, 5, updated.LongestStreak)
	assert.Equal(t, domain.TourBroken, tours.tours[1].Status)
}

func TestCareerService_AchievementUnlockedOnce(t *testing.T) {
	repo := newFakeCareerRepo()
	achievements := newFakeAchievementRepo(domain.Achievement{
		ID:          7,
		Title:       "Three in a Row",
		Category:    domain.AchievementStreak,
		Requirement: 3,
		FansReward:  100,
		IsActive:    true,
	})
	svc := newTestCareerService(repo, achievements, newFakeTourRepo())

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		current := day.AddDate(0, 0, i)
		svc.now = func() time.Time { return current }

		_, err := svc.ApplyEvent(context.Background(), 1, domain.EventRoutineCompleted)
		require.NoError(t, err)
	}

	career := repo.careers[1]
	assert.Equal(t, 1, career.TotalAchievements)
	assert.Equal(t, 4*50+100, career.Fans)
	assert.Len(t, achievements.unlocked[1], 1)
}

func TestCareerService_LedgerCapped(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	for i := 0; i < domain.FanHistoryCap+10; i++ {
		_, err := svc.ApplyEvent(context.Background(), 1, domain.EventReviewCritical)
		require.NoError(t, err)
	}

	history, err := svc.GetFanHistory(context.Background(), 1, domain.FanHistoryCap)
	require.NoError(t, err)
	assert.Len(t, history, domain.FanHistoryCap)
}

func TestCareerService_CheckInTourShow_FinishesTour(t *testing.T) {
	repo := newFakeCareerRepo()
	tours := newFakeTourRepo()
	tours.tours[1] = domain.Tour{
		ID:        1,
		StudentID: 1,
		SeasonID:  testSeason,
		Status:    domain.TourActive,
	}
	tours.shows[10] = domain.TourShow{ID: 10, TourID: 1, City: "Sevilla"}
	tours.shows[11] = domain.TourShow{ID: 11, TourID: 1, City: "Madrid", CheckedIn: true}

	svc := newTestCareerService(repo, newFakeAchievementRepo(), tours)

	show, err := svc.CheckInTourShow(context.Background(), 1, 1, 10)
	require.NoError(t, err)
	assert.True(t, show.CheckedIn)

	career := repo.careers[1]
	assert.Equal(t, 100, career.Fans)
	assert.Equal(t, 1, career.ToursCompleted)
	assert.Equal(t, domain.TourFinished, tours.tours[1].Status)
	assert.True(t, tours.tours[1].Completed)

	_, err = svc.CheckInTourShow(context.Background(), 1, 1, 10)
	assert.ErrorIs(t, err, ErrShowAlreadyCheckedIn)
}

func TestCareerService_CheckInTourShow_WrongStudent(t *testing.T) {
	repo := newFakeCareerRepo()
	tours := newFakeTourRepo()
	tours.tours[1] = domain.Tour{ID: 1, StudentID: 2, Status: domain.TourActive}
	tours.shows[10] = domain.TourShow{ID: 10, TourID: 1}

	svc := newTestCareerService(repo, newFakeAchievementRepo(), tours)

	_, err := svc.CheckInTourShow(context.Background(), 1, 1, 10)
	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestCareerService_BreakLapsedStreaks(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	lapsedDate := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	freshDate := time.Date(2026, 2, 28, 21, 0, 0, 0, time.UTC)
	repo.careers[1] = domain.Career{ID: 1, StudentID: 1, SeasonID: testSeason, Fans: 200, CurrentStreak: 4, LongestStreak: 4, LastActiveDate: &lapsedDate}
	repo.careers[2] = domain.Career{ID: 2, StudentID: 2, SeasonID: testSeason, Fans: 200, CurrentStreak: 2, LongestStreak: 2, LastActiveDate: &freshDate}

	broken, err := svc.BreakLapsedStreaks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, broken)
	assert.Equal(t, 0, repo.careers[1].CurrentStreak)
	assert.Equal(t, 150, repo.careers[1].Fans)
	assert.Equal(t, 2, repo.careers[2].CurrentStreak)
}

func TestCareerService_Leaderboard_FallsBackToDB(t *testing.T) {
	repo := newFakeCareerRepo()
	svc := newTestCareerService(repo, newFakeAchievementRepo(), newFakeTourRepo())

	repo.careers[1] = domain.Career{StudentID: 1, SeasonID: testSeason, Fans: 700, Level: domain.LevelGarage}
	repo.careers[2] = domain.Career{StudentID: 2, SeasonID: testSeason, Fans: 2500, Level: domain.LevelUnderground}

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, uint(2), entries[0].StudentID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, uint(1), entries[1].StudentID)
	assert.Equal(t, 2, entries[1].Rank)
}
