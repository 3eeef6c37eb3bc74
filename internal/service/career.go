package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

var (
	ErrCareerNotFound          = repository.ErrCareerNotFound
	ErrTourNotFound            = repository.ErrTourNotFound
	ErrTourShowNotFound        = repository.ErrTourShowNotFound
	ErrUnknownEventKind        = domain.ErrUnknownEventKind
	ErrRoutineAlreadyCompleted = errors.New("routine already completed today")
	ErrShowAlreadyCheckedIn    = errors.New("tour show already checked in")
)

type CareerRepository interface {
	GetOrCreate(ctx context.Context, studentID uint, seasonID string) (domain.Career, error)
	SaveWithTransactions(ctx context.Context, career domain.Career, txns []domain.FanTransaction) (domain.Career, error)
	ListTransactions(ctx context.Context, studentID uint, seasonID string, limit int) ([]domain.FanTransaction, error)
	ListLapsed(ctx context.Context, seasonID string, cutoff time.Time) ([]domain.Career, error)
	ListTop(ctx context.Context, seasonID string, limit int) ([]domain.Career, error)
}

type AchievementRepository interface {
	ListActive(ctx context.Context) ([]domain.Achievement, error)
	ListUnlocked(ctx context.Context, studentID uint) ([]domain.StudentAchievement, error)
	Unlock(ctx context.Context, studentID, achievementID uint, at time.Time) error
}

type TourRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Tour, error)
	FindActive(ctx context.Context, studentID uint, seasonID string) (domain.Tour, error)
	Save(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	FindShow(ctx context.Context, id uint) (domain.TourShow, error)
	ListShows(ctx context.Context, tourID uint) ([]domain.TourShow, error)
	SaveShow(ctx context.Context, show domain.TourShow) (domain.TourShow, error)
}

type Leaderboard interface {
	Enabled() bool
	SetFans(ctx context.Context, seasonID string, studentID uint, fans int) error
	Top(ctx context.Context, seasonID string, limit int) ([]domain.LeaderboardEntry, error)
}

// CareerService is the single entry point for everything that changes a
// student's career. Collaborating services report outcomes as events;
// the reward table in the domain package decides the fan amounts.
type CareerService struct {
	repo         CareerRepository
	achievements AchievementRepository
	tours        TourRepository
	leaderboard  Leaderboard
	seasonID     string

	now func() time.Time
}

func NewCareerService(repo CareerRepository, achievements AchievementRepository, tours TourRepository, leaderboard Leaderboard, seasonID string) *CareerService {
	return &CareerService{
		repo:         repo,
		achievements: achievements,
		tours:        tours,
		leaderboard:  leaderboard,
		seasonID:     seasonID,
		now:          time.Now,
	}
}

// ApplyEvent applies one progression event to the student's career and
// returns the updated snapshot. Routine events also advance the streak;
// a second routine on the same calendar day returns
// ErrRoutineAlreadyCompleted without changing anything.
func (s *CareerService) ApplyEvent(ctx context.Context, studentID uint, kind domain.EventKind) (domain.Career, error) {
	reward, err := domain.RewardFor(kind)
	if err != nil {
		return domain.Career{}, err
	}

	career, err := s.repo.GetOrCreate(ctx, studentID, s.seasonID)
	if err != nil {
		return domain.Career{}, fmt.Errorf("s.repo.GetOrCreate -> %w", err)
	}

	now := s.now()
	var txns []domain.FanTransaction

	switch kind {
	case domain.EventRoutineCompleted, domain.EventRoutineCompletedWithPenalty:
		update := domain.AdvanceStreak(career.CurrentStreak, career.LongestStreak, career.LastActiveDate, false, now)
		if update.Deduped {
			return career, ErrRoutineAlreadyCompleted
		}

		career.CurrentStreak = update.CurrentStreak
		career.LongestStreak = update.LongestStreak
		career.LastActiveDate = &update.LastActiveDate
		career.ApplyFanDelta(reward.Fans)
		txns = append(txns, s.newTransaction(studentID, reward, now))

		if update.BonusEarned {
			bonus, err := domain.RewardFor(domain.EventStreakBonus)
			if err != nil {
				return domain.Career{}, err
			}
			career.ApplyFanDelta(bonus.Fans)
			txns = append(txns, s.newTransaction(studentID, bonus, now))
		}
	case domain.EventStreakBroken:
		update := domain.AdvanceStreak(career.CurrentStreak, career.LongestStreak, career.LastActiveDate, true, now)
		career.CurrentStreak = update.CurrentStreak
		career.LongestStreak = update.LongestStreak
		career.LastActiveDate = &update.LastActiveDate
		career.ApplyFanDelta(reward.Fans)
		txns = append(txns, s.newTransaction(studentID, reward, now))

		s.breakActiveTour(ctx, studentID, now)
	case domain.EventSubmissionCreated:
		career.TotalDemos++
		career.ApplyFanDelta(reward.Fans)
		txns = append(txns, s.newTransaction(studentID, reward, now))
	case domain.EventReviewPositive:
		career.ApprovedDemos++
		career.ApplyFanDelta(reward.Fans)
		txns = append(txns, s.newTransaction(studentID, reward, now))
	default:
		career.ApplyFanDelta(reward.Fans)
		txns = append(txns, s.newTransaction(studentID, reward, now))
	}

	saved, err := s.repo.SaveWithTransactions(ctx, career, txns)
	if err != nil {
		return domain.Career{}, fmt.Errorf("s.repo.SaveWithTransactions -> %w", err)
	}

	saved, err = s.sweepAchievements(ctx, saved, now)
	if err != nil {
		return domain.Career{}, err
	}

	s.updateLeaderboard(ctx, saved)

	return saved, nil
}

// sweepAchievements unlocks every active achievement the career now
// meets, awarding each fan reward exactly once. The unique constraint
// on student_achievements makes the sweep idempotent under races.
func (s *CareerService) sweepAchievements(ctx context.Context, career domain.Career, now time.Time) (domain.Career, error) {
	catalog, err := s.achievements.ListActive(ctx)
	if err != nil {
		return domain.Career{}, fmt.Errorf("s.achievements.ListActive -> %w", err)
	}

	unlocked, err := s.achievements.ListUnlocked(ctx, career.StudentID)
	if err != nil {
		return domain.Career{}, fmt.Errorf("s.achievements.ListUnlocked -> %w", err)
	}

	have := make(map[uint]bool, len(unlocked))
	for _, u := range unlocked {
		have[u.AchievementID] = true
	}

	var txns []domain.FanTransaction
	for _, a := range catalog {
		if have[a.ID] || !a.MetBy(career) {
			continue
		}

		if err := s.achievements.Unlock(ctx, career.StudentID, a.ID, now); err != nil {
			if errors.Is(err, repository.ErrAchievementAlreadyUnlocked) {
				continue
			}

			return domain.Career{}, fmt.Errorf("s.achievements.Unlock -> %w", err)
		}

		career.TotalAchievements++
		career.ApplyFanDelta(a.FansReward)
		txns = append(txns, s.newTransaction(career.StudentID, domain.Reward{
			Fans:   a.FansReward,
			Reason: "Achievement unlocked: " + a.Title,
		}, now))
	}

	if len(txns) == 0 {
		return career, nil
	}

	saved, err := s.repo.SaveWithTransactions(ctx, career, txns)
	if err != nil {
		return domain.Career{}, fmt.Errorf("s.repo.SaveWithTransactions -> %w", err)
	}

	return saved, nil
}

// breakActiveTour mirrors a streak break onto the season's active tour.
// Best effort: a missing tour is not an error.
func (s *CareerService) breakActiveTour(ctx context.Context, studentID uint, now time.Time) {
	tour, err := s.tours.FindActive(ctx, studentID, s.seasonID)
	if err != nil {
		if !errors.Is(err, repository.ErrTourNotFound) {
			zap.L().Warn("failed to load active tour", zap.Uint("student_id", studentID), zap.Error(err))
		}

		return
	}

	if tour.Status != domain.TourActive {
		return
	}

	tour.Status = domain.TourBroken
	tour.EndedAt = &now
	if _, err := s.tours.Save(ctx, tour); err != nil {
		zap.L().Warn("failed to break tour", zap.Uint("tour_id", tour.ID), zap.Error(err))
	}
}

func (s *CareerService) updateLeaderboard(ctx context.Context, career domain.Career) {
	if s.leaderboard == nil || !s.leaderboard.Enabled() {
		return
	}

	if err := s.leaderboard.SetFans(ctx, career.SeasonID, career.StudentID, career.Fans); err != nil {
		zap.L().Warn("failed to update leaderboard", zap.Uint("student_id", career.StudentID), zap.Error(err))
	}
}

func (s *CareerService) newTransaction(studentID uint, reward domain.Reward, now time.Time) domain.FanTransaction {
	return domain.FanTransaction{
		EventID:   uuid.NewString(),
		StudentID: studentID,
		SeasonID:  s.seasonID,
		Amount:    reward.Fans,
		Reason:    reward.Reason,
		CreatedAt: now,
	}
}

func (s *CareerService) GetSnapshot(ctx context.Context, studentID uint) (domain.Career, error) {
	career, err := s.repo.GetOrCreate(ctx, studentID, s.seasonID)
	if err != nil {
		return domain.Career{}, fmt.Errorf("s.repo.GetOrCreate -> %w", err)
	}

	return career, nil
}

// GetFanHistory returns the most recent ledger entries, newest first.
func (s *CareerService) GetFanHistory(ctx context.Context, studentID uint, limit int) ([]domain.FanTransaction, error) {
	txns, err := s.repo.ListTransactions(ctx, studentID, s.seasonID, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTransactions -> %w", err)
	}

	return txns, nil
}

// Leaderboard reads the season ranking from the cache when available
// and falls back to the careers table otherwise.
func (s *CareerService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.leaderboard != nil && s.leaderboard.Enabled() {
		entries, err := s.leaderboard.Top(ctx, s.seasonID, limit)
		if err != nil {
			zap.L().Warn("leaderboard cache read failed, falling back to db", zap.Error(err))
		} else if len(entries) > 0 {
			return entries, nil
		}
	}

	careers, err := s.repo.ListTop(ctx, s.seasonID, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTop -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(careers))
	for i, c := range careers {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:      i + 1,
			StudentID: c.StudentID,
			Fans:      c.Fans,
			Level:     c.Level,
		})
	}

	return entries, nil
}

// GetAchievements returns the active catalog plus the student's unlocks.
func (s *CareerService) GetAchievements(ctx context.Context, studentID uint) ([]domain.Achievement, []domain.StudentAchievement, error) {
	catalog, err := s.achievements.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s.achievements.ListActive -> %w", err)
	}

	unlocked, err := s.achievements.ListUnlocked(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.achievements.ListUnlocked -> %w", err)
	}

	return catalog, unlocked, nil
}

// CheckInTourShow marks a show attended, awards the check-in fans and
// finishes the tour once every show is checked in.
func (s *CareerService) CheckInTourShow(ctx context.Context, studentID, tourID, showID uint) (domain.TourShow, error) {
	tour, err := s.tours.FindByID(ctx, tourID)
	if err != nil {
		return domain.TourShow{}, fmt.Errorf("s.tours.FindByID -> %w", err)
	}
	if tour.StudentID != studentID {
		return domain.TourShow{}, ErrTourNotFound
	}

	show, err := s.tours.FindShow(ctx, showID)
	if err != nil {
		return domain.TourShow{}, fmt.Errorf("s.tours.FindShow -> %w", err)
	}
	if show.TourID != tour.ID {
		return domain.TourShow{}, ErrTourShowNotFound
	}
	if show.CheckedIn {
		return domain.TourShow{}, ErrShowAlreadyCheckedIn
	}

	show.CheckedIn = true
	saved, err := s.tours.SaveShow(ctx, show)
	if err != nil {
		return domain.TourShow{}, fmt.Errorf("s.tours.SaveShow -> %w", err)
	}

	if _, err = s.ApplyEvent(ctx, studentID, domain.EventTourCheckIn); err != nil {
		return domain.TourShow{}, fmt.Errorf("s.ApplyEvent -> %w", err)
	}

	if err = s.finishTourIfDone(ctx, tour); err != nil {
		return domain.TourShow{}, err
	}

	return saved, nil
}

func (s *CareerService) finishTourIfDone(ctx context.Context, tour domain.Tour) error {
	shows, err := s.tours.ListShows(ctx, tour.ID)
	if err != nil {
		return fmt.Errorf("s.tours.ListShows -> %w", err)
	}

	for _, show := range shows {
		if !show.CheckedIn {
			return nil
		}
	}

	now := s.now()
	tour.Status = domain.TourFinished
	tour.Completed = true
	tour.EndedAt = &now
	if _, err = s.tours.Save(ctx, tour); err != nil {
		return fmt.Errorf("s.tours.Save -> %w", err)
	}

	career, err := s.repo.GetOrCreate(ctx, tour.StudentID, s.seasonID)
	if err != nil {
		return fmt.Errorf("s.repo.GetOrCreate -> %w", err)
	}

	career.ToursCompleted++
	if _, err = s.repo.SaveWithTransactions(ctx, career, nil); err != nil {
		return fmt.Errorf("s.repo.SaveWithTransactions -> %w", err)
	}

	return nil
}

// CompleteProject awards the season-project reward.
func (s *CareerService) CompleteProject(ctx context.Context, studentID, projectID uint) (domain.Career, error) {
	career, err := s.ApplyEvent(ctx, studentID, domain.EventProjectCompleted)
	if err != nil {
		return domain.Career{}, err
	}

	zap.L().Info("season project completed",
		zap.Uint("student_id", studentID),
		zap.Uint("project_id", projectID),
	)

	return career, nil
}

// BreakLapsedStreaks applies a streak-broken event to every career whose
// last activity predates yesterday. Run daily by the scheduler.
func (s *CareerService) BreakLapsedStreaks(ctx context.Context) (int, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := midnight.AddDate(0, 0, -1)

	lapsed, err := s.repo.ListLapsed(ctx, s.seasonID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("s.repo.ListLapsed -> %w", err)
	}

	broken := 0
	for _, career := range lapsed {
		if _, err := s.ApplyEvent(ctx, career.StudentID, domain.EventStreakBroken); err != nil {
			zap.L().Error("failed to break lapsed streak", zap.Uint("student_id", career.StudentID), zap.Error(err))
			continue
		}
		broken++
	}

	return broken, nil
}
