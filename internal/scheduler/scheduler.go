package scheduler

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StreakBreaker is the part of the progression façade the watchdog
// needs: the daily sweep over lapsed streaks.
type StreakBreaker interface {
	BreakLapsedStreaks(ctx context.Context) (int, error)
}

// Start runs the streak watchdog: once a day, shortly after midnight
// UTC, every career whose last activity predates yesterday gets a
// streak-broken event. The caller owns the returned scheduler and must
// Shutdown it.
func Start(ctx context.Context, svc StreakBreaker) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("gocron.NewScheduler -> %w", err)
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			broken, err := svc.BreakLapsedStreaks(ctx)
			if err != nil {
				zap.L().Error("streak watchdog run failed", zap.Error(err))

				return
			}

			zap.L().Info("streak watchdog run finished", zap.Int("streaks_broken", broken))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("sched.NewJob -> %w", err)
	}

	sched.Start()

	return sched, nil
}
