// Package jobs runs the daily stats snapshot: a cron job that counts the
// previous day's generation records and stores the figure in redis for
// dashboards. The ledger itself is never touched.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// HistoryCounter is the ledger query the snapshot job needs.
type HistoryCounter interface {
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	history HistoryCounter
	cache   *redis.Client
	log     zerolog.Logger
}

func NewScheduler(history HistoryCounter, cache *redis.Client, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		history: history,
		cache:   cache,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if s.cache == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 5 0 * * *", s.snapshotDailyCount); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) snapshotDailyCount() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	yesterday := today.Add(-24 * time.Hour)

	count, err := s.history.CountCreatedBetween(ctx, yesterday, today)
	if err != nil {
		s.log.Error().Err(err).Msg("daily count query failed")
		return
	}

	key := fmt.Sprintf("stats:generated:%s", yesterday.Format("2006-01-02"))
	if err := s.cache.Set(ctx, key, count, 30*24*time.Hour).Err(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("daily count store failed")
		return
	}

	s.log.Info().Str("key", key).Int64("count", count).Msg("daily generation count stored")
}
