package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	count int64
	err   error
	from  time.Time
	to    time.Time
}

func (c *stubCounter) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	c.from = from
	c.to = to
	return c.count, c.err
}

func TestSnapshotDailyCount(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	counter := &stubCounter{count: 7}
	s := NewScheduler(counter, client, zerolog.Nop())

	s.snapshotDailyCount()

	require.Equal(t, 24*time.Hour, counter.to.Sub(counter.from))

	key := fmt.Sprintf("stats:generated:%s", counter.from.Format("2006-01-02"))
	val, err := client.Get(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Equal(t, "7", val)
}

func TestSnapshotDailyCount_QueryFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	counter := &stubCounter{err: errors.New("db down")}
	s := NewScheduler(counter, client, zerolog.Nop())

	s.snapshotDailyCount()

	keys := mr.Keys()
	assert.Empty(t, keys, "no snapshot should be stored when the count query fails")
}

func TestSchedulerStartWithoutCache(t *testing.T) {
	s := NewScheduler(&stubCounter{}, nil, zerolog.Nop())
	require.NoError(t, s.Start())
}
