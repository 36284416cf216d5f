package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

// fakeReader hands out msgs in order, then reports cancellation.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	fetched   int
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetched >= len(r.msgs) {
		return kafka.Message{}, context.Canceled
	}
	msg := r.msgs[r.fetched]
	r.fetched++
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func eventMessage(t *testing.T, offset int64, id string) kafka.Message {
	t.Helper()
	msg, err := NewProfileMessage(profile.NewCreatedEvent(&profile.Profile{ID: id, Skills: []string{"go"}}, time.Now()))
	require.NoError(t, err)
	msg.Offset = offset
	return msg
}

func newTestConsumer(r MessageReader) *ProfileEventConsumer {
	return NewProfileEventConsumer(r, logger.NewNopLogger(), WithRetry(3, time.Millisecond, 2*time.Millisecond))
}

func TestProfileEventConsumer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should commit every applied message in order", func(t *testing.T) {
		r := &fakeReader{msgs: []kafka.Message{eventMessage(t, 5, "a"), eventMessage(t, 6, "b")}}
		var seen []string

		err := newTestConsumer(r).Run(ctx, func(_ context.Context, evt profile.Event) error {
			seen = append(seen, evt.ProfileID)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, seen)
		assert.Equal(t, []int64{5, 6}, r.committed)
	})

	t.Run("Should retry a transient failure before committing", func(t *testing.T) {
		r := &fakeReader{msgs: []kafka.Message{eventMessage(t, 5, "a")}}
		calls := 0

		err := newTestConsumer(r).Run(ctx, func(context.Context, profile.Event) error {
			calls++
			if calls < 3 {
				return errors.New("redis unavailable")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int64{5}, r.committed)
	})

	t.Run("Should stop without moving past a failing message", func(t *testing.T) {
		r := &fakeReader{msgs: []kafka.Message{eventMessage(t, 5, "a"), eventMessage(t, 6, "b"), eventMessage(t, 7, "c")}}
		calls := map[string]int{}

		err := newTestConsumer(r).Run(ctx, func(_ context.Context, evt profile.Event) error {
			calls[evt.ProfileID]++
			if evt.ProfileID == "b" {
				return errors.New("redis unavailable")
			}
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "offset 6")
		assert.Equal(t, 3, calls["b"])
		assert.Zero(t, calls["c"], "later messages must not be applied")
		assert.Equal(t, []int64{5}, r.committed)
	})

	t.Run("Should commit and skip undecodable messages", func(t *testing.T) {
		r := &fakeReader{msgs: []kafka.Message{{Offset: 5, Value: []byte("{oops")}, eventMessage(t, 6, "b")}}
		calls := 0

		err := newTestConsumer(r).Run(ctx, func(context.Context, profile.Event) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, []int64{5, 6}, r.committed)
	})

	t.Run("Should return quietly when cancelled during backoff", func(t *testing.T) {
		r := &fakeReader{msgs: []kafka.Message{eventMessage(t, 5, "a")}}
		cctx, cancel := context.WithCancel(ctx)
		c := NewProfileEventConsumer(r, logger.NewNopLogger(), WithRetry(5, time.Hour, time.Hour))

		err := c.Run(cctx, func(context.Context, profile.Event) error {
			cancel()
			return errors.New("boom")
		})

		require.NoError(t, err)
		assert.Empty(t, r.committed)
	})
}
