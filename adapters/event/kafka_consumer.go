package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type ProfileEventHandler func(ctx context.Context, evt profile.Event) error

type ProfileEventConsumer struct {
	reader      MessageReader
	logger      logger.Logger
	maxAttempts int
	backoff     time.Duration
	maxBackoff  time.Duration
}

type ConsumerOption func(*ProfileEventConsumer)

func WithRetry(attempts int, backoff, maxBackoff time.Duration) ConsumerOption {
	return func(c *ProfileEventConsumer) {
		c.maxAttempts = attempts
		c.backoff = backoff
		c.maxBackoff = maxBackoff
	}
}

func NewProfileEventConsumer(reader MessageReader, log logger.Logger, opts ...ConsumerOption) *ProfileEventConsumer {
	c := &ProfileEventConsumer{
		reader:      reader,
		logger:      log,
		maxAttempts: 5,
		backoff:     500 * time.Millisecond,
		maxBackoff:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c
}

// Run consumes until ctx is cancelled. Offsets are committed in order, so a
// message that still fails after every retry stops the consumer with an error
// and stays uncommitted; the group resumes from it on the next start.
// Undecodable messages are committed and skipped.
func (c *ProfileEventConsumer) Run(ctx context.Context, handle ProfileEventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			if !sleep(ctx, c.backoff) {
				return nil
			}
			continue
		}

		log := c.logger.With(zap.String("key", string(msg.Key)), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))

		evt, err := DecodeProfileEvent(msg)
		if err != nil {
			log.Error("Failed to decode profile event, skipping", err)
			metrics.EventConsumed(err)
			c.commit(msg, log)
			continue
		}

		err = c.apply(ctx, evt, handle, log)
		metrics.EventConsumed(err)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("profile event %s at partition %d offset %d: %w", evt.ProfileID, msg.Partition, msg.Offset, err)
		}

		c.commit(msg, log)
	}
}

func (c *ProfileEventConsumer) apply(ctx context.Context, evt profile.Event, handle ProfileEventHandler, log logger.Logger) error {
	wait := c.backoff
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err = handle(ctx, evt); err == nil {
			return nil
		}
		if attempt == c.maxAttempts {
			break
		}
		log.Warn("Failed to apply profile event, retrying",
			zap.String("profile_id", evt.ProfileID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err))
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
		wait *= 2
		if wait > c.maxBackoff {
			wait = c.maxBackoff
		}
	}
	return err
}

func (c *ProfileEventConsumer) commit(msg kafka.Message, log logger.Logger) {
	if err := c.reader.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
