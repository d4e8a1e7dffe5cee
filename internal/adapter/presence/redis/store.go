// Package redis implements the presence store over Redis sets with TTL.
//
// Key layout:
//
//	open_channels:{user}:{session} holds the set of channel ids the session has open
//	open_sessions:{user}           holds the set of the user's live session ids
//
// The per-user session index replaces a KEYS pattern scan. Stale session
// ids it may contain are harmless since their channel sets have expired.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/strogmv/pushd/internal/pkg/circuitbreaker"
	"github.com/strogmv/pushd/internal/port"
)

const (
	channelsKeyPrefix = "open_channels:"
	sessionsKeyPrefix = "open_sessions:"
)

// client is the slice of *redis.Client the store needs; tests substitute
// a fake.
type client interface {
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...any) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type Store struct {
	client  client
	ttl     time.Duration
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger
}

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func NewStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return newStore(client, ttl, logger)
}

func newStore(c client, ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:  c,
		ttl:     ttl,
		breaker: circuitbreaker.NewBreaker(5, 10*time.Second, 2),
		logger:  logger,
	}
}

// IsViewing reports whether any of the user's sessions has the channel open.
// Every failure path answers false: presence is best effort and must never
// suppress a notification because the store is down.
func (s *Store) IsViewing(ctx context.Context, userID, channelID string) bool {
	if !s.breaker.Allow() {
		return false
	}

	sessions, err := s.client.SMembers(ctx, sessionsKeyPrefix+userID).Result()
	if err != nil {
		s.breaker.RecordFailure()
		presenceLookupFailures.Inc()
		s.logger.Warn("presence session index lookup failed", "user_id", userID, "error", err)
		return false
	}

	viewing := false
	degraded := false
	for _, sessionID := range sessions {
		open, err := s.client.SIsMember(ctx, channelsKey(userID, sessionID), channelID).Result()
		if err != nil {
			degraded = true
			presenceLookupFailures.Inc()
			s.logger.Debug("presence membership check failed", "user_id", userID, "session_id", sessionID, "error", err)
			continue
		}
		if open {
			viewing = true
			break
		}
	}

	if degraded {
		s.breaker.RecordFailure()
	} else {
		s.breaker.RecordSuccess()
	}
	return viewing
}

// MarkOpen adds the channel to the session's open set and resets both the
// record TTL and the session index TTL.
func (s *Store) MarkOpen(ctx context.Context, userID, sessionID, channelID string) error {
	key := channelsKey(userID, sessionID)
	if err := s.client.SAdd(ctx, key, channelID).Err(); err != nil {
		return fmt.Errorf("add open channel: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("reset channel set ttl: %w", err)
	}
	index := sessionsKeyPrefix + userID
	if err := s.client.SAdd(ctx, index, sessionID).Err(); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	if err := s.client.Expire(ctx, index, s.ttl).Err(); err != nil {
		return fmt.Errorf("reset session index ttl: %w", err)
	}
	return nil
}

// MarkClose removes the channel from the session's open set. The TTL is
// left alone: closing one channel says nothing about session liveness.
func (s *Store) MarkClose(ctx context.Context, userID, sessionID, channelID string) error {
	return s.client.SRem(ctx, channelsKey(userID, sessionID), channelID).Err()
}

func channelsKey(userID, sessionID string) string {
	return channelsKeyPrefix + userID + ":" + sessionID
}

var _ port.PresenceStore = (*Store)(nil)
