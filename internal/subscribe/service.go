package subscribe

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/events"
)

var (
	// ErrInvalidEmail rejects addresses that fail the shape check.
	ErrInvalidEmail = errors.New("subscribe: invalid email")
	// ErrAlreadySubscribed marks a repeat capture of the same address.
	ErrAlreadySubscribed = errors.New("subscribe: already subscribed")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service captures email addresses and hands them to the external list
// provider. No subscription data is kept here: redis only holds a short
// dedup guard so double submits do not hit the provider twice.
type Service struct {
	Provider Provider
	Redis    *redis.Client
	Events   *events.Bus
	Log      zerolog.Logger
	DedupTTL time.Duration
}

// Subscribe validates and normalizes the address, guards against repeats
// and pushes the capture to the provider. The provider call is fire and
// forget: a push failure is logged, counted and surfaced, never retried.
func (s *Service) Subscribe(ctx context.Context, sub Subscription) (Subscription, error) {
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	if !emailPattern.MatchString(sub.Email) {
		return Subscription{}, ErrInvalidEmail
	}
	if strings.TrimSpace(sub.Source) == "" {
		sub.Source = "unknown"
	}

	if err := s.acquireGuard(ctx, sub.Email); err != nil {
		return Subscription{}, err
	}

	if s.Provider != nil {
		exists, err := s.Provider.Exists(ctx, sub.Email)
		if err != nil {
			return Subscription{}, err
		}
		if exists {
			return Subscription{}, ErrAlreadySubscribed
		}
		if err := s.Provider.Subscribe(ctx, sub); err != nil {
			return Subscription{}, err
		}
	}

	if s.Events != nil {
		_, err := s.Events.Emit(ctx, events.TopicSubscriberCaptured, uuid.New(), map[string]string{
			"email":  sub.Email,
			"source": sub.Source,
		})
		if err != nil {
			s.Log.Warn().Err(err).Str("source", sub.Source).Msg("subscriber event not recorded")
		}
	}
	return sub, nil
}

func (s *Service) acquireGuard(ctx context.Context, email string) error {
	if s.Redis == nil {
		return nil
	}
	ttl := s.DedupTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	key := "subscribe:dedup:" + common.Sha256Hex(email)
	ok, err := s.Redis.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		// guard is best effort, the provider still dedups
		s.Log.Warn().Err(err).Msg("subscribe dedup guard unavailable")
		return nil
	}
	if !ok {
		return ErrAlreadySubscribed
	}
	return nil
}
