package flash

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
	redisclient "github.com/angelmondragon/storefront/pkg/redis"
)

// maxPending bounds how many notices a single render drains.
const maxPending = 20

type listStore interface {
	Append(ctx context.Context, key string, ttl time.Duration, values ...string) error
	Drain(ctx context.Context, key string, max int) ([]string, error)
}

type flashKeyer interface {
	FlashKey(visitorID string) string
}

// Store keeps one-shot notices per visitor until the next page view reads them.
type Store struct {
	lists listStore
	keyer flashKeyer
	ttl   time.Duration
}

// NewStore constructs a notice store backed by Redis lists.
func NewStore(client *redisclient.Client, cfg config.SessionConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.FlashTTL <= 0 {
		return nil, fmt.Errorf("flash ttl must be positive")
	}
	return &Store{lists: client, keyer: client, ttl: cfg.FlashTTL}, nil
}

// Push queues notices for the visitor. Blank notices are dropped.
func (s *Store) Push(ctx context.Context, visitorID string, notices ...string) error {
	if strings.TrimSpace(visitorID) == "" {
		return fmt.Errorf("visitor id is required")
	}
	clean := make([]string, 0, len(notices))
	for _, n := range notices {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return nil
	}
	return s.lists.Append(ctx, s.keyer.FlashKey(visitorID), s.ttl, clean...)
}

// Pop returns and clears the visitor's pending notices in the order they were pushed.
func (s *Store) Pop(ctx context.Context, visitorID string) ([]string, error) {
	if strings.TrimSpace(visitorID) == "" {
		return nil, nil
	}
	return s.lists.Drain(ctx, s.keyer.FlashKey(visitorID), maxPending)
}
