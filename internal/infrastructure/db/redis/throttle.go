package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCooldown = 24 * time.Hour

// ReminderThrottle limits visa reminder emails to one per employee per
// cooldown window. Key format: reminder:<owner_id>
type ReminderThrottle struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewReminderThrottle creates a ReminderThrottle wrapping the given Redis
// client. A non-positive cooldown falls back to 24 hours.
func NewReminderThrottle(client *redis.Client, cooldown time.Duration) *ReminderThrottle {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &ReminderThrottle{client: client, cooldown: cooldown}
}

// Allow claims the employee's reminder slot for the cooldown window. SET NX
// makes the check and the claim a single round trip, so two concurrent HR
// clicks produce one email.
func (t *ReminderThrottle) Allow(ctx context.Context, ownerID string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(ownerID), "1", t.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("reminder throttle: %w", err)
	}
	return ok, nil
}

func (t *ReminderThrottle) key(ownerID string) string {
	return "reminder:" + ownerID
}
