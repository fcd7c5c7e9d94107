package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const referralTTL = 30 * 24 * time.Hour

// ReferralDedup guards referral awards against double processing.
// Key format: referral:<new_user_run>
type ReferralDedup struct {
	client *redis.Client
}

// NewReferralDedup creates a ReferralDedup wrapping the given Redis client.
func NewReferralDedup(client *redis.Client) *ReferralDedup {
	return &ReferralDedup{client: client}
}

// IsDuplicate reports whether this registration's referral was already awarded.
func (d *ReferralDedup) IsDuplicate(ctx context.Context, newUserRUN string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(newUserRUN)).Result()
	if err != nil {
		return false, fmt.Errorf("referral dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this registration's referral has been processed.
func (d *ReferralDedup) Mark(ctx context.Context, newUserRUN string) error {
	return d.client.Set(ctx, d.key(newUserRUN), "1", referralTTL).Err()
}

func (d *ReferralDedup) key(newUserRUN string) string {
	return "referral:" + newUserRUN
}
