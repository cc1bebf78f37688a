package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const orphanSetKey = "orphaned_objects"

// OrphanLedger records stored-object references whose best-effort deletion
// failed, so an operator (or a later sweep) can clean them up. Entries carry
// no TTL: an orphan stays listed until explicitly resolved.
type OrphanLedger struct {
	client *redis.Client
}

// NewOrphanLedger creates an OrphanLedger wrapping the given Redis client.
func NewOrphanLedger(client *redis.Client) *OrphanLedger {
	return &OrphanLedger{client: client}
}

// RecordOrphan adds the reference to the orphan set.
func (l *OrphanLedger) RecordOrphan(ctx context.Context, reference string) error {
	if err := l.client.SAdd(ctx, orphanSetKey, reference).Err(); err != nil {
		return fmt.Errorf("record orphan: %w", err)
	}
	return nil
}

// Orphans returns all currently recorded references.
func (l *OrphanLedger) Orphans(ctx context.Context) ([]string, error) {
	refs, err := l.client.SMembers(ctx, orphanSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list orphans: %w", err)
	}
	return refs, nil
}

// Resolve removes a cleaned-up reference from the set.
func (l *OrphanLedger) Resolve(ctx context.Context, reference string) error {
	if err := l.client.SRem(ctx, orphanSetKey, reference).Err(); err != nil {
		return fmt.Errorf("resolve orphan: %w", err)
	}
	return nil
}
