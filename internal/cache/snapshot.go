package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

const generationKey = "snapshot:generation"

// SnapshotCache keeps raw assignment snapshots for a short time. Only fetched data is
// cached; categories are recomputed from it on every read.
//
// Keys embed a generation number. Invalidate bumps the generation so every cached
// snapshot becomes unreachable at once and expires on its own TTL.
type SnapshotCache struct {
	store *RedisCache
	rdb   *redis.Client
	ttl   time.Duration
}

// NewSnapshotCache builds the snapshot cache. A nil client disables it.
func NewSnapshotCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SnapshotCache{
		store: NewRedisCache("snapshot", rdb, logger),
		rdb:   rdb,
		ttl:   ttl,
	}
}

// NoGeneration marks a lookup whose generation could not be read. Snapshots fetched
// after such a lookup are not stored.
const NoGeneration int64 = -1

// Get returns the cached snapshot for a user and role, together with the generation
// the lookup ran under. A caller that misses and fetches upstream hands that
// generation back to Set.
func (c *SnapshotCache) Get(ctx context.Context, userID, role string) (models.AssignmentSnapshot, int64, bool) {
	if !c.store.Enabled() {
		return models.AssignmentSnapshot{}, NoGeneration, false
	}

	generation, err := c.generation(ctx)
	if err != nil {
		return models.AssignmentSnapshot{}, NoGeneration, false
	}

	var snapshot models.AssignmentSnapshot
	if !c.store.GetJSON(ctx, snapshotKey(generation, userID, role), &snapshot) {
		return models.AssignmentSnapshot{}, generation, false
	}
	return snapshot, generation, true
}

// Set stores a snapshot fetched under generation. The write is dropped when the
// generation has moved on since, because the fetch may predate a change.
func (c *SnapshotCache) Set(ctx context.Context, userID, role string, generation int64, snapshot models.AssignmentSnapshot) {
	if !c.store.Enabled() || generation < 0 {
		return
	}

	current, err := c.generation(ctx)
	if err != nil || current != generation {
		c.store.logger.Debug().
			Int64("generation", generation).
			Int64("current_generation", current).
			Msg("discarding stale snapshot")
		return
	}

	// An Invalidate racing this write only orphans the key, it never exposes it.
	c.store.SetJSON(ctx, snapshotKey(generation, userID, role), snapshot, c.ttl)
}

// Invalidate orphans every cached snapshot.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if !c.store.Enabled() {
		return nil
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump snapshot generation: %w", err)
	}
	return nil
}

func snapshotKey(generation int64, userID, role string) string {
	return fmt.Sprintf("snapshot:v1:%d:%s:%s", generation, userID, role)
}

func (c *SnapshotCache) generation(ctx context.Context) (int64, error) {
	raw, err := c.rdb.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.store.logger.Warn().Err(err).Msg("failed to read snapshot generation")
		return 0, err
	}
	generation, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot generation %q: %w", raw, err)
	}
	return generation, nil
}
