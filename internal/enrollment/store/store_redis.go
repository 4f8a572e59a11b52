package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"coursehub/pkg/platform/sentinel"
)

// RedisLedger keeps each owner's enrollment as a redis set. SADD is atomic
// per key, which gives the same no-lost-update guarantee as the postgres
// backend.
type RedisLedger struct {
	client *redis.Client
}

// NewRedis constructs a redis-backed ledger.
func NewRedis(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func ownerKey(ownerID string) string {
	return "enrollment:" + ownerID
}

func (l *RedisLedger) AddCourse(ctx context.Context, ownerID, courseID string) error {
	added, err := l.client.SAdd(ctx, ownerKey(ownerID), courseID).Result()
	if err != nil {
		return fmt.Errorf("add enrollment: %w", err)
	}
	if added == 0 {
		return sentinel.ErrDuplicate
	}
	return nil
}

func (l *RedisLedger) AddCourses(ctx context.Context, ownerID string, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	members := make([]any, len(courseIDs))
	for i, courseID := range courseIDs {
		members[i] = courseID
	}
	if err := l.client.SAdd(ctx, ownerKey(ownerID), members...).Err(); err != nil {
		return fmt.Errorf("add enrollments: %w", err)
	}
	return nil
}

func (l *RedisLedger) ListCourses(ctx context.Context, ownerID string) ([]string, error) {
	courseIDs, err := l.client.SMembers(ctx, ownerKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	sort.Strings(courseIDs)
	return courseIDs, nil
}

func (l *RedisLedger) IsEnrolled(ctx context.Context, ownerID, courseID string) (bool, error) {
	enrolled, err := l.client.SIsMember(ctx, ownerKey(ownerID), courseID).Result()
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return enrolled, nil
}
