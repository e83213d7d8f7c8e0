package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

// RedisStore keeps each per-user collection as a JSON blob under its
// namespace key. Same snapshot contract as the SQLite store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// LoadTasks returns the user's task collection, parse-or-empty.
func (s *RedisStore) LoadTasks(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := s.load(ctx, domain.TaskKey(userID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks overwrites the user's task snapshot.
func (s *RedisStore) SaveTasks(ctx context.Context, userID uuid.UUID, tasks []domain.Task) error {
	return s.save(ctx, domain.TaskKey(userID), tasks)
}

// LoadNotes returns the user's note collection, parse-or-empty.
func (s *RedisStore) LoadNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	var notes []domain.Note
	if err := s.load(ctx, domain.NoteKey(userID), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes overwrites the user's note snapshot.
func (s *RedisStore) SaveNotes(ctx context.Context, userID uuid.UUID, notes []domain.Note) error {
	return s.save(ctx, domain.NoteKey(userID), notes)
}

func (s *RedisStore) load(ctx context.Context, key string, dest any) error {
	payload, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}

	// Malformed persisted state is silently treated as empty.
	_ = json.Unmarshal([]byte(payload), dest)
	return nil
}

func (s *RedisStore) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	return nil
}
