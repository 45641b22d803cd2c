package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harrisonrobin/dayblock/pkg/model"
)

// Record keys. Each names one independent JSON document.
const (
	KeyUser           = "dayblock_user"
	KeySchedule       = "dayblock_schedule"
	KeySettings       = "dayblock_settings"
	KeyCompletedTasks = "dayblock_completed_tasks"
)

var allKeys = []string{KeyUser, KeySchedule, KeySettings, KeyCompletedTasks}

// Repository reads and writes the typed records on top of a Store.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// load decodes key into v. It reports false when the record is absent.
func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, data)
}

// User returns the stored profile, or nil when nobody has signed in.
func (r *Repository) User(ctx context.Context) (*model.User, error) {
	var u model.User
	ok, err := r.load(ctx, KeyUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) SetUser(ctx context.Context, u model.User) error {
	return r.save(ctx, KeyUser, u)
}

// Schedule returns the stored schedule, or nil when none was generated.
func (r *Repository) Schedule(ctx context.Context) (*model.Schedule, error) {
	var s model.Schedule
	ok, err := r.load(ctx, KeySchedule, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) SetSchedule(ctx context.Context, s model.Schedule) error {
	return r.save(ctx, KeySchedule, s)
}

// Settings returns the stored settings or the defaults.
func (r *Repository) Settings(ctx context.Context) (model.Settings, error) {
	s := model.DefaultSettings()
	if _, err := r.load(ctx, KeySettings, &s); err != nil {
		return model.DefaultSettings(), err
	}
	return s, nil
}

func (r *Repository) SetSettings(ctx context.Context, s model.Settings) error {
	return r.save(ctx, KeySettings, s)
}

// CompletedTasks returns the IDs marked done. Order carries no meaning.
func (r *Repository) CompletedTasks(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := r.load(ctx, KeyCompletedTasks, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *Repository) SetCompletedTasks(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return r.save(ctx, KeyCompletedTasks, ids)
}

// ClearAll removes the profile, schedule, settings and completed list in one call.
func (r *Repository) ClearAll(ctx context.Context) error {
	if err := r.store.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
