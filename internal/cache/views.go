package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/models"
)

// Key builders for the three per-user partitions. Labels are global, but
// the cached label list is still a per-user snapshot: a label created by
// one user reaches another user's partition only on that user's next
// write-triggered repopulation.
func userKey(username string) string   { return fmt.Sprintf("user:%s", username) }
func notesKey(username string) string  { return fmt.Sprintf("notes:%s", username) }
func labelsKey(username string) string { return fmt.Sprintf("labels:%s", username) }

// ViewCache stores serialized views of a user's profile, notes and labels.
// Views have no lifecycle invariants of their own: they must always be
// reconstructable from the relational store if absent or stale.
type ViewCache struct {
	kv     KeyValue
	logger *logger.Logger
}

// NewViewCache constructs a [ViewCache] over the given key-value backend.
func NewViewCache(kv KeyValue, logger *logger.Logger) *ViewCache {
	logger.Debug().Msg("creating view cache")
	return &ViewCache{kv: kv, logger: logger}
}

// CacheUser stores the serialized profile view for username.
func (c *ViewCache) CacheUser(ctx context.Context, username string, user models.User) error {
	return c.set(ctx, userKey(username), user)
}

// GetUser returns the cached profile view for username, or ErrCacheMiss.
func (c *ViewCache) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := c.get(ctx, userKey(username), &user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// CacheNotes stores the serialized notes view for username.
func (c *ViewCache) CacheNotes(ctx context.Context, username string, notes []models.Note) error {
	return c.set(ctx, notesKey(username), notes)
}

// GetNotes returns the cached notes view for username, or ErrCacheMiss.
func (c *ViewCache) GetNotes(ctx context.Context, username string) ([]models.Note, error) {
	var notes []models.Note
	if err := c.get(ctx, notesKey(username), &notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// CacheLabels stores the serialized labels view for username.
func (c *ViewCache) CacheLabels(ctx context.Context, username string, labels []models.Label) error {
	return c.set(ctx, labelsKey(username), labels)
}

// GetLabels returns the cached labels view for username, or ErrCacheMiss.
func (c *ViewCache) GetLabels(ctx context.Context, username string) ([]models.Label, error) {
	var labels []models.Label
	if err := c.get(ctx, labelsKey(username), &labels); err != nil {
		return nil, err
	}

	return labels, nil
}

// Purge removes all three partitions for username. Called at logout and
// account deletion; there is no cross-partition transaction, which is
// acceptable because every read path falls back to the relational store.
func (c *ViewCache) Purge(ctx context.Context, username string) error {
	return c.kv.Delete(ctx, userKey(username), notesKey(username), labelsKey(username))
}

func (c *ViewCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing cached view: %w", err)
	}

	return c.kv.Set(ctx, key, string(data), 0)
}

func (c *ViewCache) get(ctx context.Context, key string, target any) error {
	data, err := c.kv.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(data), target); err != nil {
		return fmt.Errorf("error deserializing cached view: %w", err)
	}

	return nil
}
