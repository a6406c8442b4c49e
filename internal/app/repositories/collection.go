package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// Collection keys in the key-value store. Each key holds a JSON array of the
// collection's records.
const (
	KeyUsers             = "db_users"
	KeyCredentials       = "db_credentials"
	KeyStudentProfiles   = "db_student_profiles"
	KeyRecruiterProfiles = "db_recruiter_profiles"
	KeyJobOffers         = "db_job_offers"
	KeyNotifications     = "db_notifications"
	KeyInitialized       = "db_initialized"
)

// collection is a JSON-serialized record list stored under a single key.
// Every mutation is a read-modify-write of the whole list; last write wins.
type collection[T any] struct {
	store kvstore.Store
	key   string
	id    func(*T) string
}

func newCollection[T any](store kvstore.Store, key string, id func(*T) string) *collection[T] {
	return &collection[T]{store: store, key: key, id: id}
}

// List returns all records. A missing key reads as an empty collection.
func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.key, err)
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, string(raw)); err != nil {
		return fmt.Errorf("write collection %s: %w", c.key, err)
	}
	return nil
}

// GetByID returns the record with the given id, or apperrors.ErrResourceNotFound.
func (c *collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

// Add appends a record to the collection.
func (c *collection[T]) Add(ctx context.Context, item *T) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	items = append(items, *item)
	return c.save(ctx, items)
}

// Update applies apply to the record with the given id and persists the result.
// Returns the updated record, or apperrors.ErrResourceNotFound; nothing is
// written when the id does not exist.
func (c *collection[T]) Update(ctx context.Context, id string, apply func(*T)) (*T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			apply(&items[i])
			if err := c.save(ctx, items); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

// Delete removes the record with the given id. Returns false when no record
// matched; the collection is only rewritten when something was removed.
func (c *collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	items, err := c.List(ctx)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	removed := false
	for i := range items {
		if c.id(&items[i]) == id {
			removed = true
			continue
		}
		kept = append(kept, items[i])
	}
	if !removed {
		return false, nil
	}
	return true, c.save(ctx, kept)
}

// Query returns all records matching the predicate.
func (c *collection[T]) Query(ctx context.Context, pred func(*T) bool) ([]T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []T
	for i := range items {
		if pred(&items[i]) {
			matched = append(matched, items[i])
		}
	}
	return matched, nil
}
