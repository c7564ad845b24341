package store

import (
	"context"
	"fmt"
	"time"

	"github.com/positionfit/positionfit/internal/domain"
)

// DefaultNamespace prefixes every user key unless overridden.
const DefaultNamespace = "positionfit"

// Users persists UserData aggregates through a Store, owning the
// "<namespace>-<userId>" key scheme and the UTF-8 JSON codec.
type Users struct {
	store     Store
	namespace string
	now       func() time.Time
}

// NewUsers wraps a Store. An empty namespace falls back to DefaultNamespace.
func NewUsers(s Store, namespace string) *Users {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Users{store: s, namespace: namespace, now: func() time.Time { return time.Now().UTC() }}
}

// Key builds the store key for a user identifier.
func (u *Users) Key(userID string) string {
	return u.namespace + "-" + userID
}

// Load fetches and decodes the aggregate for a user. ErrNotFound passes
// through unchanged so callers can distinguish absence from corruption.
func (u *Users) Load(ctx context.Context, userID string) (*domain.UserData, error) {
	raw, err := u.store.Get(ctx, u.Key(userID))
	if err != nil {
		return nil, err
	}

	data, err := decodeUserData(raw)
	if err != nil {
		return nil, fmt.Errorf("decode user data for %q: %w", userID, err)
	}

	return data, nil
}

// LoadOrCreate fetches the aggregate, creating an empty one when the user
// has no stored data yet. The created aggregate is not persisted until the
// first mutating operation saves it.
func (u *Users) LoadOrCreate(ctx context.Context, userID string) (*domain.UserData, error) {
	data, err := u.Load(ctx, userID)
	if err == nil {
		return data, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	return domain.NewUserData(userID, "", "", u.now()), nil
}

// Save encodes and writes the whole aggregate under the user's key.
func (u *Users) Save(ctx context.Context, data *domain.UserData) error {
	raw, err := encodeUserData(data)
	if err != nil {
		return fmt.Errorf("encode user data for %q: %w", data.UserID, err)
	}

	return u.store.Put(ctx, u.Key(data.UserID), raw)
}

// Delete removes the aggregate entirely.
func (u *Users) Delete(ctx context.Context, userID string) error {
	return u.store.Delete(ctx, u.Key(userID))
}
