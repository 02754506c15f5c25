// Package db provides the device-local key-value store the screens persist to.
// Values are JSON documents addressed by string keys.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes every pair or none of them.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Backend is a Store that owns a connection.
type Backend interface {
	Store
	Close() error
}

// GetJSON decodes the value under key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// EncodeAll marshals every value so the result can be handed to SetMany.
func EncodeAll(values map[string]any) (map[string][]byte, error) {
	out := make(map[string][]byte, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", k, err)
		}
		out[k] = raw
	}
	return out, nil
}

type namespaced struct {
	store  Store
	prefix string
}

// Namespace scopes every key of s under prefix, giving each device its own
// view of a shared backend.
func Namespace(s Store, prefix string) Store {
	return &namespaced{store: s, prefix: prefix}
}

func (n *namespaced) key(k string) string {
	return n.prefix + k
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.key(key))
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.key(key), value)
}

func (n *namespaced) SetMany(ctx context.Context, values map[string][]byte) error {
	scoped := make(map[string][]byte, len(values))
	for k, v := range values {
		scoped[n.key(k)] = v
	}
	return n.store.SetMany(ctx, scoped)
}

func (n *namespaced) Delete(ctx context.Context, keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = n.key(k)
	}
	return n.store.Delete(ctx, scoped...)
}
