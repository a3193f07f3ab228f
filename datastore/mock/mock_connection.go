/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory datastore.Connection for tests and dry runs
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/suparena/entityseed/datastore"
)

// Record is one entity handed to Save, in call order
type Record struct {
	Key    string
	Entity string
	Value  any
}

// Connection is an in-memory implementation of datastore.Connection
type Connection struct {
	mu          sync.RWMutex
	name        string
	records     []Record
	index       map[string]int
	keyFunc     func(entity string, v any) string
	onSave      func(ctx context.Context, entity string, v any) error
	saveError   error
	entityError map[string]error
	closed      bool
}

var _ datastore.Connection = (*Connection)(nil)

// New creates a new mock connection
func New() *Connection {
	return &Connection{
		name:        "mock",
		index:       make(map[string]int),
		entityError: make(map[string]error),
	}
}

// WithName sets the connection name
func (m *Connection) WithName(name string) *Connection {
	m.name = name
	return m
}

// WithKeyFunc sets a custom function to derive storage keys from saved entities
func (m *Connection) WithKeyFunc(f func(entity string, v any) string) *Connection {
	m.keyFunc = f
	return m
}

// WithSaveError makes every Save return err
func (m *Connection) WithSaveError(err error) *Connection {
	m.saveError = err
	return m
}

// WithEntitySaveError makes Save return err for one entity name only
func (m *Connection) WithEntitySaveError(entity string, err error) *Connection {
	m.entityError[entity] = err
	return m
}

// OnSave registers a hook called before an entity is stored.
// A non-nil error from the hook is returned by Save and nothing is stored.
func (m *Connection) OnSave(f func(ctx context.Context, entity string, v any) error) *Connection {
	m.onSave = f
	return m
}

func (m *Connection) Name() string { return m.name }

func (m *Connection) EntityManager() datastore.EntityManager { return m }

// Close marks the connection closed; later saves fail
func (m *Connection) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Save stores v under a key derived by the key function, or a random UUID
func (m *Connection) Save(ctx context.Context, entity string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.saveError != nil {
		return m.saveError
	}
	if err, ok := m.entityError[entity]; ok {
		return err
	}
	if m.onSave != nil {
		if err := m.onSave(ctx, entity, v); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("connection %s is closed", m.name)
	}

	key := uuid.NewString()
	if m.keyFunc != nil {
		key = m.keyFunc(entity, v)
	}

	if i, exists := m.index[key]; exists {
		m.records[i] = Record{Key: key, Entity: entity, Value: v}
		return nil
	}
	m.index[key] = len(m.records)
	m.records = append(m.records, Record{Key: key, Entity: entity, Value: v})
	return nil
}

// Helper methods for testing

// Saved returns a copy of the stored records in save order
func (m *Connection) Saved() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Record, len(m.records))
	copy(result, m.records)
	return result
}

// SavedFor returns the stored values of one entity in save order
func (m *Connection) SavedFor(entity string) []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []any
	for _, r := range m.records {
		if r.Entity == entity {
			result = append(result, r.Value)
		}
	}
	return result
}

// Get returns the value stored under key
func (m *Connection) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.records[i].Value, true
}

// Count returns the number of stored entities
func (m *Connection) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Closed reports whether Close was called
func (m *Connection) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Clear removes all stored records
func (m *Connection) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	m.index = make(map[string]int)
}
