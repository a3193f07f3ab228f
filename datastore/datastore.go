/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// EntityManager persists materialized entities.
//
// entity is the registered entity name. v is either a pointer to a typed
// entity or a map[string]any record. Implementations may populate generated
// identifiers in place.
type EntityManager interface {
	Save(ctx context.Context, entity string, v any) error
}

// Connection is an open persistence connection used by seeding sessions.
type Connection interface {
	Name() string

	EntityManager() EntityManager

	Close() error
}

// IndexMapRegistrar is implemented by connections whose storage derives keys
// from per-entity index maps.
type IndexMapRegistrar interface {
	RegisterIndexMap(entity string, indexMap map[string]string)
}

// TableRegistrar is implemented by connections that store record entities in
// named tables.
type TableRegistrar interface {
	RegisterTable(entity, table string)
}
