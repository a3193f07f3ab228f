/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"
)

// IndexMaps associates entity names with key index maps (PK, SK, GSI keys, ...).
// The zero value is ready to use.
type IndexMaps struct {
	mu   sync.RWMutex
	maps map[string]map[string]string
}

// RegisterIndexMap associates an entity with a given index map, replacing any previous one.
func (r *IndexMaps) RegisterIndexMap(entity string, indexMap map[string]string) {
	cp := make(map[string]string, len(indexMap))
	for k, v := range indexMap {
		cp[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maps == nil {
		r.maps = make(map[string]map[string]string)
	}
	r.maps[entity] = cp
}

// GetIndexMap retrieves the index map for entity, if any.
func (r *IndexMaps) GetIndexMap(entity string) (map[string]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.maps[entity]
	return m, ok
}

// Entities returns the sorted names of all entities with an index map.
func (r *IndexMaps) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.maps))
	for name := range r.maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
