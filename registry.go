// Copyright 2021 Josh Deprez
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dialogue

import (
	"sort"
	"sync"
)

// Registry maps identifiers to handles (cameras, speakers). Handles
// register themselves while a scene is being built, and lines refer to
// them by ID.
type Registry[T any] struct {
	mu sync.RWMutex
	m  map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		m: make(map[string]T),
	}
}

// Register adds a handle. A handle already registered under the same ID is
// replaced.
func (r *Registry[T]) Register(id string, h T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[string]T)
	}
	r.m[id] = h
}

// Unregister removes handles.
func (r *Registry[T]) Unregister(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.m, id)
	}
}

// Lookup fetches a handle, returning (zero, false) if not present.
func (r *Registry[T]) Lookup(id string) (h T, found bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, found = r.m[id]
	return h, found
}

// Len returns the number of registered handles.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// IDs returns the registered IDs in sorted order.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.m))
	for id := range r.m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each calls f for every handle, in ID order. f is called without the lock
// held, so it may use the registry.
func (r *Registry[T]) Each(f func(id string, h T)) {
	r.mu.RLock()
	m := copyMap(r.m)
	r.mu.RUnlock()
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		f(id, m[id])
	}
}

// Clear empties the registry.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.m {
		delete(r.m, id)
	}
}

// Contents returns a copy of the contents of the registry, as a regular
// map.
func (r *Registry[T]) Contents() map[string]T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyMap(r.m)
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	m := make(map[K]V, len(src))
	for name, val := range src {
		m[name] = val
	}
	return m
}
