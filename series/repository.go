// ABOUTME: Thread-safe in-memory repository of datasets keyed by their data-key.
// ABOUTME: Populated once at startup and passed explicitly to every chart orchestrator.
package series

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownDataset is returned when a key has no dataset in the repository.
var ErrUnknownDataset = errors.New("unknown dataset")

// Repository maps dataset keys to datasets.
type Repository struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewRepository creates a repository holding the given datasets.
func NewRepository(datasets ...*Dataset) *Repository {
	r := &Repository{datasets: make(map[string]*Dataset, len(datasets))}
	for _, d := range datasets {
		r.datasets[d.Key] = d
	}
	return r
}

// Put stores d under its key, replacing any previous dataset.
func (r *Repository) Put(d *Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[d.Key] = d
}

// Get returns the dataset stored under key.
func (r *Repository) Get(key string) (*Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.datasets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, key)
	}
	return d, nil
}

// Keys returns all dataset keys in sorted order.
func (r *Repository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.datasets))
	for k := range r.datasets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of datasets.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}
