// ABOUTME: In-memory page session store with TTL cleanup and capacity limits.
// ABOUTME: Each page owns one chart orchestrator so readers draw independently of each other.
package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/youdrawit/chart"
)

// Page is one reader's view of the charts.
type Page struct {
	ID           string
	Orchestrator *chart.Orchestrator
	CreatedAt    time.Time
	LastAccess   time.Time
}

// OrchestratorFactory builds the orchestrator for a new page.
type OrchestratorFactory func(pageID string) *chart.Orchestrator

// PageStore holds active pages.
type PageStore struct {
	mu       sync.RWMutex
	pages    map[string]*Page
	maxPages int
	ttl      time.Duration
	factory  OrchestratorFactory
}

// NewPageStore creates a new page store
func NewPageStore(maxPages int, ttl time.Duration, factory OrchestratorFactory) *PageStore {
	return &PageStore{
		pages:    make(map[string]*Page),
		maxPages: maxPages,
		ttl:      ttl,
		factory:  factory,
	}
}

// Create starts a page and draws its charts into the given placeholders.
func (s *PageStore) Create(viewport float64, placeholders []chart.Placeholder) (*Page, chart.DrawReport) {
	id := uuid.New().String()
	orch := s.factory(id)
	report := orch.Draw(viewport, placeholders)

	now := time.Now()
	page := &Page{
		ID:           id,
		Orchestrator: orch,
		CreatedAt:    now,
		LastAccess:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Evict oldest page when full
	if len(s.pages) >= s.maxPages {
		var oldestID string
		var oldestTime time.Time
		for pid, p := range s.pages {
			if oldestTime.IsZero() || p.LastAccess.Before(oldestTime) {
				oldestID = pid
				oldestTime = p.LastAccess
			}
		}
		if old, ok := s.pages[oldestID]; ok {
			old.Orchestrator.Close()
			delete(s.pages, oldestID)
		}
	}

	s.pages[id] = page
	return page, report
}

// Get retrieves a page by ID and updates its LastAccess time
func (s *PageStore) Get(id string) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	page.LastAccess = time.Now()
	return page, true
}

// Len returns the number of live pages.
func (s *PageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Cleanup removes pages idle for longer than the TTL
func (s *PageStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, page := range s.pages {
		if page.LastAccess.Before(cutoff) {
			page.Orchestrator.Close()
			delete(s.pages, id)
		}
	}
}
