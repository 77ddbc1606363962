// Package memory holds the short-lived conversational state that lets a
// caller say "delete it" right after a get, or "the first one" right
// after a search.
//
// The state is a single process-wide cell with process lifetime: the most
// recently touched entity and the most recent search result set. There is
// no invalidation beyond overwrite-on-write, so a stale entity may be
// served after the backend diverges. That staleness is an accepted
// tradeoff for a single-user assistant session.
package memory

import (
	"sync"

	"github.com/zonetools/zonebridge/internal/entity"
)

// Memory is the conversational context cell. The zero value is ready to
// use. Both transports share one instance, so access is mutex-guarded to
// keep the single-writer semantics under Go's real parallelism: readers
// always see a fully-formed previous write.
type Memory struct {
	mu          sync.Mutex
	lastEntity  entity.Entity
	lastResults []entity.Entity
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{}
}

// LastEntity returns the most recently created, fetched, or updated
// entity, or nil.
func (m *Memory) LastEntity() entity.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastEntity
}

// SetLastEntity records e as the most recently touched entity. Passing
// nil clears it (the delete tools do this).
func (m *Memory) SetLastEntity(e entity.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastEntity = e
}

// LastSearchResults returns the result set of the most recent search.
// Empty until the first search runs.
func (m *Memory) LastSearchResults() []entity.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastResults
}

// SetLastSearchResults overwrites the remembered search results. Every
// search call stores its results, including empty ones — a search that
// finds nothing still forgets the previous hits.
func (m *Memory) SetLastSearchResults(items []entity.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastResults = items
}
