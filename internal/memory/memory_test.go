package memory

import (
	"sync"
	"testing"

	"github.com/zonetools/zonebridge/internal/entity"
)

func TestZeroValueIsEmpty(t *testing.T) {
	m := New()
	if m.LastEntity() != nil {
		t.Error("fresh memory has a last entity")
	}
	if got := m.LastSearchResults(); len(got) != 0 {
		t.Errorf("fresh memory has %d search results", len(got))
	}
}

func TestSetLastEntityOverwriteAndClear(t *testing.T) {
	m := New()
	m.SetLastEntity(entity.Entity{"id": "1"})
	m.SetLastEntity(entity.Entity{"id": "2"})

	if got := m.LastEntity().ID(); got != "2" {
		t.Errorf("last entity id = %q, want 2", got)
	}

	m.SetLastEntity(nil)
	if m.LastEntity() != nil {
		t.Error("clear did not empty last entity")
	}
}

func TestEmptySearchResultsReplaceNonEmpty(t *testing.T) {
	m := New()
	m.SetLastSearchResults([]entity.Entity{{"id": "1"}, {"id": "2"}})
	m.SetLastSearchResults([]entity.Entity{})

	if got := m.LastSearchResults(); len(got) != 0 {
		t.Errorf("stale results survived: %v", got)
	}
}

func TestConcurrentWritesDoNotRace(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SetLastEntity(entity.Entity{"id": "x"})
			_ = m.LastEntity()
			m.SetLastSearchResults([]entity.Entity{{"id": "y"}})
			_ = m.LastSearchResults()
		}()
	}
	wg.Wait()

	if m.LastEntity().ID() != "x" {
		t.Error("last-write-wins entity missing after concurrent writes")
	}
}
