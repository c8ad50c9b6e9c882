package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process ViewCache bounded by size and TTL.
type Memory struct {
	pages *expirable.LRU[string, []byte]

	mu          sync.Mutex
	listVersion Version
	// Detail versions are never evicted; dropping one would let a page
	// written under an older version become reachable again.
	detailVersions map[string]Version
}

var _ ViewCache = (*Memory)(nil)

// NewMemory creates a cache holding at most size pages for ttl each.
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{
		pages:          expirable.NewLRU[string, []byte](size, nil, ttl),
		detailVersions: make(map[string]Version),
	}
}

func (m *Memory) GetList(_ context.Context, query string) ([]byte, Version, bool, error) {
	m.mu.Lock()
	version := m.listVersion
	m.mu.Unlock()

	page, ok := m.pages.Get(listKey(version, query))
	return page, version, ok, nil
}

func (m *Memory) SetList(_ context.Context, query string, version Version, page []byte) error {
	m.mu.Lock()
	current := m.listVersion
	m.mu.Unlock()

	// Stale renders would be unreachable anyway; skip them to save slots.
	if version != current {
		return nil
	}
	m.pages.Add(listKey(version, query), page)
	return nil
}

func (m *Memory) GetDetail(_ context.Context, loanID string) ([]byte, Version, bool, error) {
	m.mu.Lock()
	version := m.detailVersions[normalizeID(loanID)]
	m.mu.Unlock()

	page, ok := m.pages.Get(detailKey(version, loanID))
	return page, version, ok, nil
}

func (m *Memory) SetDetail(_ context.Context, loanID string, version Version, page []byte) error {
	m.mu.Lock()
	current := m.detailVersions[normalizeID(loanID)]
	m.mu.Unlock()

	if version != current {
		return nil
	}
	m.pages.Add(detailKey(version, loanID), page)
	return nil
}

func (m *Memory) InvalidateLoans(_ context.Context, loanIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listVersion++
	for _, id := range loanIDs {
		key := normalizeID(id)
		m.pages.Remove(detailKey(m.detailVersions[key], id))
		m.detailVersions[key]++
	}
	return nil
}
