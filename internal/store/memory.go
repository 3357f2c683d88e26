package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/serroba/shortlinks/internal/links"
)

// MemoryStore is an in-memory implementation of links.Repository for tests
// and storeless development runs. Uniqueness and ownership scoping follow
// the same contract as the SQL backend.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[int64]links.Link
	byCode map[string]int64 // shortCode -> link id
	nextID int64
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[int64]links.Link),
		byCode: make(map[string]int64),
		now:    time.Now,
	}
}

func (m *MemoryStore) FindByShortCode(_ context.Context, code string) (*links.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, links.ErrNotFound
	}

	link := m.byID[id]

	return &link, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (*links.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.byID[id]
	if !ok {
		return nil, links.ErrNotFound
	}

	return &link, nil
}

func (m *MemoryStore) FindAllByOwner(_ context.Context, ownerID string) ([]links.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var owned []links.Link

	for _, link := range m.byID {
		if link.OwnerID == ownerID {
			owned = append(owned, link)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].UpdatedAt.Equal(owned[j].UpdatedAt) {
			return owned[i].ID > owned[j].ID
		}

		return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
	})

	return owned, nil
}

func (m *MemoryStore) Insert(_ context.Context, newLink links.NewLink) (*links.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byCode[newLink.ShortCode]; exists {
		return nil, links.ErrSlugTaken
	}

	m.nextID++
	now := m.now()

	link := links.Link{
		ID:          m.nextID,
		OwnerID:     newLink.OwnerID,
		OriginalURL: newLink.OriginalURL,
		ShortCode:   newLink.ShortCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.byID[link.ID] = link
	m.byCode[link.ShortCode] = link.ID

	return &link, nil
}

func (m *MemoryStore) UpdateByID(_ context.Context, id int64, ownerID, originalURL, shortCode string) (*links.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.byID[id]
	if !ok || link.OwnerID != ownerID {
		return nil, links.ErrNotFound
	}

	if shortCode != "" && shortCode != link.ShortCode {
		if _, exists := m.byCode[shortCode]; exists {
			return nil, links.ErrSlugTaken
		}

		delete(m.byCode, link.ShortCode)
		m.byCode[shortCode] = id
		link.ShortCode = shortCode
	}

	link.OriginalURL = originalURL
	link.UpdatedAt = m.now()
	m.byID[id] = link

	return &link, nil
}

func (m *MemoryStore) DeleteByID(_ context.Context, id int64, ownerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.byID[id]
	if !ok || link.OwnerID != ownerID {
		return false, nil
	}

	delete(m.byID, id)
	delete(m.byCode, link.ShortCode)

	return true, nil
}
