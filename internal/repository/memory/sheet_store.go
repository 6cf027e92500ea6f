// Package memory keeps open attendance sheets in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"asistencia/internal/domain"
	"asistencia/internal/port"
)

type sheetState struct {
	entries   []domain.Entry
	createdAt time.Time
	updatedAt time.Time
}

func (s *sheetState) snapshot(id uuid.UUID) *domain.Sheet {
	return &domain.Sheet{
		ID:         id,
		EntryCount: len(s.entries),
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
}

type sheetStore struct {
	mu     sync.RWMutex
	sheets map[uuid.UUID]*sheetState
	now    func() time.Time
}

// NewSheetStore creates an empty in-memory SheetStore.
func NewSheetStore() port.SheetStore {
	return newSheetStore(time.Now)
}

func newSheetStore(now func() time.Time) *sheetStore {
	return &sheetStore{
		sheets: make(map[uuid.UUID]*sheetState),
		now:    now,
	}
}

func (s *sheetStore) Create(_ context.Context) (*domain.Sheet, error) {
	now := s.now().UTC()
	id := uuid.New()
	state := &sheetState{createdAt: now, updatedAt: now}

	s.mu.Lock()
	s.sheets[id] = state
	s.mu.Unlock()

	return state.snapshot(id), nil
}

func (s *sheetStore) Get(_ context.Context, sheetID uuid.UUID) (*domain.Sheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sheets[sheetID]
	if !ok {
		return nil, domain.ErrSheetNotFound
	}
	return state.snapshot(sheetID), nil
}

func (s *sheetStore) Delete(_ context.Context, sheetID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sheets[sheetID]; !ok {
		return domain.ErrSheetNotFound
	}
	delete(s.sheets, sheetID)
	return nil
}

// Append adds all entries or none of them.
func (s *sheetStore) Append(_ context.Context, sheetID uuid.UUID, entries ...domain.Entry) (*domain.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sheets[sheetID]
	if !ok {
		return nil, domain.ErrSheetNotFound
	}
	state.entries = append(state.entries, entries...)
	state.updatedAt = s.now().UTC()
	return state.snapshot(sheetID), nil
}

// List returns a copy of the sheet's entries in insertion order.
func (s *sheetStore) List(_ context.Context, sheetID uuid.UUID) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sheets[sheetID]
	if !ok {
		return nil, domain.ErrSheetNotFound
	}
	out := make([]domain.Entry, len(state.entries))
	copy(out, state.entries)
	return out, nil
}

func (s *sheetStore) Clear(_ context.Context, sheetID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sheets[sheetID]
	if !ok {
		return domain.ErrSheetNotFound
	}
	state.entries = nil
	state.updatedAt = s.now().UTC()
	return nil
}

func (s *sheetStore) PurgeIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, state := range s.sheets {
		if state.updatedAt.Before(cutoff) {
			delete(s.sheets, id)
			removed++
		}
	}
	return removed, nil
}
