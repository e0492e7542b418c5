package memstore

import (
	"context"
	"sort"
	"sync"

	domain "user-directory-service/internal/domain/user"
)

// Store holds the authoritative set of directory records in memory.
// A single RWMutex guards the backing map, so every operation is atomic
// with respect to every other and List observes a consistent
// point-in-time view. Records are copied on the way in and out; callers
// never share memory with the store.
type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users: make(map[string]domain.User),
	}
}

// clone returns a copy of u that shares no pointers with the original.
func clone(u domain.User) domain.User {
	c := u
	if u.Title != nil {
		t := *u.Title
		c.Title = &t
	}
	if u.Phone != nil {
		p := *u.Phone
		c.Phone = &p
	}
	return c
}

// List returns a fresh snapshot of all records sorted by
// (LastName, FirstName) ascending, with ID as the final tiebreak.
// Mutations made after the call are not visible through the result.
func (s *Store) List(ctx context.Context) []domain.User {
	s.mu.RLock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, clone(u))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GetByID returns a copy of the record and whether it exists.
func (s *Store) GetByID(ctx context.Context, id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return clone(u), true
}

// Create inserts the record under its ID and returns the stored value.
// The caller guarantees the ID is fresh, so this never replaces a live
// record in practice.
func (s *Store) Create(ctx context.Context, u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID] = clone(u)
	return u
}

// Update replaces the stored record only if one with the same ID still
// exists. It returns false when the record was removed concurrently,
// which is how a validated update of a just-deleted record is caught.
func (s *Store) Update(ctx context.Context, u domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return false
	}
	s.users[u.ID] = clone(u)
	return true
}

// Delete removes the record permanently. It reports whether anything
// was removed.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
