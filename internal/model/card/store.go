package card

import "github.com/google/uuid"

// Store exposes the loaded collection to the lookup layer.
type Store interface {
	All() Collection
	Len() int
	Version() string
}

// MemoryStore holds the collection for the lifetime of the process. Nothing
// writes to it after construction, so concurrent reads need no locking.
type MemoryStore struct {
	items   Collection
	version string
}

// NewMemoryStore returns a MemoryStore owning a private copy of items.
func NewMemoryStore(items Collection) *MemoryStore {
	return &MemoryStore{
		items:   append(Collection(nil), items...),
		version: uuid.NewString(),
	}
}

// All returns the full collection. The slice is shared; callers must not mutate it.
func (s *MemoryStore) All() Collection {
	return s.items
}

// Len reports the number of cards.
func (s *MemoryStore) Len() int {
	return len(s.items)
}

// Version identifies this loaded dataset instance.
func (s *MemoryStore) Version() string {
	return s.version
}
