package history

import (
	"sync"

	"github.com/arcanaland/greetcard/internal/card"
)

// DefaultCapacity is the number of cards a session remembers
const DefaultCapacity = 20

// Store keeps the most recent cards of a session, newest first. When the
// store is full, adding a card drops the oldest one.
type Store struct {
	mu       sync.Mutex
	capacity int
	cards    []card.Card
}

// NewStore creates a store holding at most capacity cards. A non-positive
// capacity selects DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		cards:    make([]card.Card, 0, capacity),
	}
}

// Capacity returns the maximum number of cards kept
func (s *Store) Capacity() int {
	return s.capacity
}

// Add inserts c at the head of the history
func (s *Store) Add(c card.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = append(s.cards, card.Card{})
	copy(s.cards[1:], s.cards)
	s.cards[0] = c.Clone()
	if len(s.cards) > s.capacity {
		s.cards = s.cards[:s.capacity]
	}
}

// Replace swaps the entry with the given id for c, keeping its position.
// It reports whether an entry was replaced.
func (s *Store) Replace(id string, c card.Card) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards[i] = c.Clone()
			return true
		}
	}
	return false
}

// Get returns a copy of the entry with the given id
func (s *Store) Get(id string) (card.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cards {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return card.Card{}, false
}

// List returns copies of all entries, newest first
func (s *Store) List() []card.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]card.Card, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Clone()
	}
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Clear removes every entry
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = s.cards[:0]
}
