package infrastructure

import (
	"sync"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// MemoryIntentStore keeps one pending intent per player.
type MemoryIntentStore struct {
	mu      sync.Mutex
	intents map[domain.PlayerID]domain.Intent
}

// NewMemoryIntentStore creates a new MemoryIntentStore.
func NewMemoryIntentStore() *MemoryIntentStore {
	return &MemoryIntentStore{
		intents: make(map[domain.PlayerID]domain.Intent),
	}
}

// Set stores intent for player. Storing an idle intent clears the player.
func (s *MemoryIntentStore) Set(player domain.PlayerID, intent domain.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if intent.IsIdle() {
		delete(s.intents, player)
		return
	}
	s.intents[player] = intent
}

// Get returns the player's intent.
func (s *MemoryIntentStore) Get(player domain.PlayerID) domain.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.intents[player]
}

// Take returns and removes the player's intent.
func (s *MemoryIntentStore) Take(player domain.PlayerID) domain.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[player]
	if ok {
		delete(s.intents, player)
	}
	return intent
}

// Delete discards the player's intent.
func (s *MemoryIntentStore) Delete(player domain.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.intents, player)
}

// Count returns the number of players with a pending intent.
func (s *MemoryIntentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.intents)
}

var _ domain.IntentRepository = (*MemoryIntentStore)(nil)
