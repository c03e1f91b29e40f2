package infrastructure

import (
	"sync"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// MemoryRepository is an in-memory implementation of ProtectionRepository.
// Stored protections are private copies; callers always receive clones.
type MemoryRepository struct {
	mu          sync.RWMutex
	protections map[domain.LocationKey]*domain.Protection
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		protections: make(map[domain.LocationKey]*domain.Protection),
	}
}

// Get returns the protection at key.
func (r *MemoryRepository) Get(key domain.LocationKey) (*domain.Protection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.protections[key]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Insert stores p unless its location is already protected.
func (r *MemoryRepository) Insert(p *domain.Protection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := p.Key()
	if _, exists := r.protections[key]; exists {
		return domain.ErrAlreadyProtected
	}
	r.protections[key] = p.Clone()
	return nil
}

// DeleteIf removes the protection at key when check (if non-nil) allows it.
func (r *MemoryRepository) DeleteIf(
	key domain.LocationKey,
	check func(*domain.Protection) error,
) (*domain.Protection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.protections[key]
	if !ok {
		return nil, domain.ErrNotProtected
	}
	if check != nil {
		if err := check(p.Clone()); err != nil {
			return nil, err
		}
	}
	delete(r.protections, key)
	return p, nil
}

// Update applies fn to the stored protection at key.
func (r *MemoryRepository) Update(
	key domain.LocationKey,
	fn func(*domain.Protection),
) (*domain.Protection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.protections[key]
	if !ok {
		return nil, domain.ErrNotProtected
	}
	fn(p)
	return p.Clone(), nil
}

// All returns clones of every stored protection.
func (r *MemoryRepository) All() []*domain.Protection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Protection, 0, len(r.protections))
	for _, p := range r.protections {
		result = append(result, p.Clone())
	}
	return result
}

// Replace discards all protections and stores the given ones.
// When two protections share a location, the later one wins.
func (r *MemoryRepository) Replace(protections []*domain.Protection) {
	next := make(map[domain.LocationKey]*domain.Protection, len(protections))
	for _, p := range protections {
		next[p.Key()] = p.Clone()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.protections = next
}

// Count returns the number of protections.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.protections)
}

// Ensure MemoryRepository implements ProtectionRepository.
var _ domain.ProtectionRepository = (*MemoryRepository)(nil)
