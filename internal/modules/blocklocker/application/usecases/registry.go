package usecases

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/ports"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// Registry is the single source of truth for protections.
// Every successful mutation is written through to the snapshot store.
type Registry struct {
	repo  domain.ProtectionRepository
	store ports.SnapshotStore

	// flushMu serializes snapshot writes so two flushes never interleave
	// and the last write always carries the newest state.
	flushMu sync.Mutex

	now func() time.Time
}

// NewRegistry creates a new Registry.
func NewRegistry(repo domain.ProtectionRepository, store ports.SnapshotStore) *Registry {
	return &Registry{
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

// Load replaces the in-memory protections with the stored snapshot.
// An unreadable snapshot is logged and the registry starts empty.
func (r *Registry) Load() {
	protections, err := r.store.Load()
	if err != nil {
		slog.Error("failed to load protection data, starting with no protections",
			"error", err,
		)
		r.repo.Replace(nil)
		return
	}

	r.repo.Replace(protections)
	slog.Info("loaded protection data", "count", r.repo.Count())
}

// Flush writes the full protection set to the snapshot store.
func (r *Registry) Flush() error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	protections := r.repo.All()
	if err := r.store.Save(protections); err != nil {
		return err
	}
	slog.Debug("saved protection data", "count", len(protections))
	return nil
}

// flush persists after a mutation. Failures are logged; memory stays authoritative.
func (r *Registry) flush() {
	if err := r.Flush(); err != nil {
		slog.Error("failed to save protection data", "error", err)
	}
}

// Protect locks location for owner.
// Returns ErrAlreadyProtected, leaving the existing protection untouched, if the location is taken.
func (r *Registry) Protect(
	location domain.Location,
	owner domain.PlayerID,
	ownerName string,
) (*domain.Protection, error) {
	p := domain.NewProtection(location, owner, ownerName, r.now())
	if err := r.repo.Insert(p); err != nil {
		return nil, err
	}
	r.flush()
	return p.Clone(), nil
}

// Unprotect removes the protection at location.
func (r *Registry) Unprotect(location domain.Location) (*domain.Protection, error) {
	removed, err := r.repo.DeleteIf(location.Key(), nil)
	if err != nil {
		return nil, err
	}
	r.flush()
	return removed, nil
}

// UnprotectOwned removes the protection at location if player owns it.
// The ownership check and removal happen atomically.
func (r *Registry) UnprotectOwned(
	location domain.Location,
	player domain.PlayerID,
) (*domain.Protection, error) {
	removed, err := r.repo.DeleteIf(location.Key(), func(p *domain.Protection) error {
		if !p.IsOwner(player) {
			return domain.ErrNotOwner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.flush()
	return removed, nil
}

// Get returns the protection at location.
func (r *Registry) Get(location domain.Location) (*domain.Protection, bool) {
	return r.repo.Get(location.Key())
}

// HasAccess reports whether player may use the block at location.
// Unprotected locations are open to everyone.
func (r *Registry) HasAccess(location domain.Location, player domain.PlayerID) bool {
	p, ok := r.repo.Get(location.Key())
	if !ok {
		return true
	}
	return p.HasAccess(player)
}

// IsOwner reports whether player owns the protection at location.
func (r *Registry) IsOwner(location domain.Location, player domain.PlayerID) bool {
	p, ok := r.repo.Get(location.Key())
	if !ok {
		return false
	}
	return p.IsOwner(player)
}

// AddTrusted adds player to the trusted set at location. Adding twice is a no-op.
func (r *Registry) AddTrusted(location domain.Location, player domain.PlayerID) error {
	if _, err := r.repo.Update(location.Key(), func(p *domain.Protection) {
		p.AddTrusted(player)
	}); err != nil {
		return err
	}
	r.flush()
	return nil
}

// RemoveTrusted removes player from the trusted set at location.
// Persists even when the player was not trusted.
func (r *Registry) RemoveTrusted(location domain.Location, player domain.PlayerID) error {
	if _, err := r.repo.Update(location.Key(), func(p *domain.Protection) {
		p.RemoveTrusted(player)
	}); err != nil {
		return err
	}
	r.flush()
	return nil
}

// ListOwnedBy returns the protections owned by player, oldest first.
func (r *Registry) ListOwnedBy(player domain.PlayerID) []*domain.Protection {
	var owned []*domain.Protection
	for _, p := range r.repo.All() {
		if p.IsOwner(player) {
			owned = append(owned, p)
		}
	}
	sortProtections(owned)
	return owned
}

// All returns every protection, oldest first.
func (r *Registry) All() []*domain.Protection {
	all := r.repo.All()
	sortProtections(all)
	return all
}

// Count returns the number of protections.
func (r *Registry) Count() int {
	return r.repo.Count()
}

func sortProtections(ps []*domain.Protection) {
	slices.SortFunc(ps, func(a, b *domain.Protection) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.Key(), b.Key())
	})
}
