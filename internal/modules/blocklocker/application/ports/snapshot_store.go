package ports

import "github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"

// SnapshotStore persists the full protection set.
type SnapshotStore interface {
	// Load returns the stored protections. A missing snapshot yields no
	// protections and no error; an unreadable one yields an error wrapping
	// domain.ErrPersistence.
	Load() ([]*domain.Protection, error)

	// Save overwrites the stored snapshot with protections.
	Save(protections []*domain.Protection) error
}
