package ports

import "github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"

// PlayerDirectory resolves online players by name.
type PlayerDirectory interface {
	// Lookup returns the identifier of the online player with the given name.
	Lookup(name string) (domain.PlayerID, bool)
}
