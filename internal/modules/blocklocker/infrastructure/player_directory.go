package infrastructure

import (
	"strings"
	"sync"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/ports"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// OnlinePlayers tracks connected players so trust targets can be resolved by name.
// Names are matched case-insensitively.
type OnlinePlayers struct {
	mu     sync.RWMutex
	byName map[string]domain.PlayerID
	names  map[domain.PlayerID]string
}

// NewOnlinePlayers creates an empty OnlinePlayers directory.
func NewOnlinePlayers() *OnlinePlayers {
	return &OnlinePlayers{
		byName: make(map[string]domain.PlayerID),
		names:  make(map[domain.PlayerID]string),
	}
}

// Join records that player is online under name.
func (d *OnlinePlayers) Join(player domain.PlayerID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if old, ok := d.names[player]; ok {
		delete(d.byName, strings.ToLower(old))
	}
	d.names[player] = name
	d.byName[strings.ToLower(name)] = player
}

// Leave records that player went offline.
func (d *OnlinePlayers) Leave(player domain.PlayerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name, ok := d.names[player]
	if !ok {
		return
	}
	delete(d.names, player)
	if d.byName[strings.ToLower(name)] == player {
		delete(d.byName, strings.ToLower(name))
	}
}

// Lookup returns the online player with the given name.
func (d *OnlinePlayers) Lookup(name string) (domain.PlayerID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byName[strings.ToLower(name)]
	return id, ok
}

// Name returns the display name of an online player.
func (d *OnlinePlayers) Name(player domain.PlayerID) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.names[player]
	return name, ok
}

// Count returns the number of online players.
func (d *OnlinePlayers) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.names)
}

var _ ports.PlayerDirectory = (*OnlinePlayers)(nil)
