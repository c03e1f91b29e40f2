package domain

import (
	"slices"
	"time"
)

// Flags are per-protection gameplay toggles. They are persisted but no access
// check reads them yet.
type Flags struct {
	AllowRedstone bool
	AllowHoppers  bool
}

// Protection binds a block location to its owner and the players the owner trusts.
type Protection struct {
	location  Location
	owner     PlayerID
	ownerName string
	createdAt time.Time
	trusted   []PlayerID
	flags     Flags
}

// NewProtection creates a Protection owned by owner, created at the given time.
func NewProtection(location Location, owner PlayerID, ownerName string, createdAt time.Time) *Protection {
	return &Protection{
		location:  location,
		owner:     owner,
		ownerName: ownerName,
		createdAt: createdAt,
		trusted:   make([]PlayerID, 0),
	}
}

// RestoreProtection rebuilds a Protection from persisted state.
// Duplicate and owner entries in trusted are dropped.
func RestoreProtection(
	location Location,
	owner PlayerID,
	ownerName string,
	createdAt time.Time,
	trusted []PlayerID,
	flags Flags,
) *Protection {
	p := NewProtection(location, owner, ownerName, createdAt)
	p.flags = flags
	for _, id := range trusted {
		p.AddTrusted(id)
	}
	return p
}

// Location returns the protected location.
func (p *Protection) Location() Location {
	return p.location
}

// Key returns the registry key of the protected location.
func (p *Protection) Key() LocationKey {
	return p.location.Key()
}

// Owner returns the owner's identifier.
func (p *Protection) Owner() PlayerID {
	// No setter: ownership is fixed at creation
	return p.owner
}

// OwnerName returns the owner's display name as it was when the block was locked.
func (p *Protection) OwnerName() string {
	return p.ownerName
}

// CreatedAt returns when the protection was created.
func (p *Protection) CreatedAt() time.Time {
	return p.createdAt
}

// Flags returns the gameplay flags.
func (p *Protection) Flags() Flags {
	return p.flags
}

// Trusted returns a copy of the trusted player list.
func (p *Protection) Trusted() []PlayerID {
	return slices.Clone(p.trusted)
}

// TrustedCount returns the number of trusted players.
func (p *Protection) TrustedCount() int {
	return len(p.trusted)
}

// IsOwner reports whether player owns the protection.
func (p *Protection) IsOwner(player PlayerID) bool {
	return p.owner == player
}

// IsTrusted reports whether player is in the trusted set.
func (p *Protection) IsTrusted(player PlayerID) bool {
	return slices.Contains(p.trusted, player)
}

// HasAccess reports whether player may use the protected block.
func (p *Protection) HasAccess(player PlayerID) bool {
	return p.IsOwner(player) || p.IsTrusted(player)
}

// AddTrusted inserts player into the trusted set.
// Returns false if the player is the owner or already trusted.
func (p *Protection) AddTrusted(player PlayerID) bool {
	if p.IsOwner(player) || p.IsTrusted(player) {
		return false
	}
	p.trusted = append(p.trusted, player)
	return true
}

// RemoveTrusted removes player from the trusted set.
// Returns false if the player was not trusted.
func (p *Protection) RemoveTrusted(player PlayerID) bool {
	idx := slices.Index(p.trusted, player)
	if idx < 0 {
		return false
	}
	p.trusted = slices.Delete(p.trusted, idx, idx+1)
	return true
}

// Clone returns a deep copy that shares no mutable state with p.
func (p *Protection) Clone() *Protection {
	c := *p
	c.trusted = slices.Clone(p.trusted)
	if c.trusted == nil {
		c.trusted = make([]PlayerID, 0)
	}
	return &c
}
