package domain

// Event is a fact about a protection that subscribers may react to.
type Event interface {
	EventType() string
}

// BlockLockedEvent is published when a player locks a block.
type BlockLockedEvent struct {
	Location  Location
	Owner     PlayerID
	OwnerName string
	BlockKind string
}

// BlockUnlockedEvent is published when an owner unlocks a block through unlock mode.
type BlockUnlockedEvent struct {
	Location  Location
	Owner     PlayerID
	OwnerName string
}

// TrustGrantedEvent is published when an owner adds a trusted player.
type TrustGrantedEvent struct {
	Location Location
	Owner    PlayerID
	Target   PlayerID
}

// TrustRevokedEvent is published when an owner removes a trusted player.
type TrustRevokedEvent struct {
	Location Location
	Owner    PlayerID
	Target   PlayerID
}

// AccessDeniedEvent is published when a stranger's interaction is cancelled.
type AccessDeniedEvent struct {
	Location  Location
	Actor     PlayerID
	OwnerName string
}

// BreakDeniedEvent is published when a non-owner's attempt to break a locked block is cancelled.
type BreakDeniedEvent struct {
	Location  Location
	Actor     PlayerID
	OwnerName string
}

// ProtectionBrokenEvent is published when a locked block is destroyed and its protection cleared.
type ProtectionBrokenEvent struct {
	Location  Location
	Actor     PlayerID
	OwnerName string
	Bypass    bool // true if a bypassing non-owner broke the block
}

func (BlockLockedEvent) EventType() string      { return "block_locked" }
func (BlockUnlockedEvent) EventType() string    { return "block_unlocked" }
func (TrustGrantedEvent) EventType() string     { return "trust_granted" }
func (TrustRevokedEvent) EventType() string     { return "trust_revoked" }
func (AccessDeniedEvent) EventType() string     { return "access_denied" }
func (BreakDeniedEvent) EventType() string      { return "break_denied" }
func (ProtectionBrokenEvent) EventType() string { return "protection_broken" }
