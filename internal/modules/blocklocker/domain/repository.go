package domain

// ProtectionRepository stores protections keyed by location.
// Implementations must be safe for concurrent use and must never hand out
// protections that share mutable state with the stored copy.
type ProtectionRepository interface {
	// Get returns the protection at key, or false if the location is unprotected.
	Get(key LocationKey) (*Protection, bool)

	// Insert stores p. Returns ErrAlreadyProtected if its location is taken.
	Insert(p *Protection) error

	// DeleteIf removes the protection at key if check returns nil.
	// Returns ErrNotProtected if no protection exists, or check's error.
	DeleteIf(key LocationKey, check func(*Protection) error) (*Protection, error)

	// Update applies fn to the stored protection at key under the write lock.
	// Returns ErrNotProtected if no protection exists.
	Update(key LocationKey, fn func(*Protection)) (*Protection, error)

	// All returns every stored protection in no particular order.
	All() []*Protection

	// Replace discards all protections and stores the given ones.
	Replace(protections []*Protection)

	// Count returns the number of stored protections.
	Count() int
}

// IntentRepository stores pending player intents. It never persists anything.
type IntentRepository interface {
	// Set stores intent for player, replacing any previous one.
	Set(player PlayerID, intent Intent)

	// Get returns the player's intent; idle if none is stored.
	Get(player PlayerID) Intent

	// Take returns and removes the player's intent in one step.
	Take(player PlayerID) Intent

	// Delete discards the player's intent.
	Delete(player PlayerID)

	// Count returns the number of players with a pending intent.
	Count() int
}
