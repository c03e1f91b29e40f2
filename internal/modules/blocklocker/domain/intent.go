package domain

// Mode is the pending action a player has armed with a command.
type Mode int

const (
	ModeNone   Mode = iota // Default: clicks are passive access checks
	ModeLock               // Next click locks the block
	ModeUnlock             // Next click unlocks the block
	ModeTrust              // Next click toggles trust for the target
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLock:
		return "lock"
	case ModeUnlock:
		return "unlock"
	case ModeTrust:
		return "trust"
	default:
		return "none"
	}
}

// Intent is a player's pending action. The zero value is the idle intent.
type Intent struct {
	mode        Mode
	trustTarget PlayerID
}

// LockIntent returns an intent that locks the next clicked block.
func LockIntent() Intent {
	return Intent{mode: ModeLock}
}

// UnlockIntent returns an intent that unlocks the next clicked block.
func UnlockIntent() Intent {
	return Intent{mode: ModeUnlock}
}

// TrustIntent returns an intent that toggles target's trust on the next clicked block.
func TrustIntent(target PlayerID) Intent {
	return Intent{mode: ModeTrust, trustTarget: target}
}

// Mode returns the intent's mode.
func (i Intent) Mode() Mode {
	return i.mode
}

// IsIdle reports whether no action is pending.
func (i Intent) IsIdle() bool {
	return i.mode == ModeNone
}

// TrustTarget returns the player whose trust is toggled.
// The second return value is false unless the mode is ModeTrust.
func (i Intent) TrustTarget() (PlayerID, bool) {
	if i.mode != ModeTrust {
		return PlayerID{}, false
	}
	return i.trustTarget, true
}
