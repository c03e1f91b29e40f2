package usecases

import (
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// Decision tells the host whether to let a world interaction proceed.
type Decision int

const (
	DecisionAllow  Decision = iota // Let the interaction proceed unmodified
	DecisionCancel                 // Cancel the underlying interaction
)

// String returns a human-readable representation of the decision.
func (d Decision) String() string {
	if d == DecisionCancel {
		return "cancel"
	}
	return "allow"
}

// Action is what an interaction ended up doing.
type Action int

const (
	ActionNone          Action = iota // Nothing changed; see Err for failed mode actions
	ActionLocked                      // A protection was created
	ActionUnlocked                    // A protection was removed through unlock mode
	ActionTrustGranted                // The trust target was added
	ActionTrustRevoked                // The trust target was removed
	ActionAccessDenied                // A passive check rejected the actor
	ActionBreakDenied                 // A non-owner break was rejected
	ActionProtectionBroken            // A locked block was destroyed and its protection cleared
)

// InteractInput contains the input for the Interact use case.
type InteractInput struct {
	Actor     domain.PlayerID
	ActorName string
	Location  domain.Location
	BlockKind string
	Bypass    bool // Host-granted permission to ignore protections
}

// InteractOutput contains the result of the Interact use case.
type InteractOutput struct {
	Decision   Decision
	Mode       domain.Mode // Mode consumed by this interaction (ModeNone for a passive check)
	Action     Action
	Protection *domain.Protection // Protection involved, if any
	Target     domain.PlayerID    // Trust target when Mode is ModeTrust
	BlockKind  string
	Err        error // Why a mode action failed
}

// BreakInput contains the input for the Break use case.
type BreakInput struct {
	Actor    domain.PlayerID
	Location domain.Location
	Bypass   bool
}

// BreakOutput contains the result of the Break use case.
type BreakOutput struct {
	Decision   Decision
	Action     Action
	Protection *domain.Protection
}
