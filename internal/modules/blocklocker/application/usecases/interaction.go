package usecases

import (
	"errors"
	"log/slog"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/ports"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// InteractionService turns a command followed by a block click into one
// protection operation, and gates passive interactions and breaks.
type InteractionService struct {
	registry  *Registry
	intents   domain.IntentRepository
	catalog   ports.BlockCatalog
	publisher ports.EventPublisher
}

// NewInteractionService creates a new InteractionService.
// publisher may be nil.
func NewInteractionService(
	registry *Registry,
	intents domain.IntentRepository,
	catalog ports.BlockCatalog,
	publisher ports.EventPublisher,
) *InteractionService {
	return &InteractionService{
		registry:  registry,
		intents:   intents,
		catalog:   catalog,
		publisher: publisher,
	}
}

// EnableLock arms lock mode for player, replacing any pending mode.
func (s *InteractionService) EnableLock(player domain.PlayerID) {
	s.intents.Set(player, domain.LockIntent())
}

// EnableUnlock arms unlock mode for player, replacing any pending mode.
func (s *InteractionService) EnableUnlock(player domain.PlayerID) {
	s.intents.Set(player, domain.UnlockIntent())
}

// EnableTrust arms trust mode for player targeting target, replacing any pending mode.
func (s *InteractionService) EnableTrust(player, target domain.PlayerID) error {
	if player == target {
		return domain.ErrSelfTrust
	}
	s.intents.Set(player, domain.TrustIntent(target))
	return nil
}

// Mode returns the player's pending intent.
func (s *InteractionService) Mode(player domain.PlayerID) domain.Intent {
	return s.intents.Get(player)
}

// Cleanup discards any pending intent for player.
func (s *InteractionService) Cleanup(player domain.PlayerID) {
	s.intents.Delete(player)
}

// Interact handles a block click. A pending intent is consumed exactly once,
// whether or not its action succeeds; without one the click is an access check.
func (s *InteractionService) Interact(input InteractInput) InteractOutput {
	intent := s.intents.Take(input.Actor)

	switch intent.Mode() {
	case domain.ModeLock:
		return s.lock(input)
	case domain.ModeUnlock:
		return s.unlock(input)
	case domain.ModeTrust:
		target, _ := intent.TrustTarget()
		return s.toggleTrust(input, target)
	default:
		return s.checkAccess(input)
	}
}

func (s *InteractionService) lock(input InteractInput) InteractOutput {
	out := InteractOutput{
		Decision:  DecisionCancel,
		Mode:      domain.ModeLock,
		BlockKind: input.BlockKind,
	}

	if !s.catalog.IsProtectable(input.BlockKind) {
		out.Err = domain.ErrNotProtectable
		return out
	}

	p, err := s.registry.Protect(input.Location, input.Actor, input.ActorName)
	if err != nil {
		out.Err = err
		if existing, ok := s.registry.Get(input.Location); ok {
			out.Protection = existing
		}
		return out
	}

	slog.Debug("locked block", "key", p.Key(), "player", input.Actor)
	out.Action = ActionLocked
	out.Protection = p
	s.publish(domain.BlockLockedEvent{
		Location:  input.Location,
		Owner:     input.Actor,
		OwnerName: input.ActorName,
		BlockKind: input.BlockKind,
	})
	return out
}

func (s *InteractionService) unlock(input InteractInput) InteractOutput {
	out := InteractOutput{
		Decision: DecisionCancel,
		Mode:     domain.ModeUnlock,
	}

	removed, err := s.registry.UnprotectOwned(input.Location, input.Actor)
	if err != nil {
		out.Err = err
		if existing, ok := s.registry.Get(input.Location); ok {
			out.Protection = existing
		}
		return out
	}

	slog.Debug("unlocked block", "key", removed.Key(), "player", input.Actor)
	out.Action = ActionUnlocked
	out.Protection = removed
	s.publish(domain.BlockUnlockedEvent{
		Location:  input.Location,
		Owner:     removed.Owner(),
		OwnerName: removed.OwnerName(),
	})
	return out
}

func (s *InteractionService) toggleTrust(input InteractInput, target domain.PlayerID) InteractOutput {
	out := InteractOutput{
		Decision: DecisionCancel,
		Mode:     domain.ModeTrust,
		Target:   target,
	}

	p, ok := s.registry.Get(input.Location)
	if !ok {
		out.Err = domain.ErrNotProtected
		return out
	}
	out.Protection = p
	if !p.IsOwner(input.Actor) {
		out.Err = domain.ErrNotOwner
		return out
	}

	var err error
	if p.IsTrusted(target) {
		err = s.registry.RemoveTrusted(input.Location, target)
		out.Action = ActionTrustRevoked
	} else {
		err = s.registry.AddTrusted(input.Location, target)
		out.Action = ActionTrustGranted
	}
	if err != nil {
		// The protection vanished between the lookup and the update.
		out.Action = ActionNone
		out.Err = err
		return out
	}

	if updated, ok := s.registry.Get(input.Location); ok {
		out.Protection = updated
	}

	if out.Action == ActionTrustRevoked {
		s.publish(domain.TrustRevokedEvent{Location: input.Location, Owner: input.Actor, Target: target})
	} else {
		s.publish(domain.TrustGrantedEvent{Location: input.Location, Owner: input.Actor, Target: target})
	}
	return out
}

func (s *InteractionService) checkAccess(input InteractInput) InteractOutput {
	out := InteractOutput{Decision: DecisionAllow, Mode: domain.ModeNone}

	p, ok := s.registry.Get(input.Location)
	if !ok {
		return out
	}
	out.Protection = p

	if input.Bypass || p.HasAccess(input.Actor) {
		return out
	}

	out.Decision = DecisionCancel
	out.Action = ActionAccessDenied
	s.publish(domain.AccessDeniedEvent{
		Location:  input.Location,
		Actor:     input.Actor,
		OwnerName: p.OwnerName(),
	})
	return out
}

// Break handles an attempt to destroy a block. Only the owner (or a bypassing
// actor) may break a locked block, and doing so always clears its protection.
func (s *InteractionService) Break(input BreakInput) BreakOutput {
	p, ok := s.registry.Get(input.Location)
	if !ok {
		return BreakOutput{Decision: DecisionAllow}
	}

	isOwner := p.IsOwner(input.Actor)
	if !isOwner && !input.Bypass {
		s.publish(domain.BreakDeniedEvent{
			Location:  input.Location,
			Actor:     input.Actor,
			OwnerName: p.OwnerName(),
		})
		return BreakOutput{Decision: DecisionCancel, Action: ActionBreakDenied, Protection: p}
	}

	// The record was just observed, so a missing one here only means a
	// concurrent removal already did the work.
	var err error
	if isOwner {
		_, err = s.registry.UnprotectOwned(input.Location, input.Actor)
	} else {
		_, err = s.registry.Unprotect(input.Location)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			// Re-locked by someone else in between.
			return BreakOutput{Decision: DecisionCancel, Action: ActionBreakDenied, Protection: p}
		}
		return BreakOutput{Decision: DecisionAllow}
	}

	s.publish(domain.ProtectionBrokenEvent{
		Location:  input.Location,
		Actor:     input.Actor,
		OwnerName: p.OwnerName(),
		Bypass:    !isOwner,
	})
	return BreakOutput{Decision: DecisionAllow, Action: ActionProtectionBroken, Protection: p}
}

func (s *InteractionService) publish(event domain.Event) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
