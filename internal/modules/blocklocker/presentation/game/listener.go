package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/usecases"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// Presence records which players are online.
type Presence interface {
	Join(player domain.PlayerID, name string)
	Leave(player domain.PlayerID)
}

// InteractEvent is a player clicking a block.
type InteractEvent struct {
	Actor     domain.PlayerID
	ActorName string
	Location  domain.Location
	BlockKind string // Block type identifier, e.g. "minecraft:chest"
	Bypass    bool   // Actor holds the bypass permission
}

// BreakEvent is a player destroying a block.
type BreakEvent struct {
	Actor    domain.PlayerID
	Location domain.Location
	Bypass   bool
}

// Response is what the host should do with the event and tell the actor.
type Response struct {
	Decision usecases.Decision
	Messages []Message
}

// Cancelled reports whether the host must cancel the underlying event.
func (r Response) Cancelled() bool {
	return r.Decision == usecases.DecisionCancel
}

// Listener handles world events forwarded by the host server.
type Listener struct {
	interactions *usecases.InteractionService
	presence     Presence
}

// NewListener creates a new Listener. presence may be nil.
func NewListener(interactions *usecases.InteractionService, presence Presence) *Listener {
	return &Listener{
		interactions: interactions,
		presence:     presence,
	}
}

// OnWorldInteract handles a block click.
func (l *Listener) OnWorldInteract(event InteractEvent) Response {
	out := l.interactions.Interact(usecases.InteractInput{
		Actor:     event.Actor,
		ActorName: event.ActorName,
		Location:  event.Location,
		BlockKind: event.BlockKind,
		Bypass:    event.Bypass,
	})

	resp := Response{Decision: out.Decision}
	if msg, ok := interactMessage(out); ok {
		resp.Messages = []Message{msg}
	}
	return resp
}

func interactMessage(out usecases.InteractOutput) (Message, bool) {
	switch out.Action {
	case usecases.ActionLocked:
		return success(msgLocked), true
	case usecases.ActionUnlocked:
		return success(msgUnlocked), true
	case usecases.ActionTrustGranted:
		return success(msgTrustAdded), true
	case usecases.ActionTrustRevoked:
		return success(msgTrustRemoved), true
	case usecases.ActionAccessDenied:
		return failure(fmt.Sprintf(msgLockedBy, out.Protection.OwnerName())), true
	}

	if out.Err == nil {
		return Message{}, false
	}

	switch {
	case errors.Is(out.Err, domain.ErrNotProtectable):
		return failure(msgNotProtectable), true
	case errors.Is(out.Err, domain.ErrAlreadyProtected):
		return failure(msgAlreadyLocked), true
	case errors.Is(out.Err, domain.ErrNotProtected):
		return failure(msgNotLocked), true
	case errors.Is(out.Err, domain.ErrNotOwner):
		if out.Mode == domain.ModeTrust {
			return failure(msgOnlyOwnerTrust), true
		}
		return failure(msgOnlyOwnerUnlock), true
	default:
		slog.Error("failed to handle interaction", "mode", out.Mode, "error", out.Err)
		return failure(msgSomethingWentWrong), true
	}
}

// OnBlockDestroy handles a block break.
func (l *Listener) OnBlockDestroy(event BreakEvent) Response {
	out := l.interactions.Break(usecases.BreakInput{
		Actor:    event.Actor,
		Location: event.Location,
		Bypass:   event.Bypass,
	})

	resp := Response{Decision: out.Decision}
	switch out.Action {
	case usecases.ActionBreakDenied:
		resp.Messages = []Message{failure(fmt.Sprintf(msgCannotBreak, out.Protection.OwnerName()))}
	case usecases.ActionProtectionBroken:
		resp.Messages = []Message{success(msgProtectionRemoved)}
	}
	return resp
}

// OnActorJoin records a player coming online.
func (l *Listener) OnActorJoin(player domain.PlayerID, name string) {
	if l.presence != nil {
		l.presence.Join(player, name)
	}
}

// OnActorDisconnect drops the player's pending mode and presence.
func (l *Listener) OnActorDisconnect(player domain.PlayerID) {
	l.interactions.Cleanup(player)
	if l.presence != nil {
		l.presence.Leave(player)
	}
}
