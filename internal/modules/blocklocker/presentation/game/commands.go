package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/ports"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/usecases"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// DefaultListLimit is how many protections info and list show before summarizing.
const DefaultListLimit = 10

// Sender is whoever ran a command. Console senders have IsPlayer false.
type Sender struct {
	ID       domain.PlayerID
	Name     string
	IsPlayer bool
}

// Reply is the outcome of a command.
type Reply struct {
	OK       bool
	Messages []Message
}

func ok(msgs ...Message) Reply   { return Reply{OK: true, Messages: msgs} }
func fail(msgs ...Message) Reply { return Reply{OK: false, Messages: msgs} }

// CommandHandlers implements the /blocklocker command tree.
// Permission gating is left to the host.
type CommandHandlers struct {
	interactions *usecases.InteractionService
	registry     *usecases.Registry
	players      ports.PlayerDirectory
	listLimit    int
}

// NewCommandHandlers creates new CommandHandlers. players may be nil, in which
// case no trust target can be resolved.
func NewCommandHandlers(
	interactions *usecases.InteractionService,
	registry *usecases.Registry,
	players ports.PlayerDirectory,
	listLimit int,
) *CommandHandlers {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &CommandHandlers{
		interactions: interactions,
		registry:     registry,
		players:      players,
		listLimit:    listLimit,
	}
}

// Dispatch routes "/blocklocker <args...>" to the matching handler.
func (h *CommandHandlers) Dispatch(sender Sender, args []string) Reply {
	if len(args) == 0 {
		return h.HandleHelp()
	}

	sub := strings.ToLower(args[0])
	switch sub {
	case "lock":
		return h.HandleLock(sender)
	case "unlock":
		return h.HandleUnlock(sender)
	case "trust", "untrust":
		if len(args) < 2 || args[1] == "" {
			return fail(failure(fmt.Sprintf(msgTrustUsage, sub)))
		}
		return h.HandleTrust(sender, args[1], sub == "trust")
	case "info", "list":
		return h.HandleInfo(sender)
	case "help":
		return h.HandleHelp()
	default:
		reply := h.HandleHelp()
		reply.OK = false
		reply.Messages = append(
			[]Message{failure(fmt.Sprintf(msgUnknownSubcommand, args[0]))},
			reply.Messages...,
		)
		return reply
	}
}

// HandleLock handles "/blocklocker lock".
func (h *CommandHandlers) HandleLock(sender Sender) Reply {
	if !sender.IsPlayer {
		return fail(failure(msgPlayersOnly))
	}
	h.interactions.EnableLock(sender.ID)
	return ok(success(msgLockMode), muted(msgLockModeHint))
}

// HandleUnlock handles "/blocklocker unlock".
func (h *CommandHandlers) HandleUnlock(sender Sender) Reply {
	if !sender.IsPlayer {
		return fail(failure(msgPlayersOnly))
	}
	h.interactions.EnableUnlock(sender.ID)
	return ok(success(msgUnlockMode))
}

// HandleTrust handles "/blocklocker trust <player>" and "/blocklocker untrust <player>".
// Both arm the same toggle; add only changes the wording.
func (h *CommandHandlers) HandleTrust(sender Sender, targetName string, add bool) Reply {
	if !sender.IsPlayer {
		return fail(failure(msgPlayersOnly))
	}

	var (
		target domain.PlayerID
		found  bool
	)
	if h.players != nil {
		target, found = h.players.Lookup(targetName)
	}
	if !found {
		return fail(failure(fmt.Sprintf(msgPlayerNotFound, targetName)))
	}

	if err := h.interactions.EnableTrust(sender.ID, target); err != nil {
		if errors.Is(err, domain.ErrSelfTrust) {
			return fail(failure(msgSelfTrust))
		}
		return fail(failure(msgSomethingWentWrong))
	}

	verb := "remove"
	if add {
		verb = "add"
	}
	return ok(success(fmt.Sprintf(msgTrustMode, verb, targetName)))
}

// HandleInfo handles "/blocklocker info" and "/blocklocker list".
func (h *CommandHandlers) HandleInfo(sender Sender) Reply {
	if !sender.IsPlayer {
		return fail(failure(msgPlayersOnly))
	}

	owned := h.registry.ListOwnedBy(sender.ID)

	msgs := []Message{
		header("===== BlockLocker Info ====="),
		info(fmt.Sprintf("Your protected blocks: %d", len(owned))),
	}

	if len(owned) == 0 {
		msgs = append(msgs,
			muted("You don't have any locked blocks."),
			muted("Use /blocklocker lock to lock a block."),
		)
	} else {
		msgs = append(msgs, muted("Your locked blocks:"))
		for i, p := range owned {
			if i >= h.listLimit {
				msgs = append(msgs, muted(fmt.Sprintf("... and %d more", len(owned)-h.listLimit)))
				break
			}
			msgs = append(msgs, muted(fmt.Sprintf("- %s (%d trusted)", p.Location(), p.TrustedCount())))
		}
	}

	msgs = append(msgs, header("=========================="))
	return ok(msgs...)
}

// HandleHelp handles "/blocklocker help" and the bare command.
func (h *CommandHandlers) HandleHelp() Reply {
	return ok(
		header("===== BlockLocker Commands ====="),
		info("/blocklocker lock - Enable lock mode, then right-click a block"),
		info("/blocklocker unlock - Enable unlock mode, then right-click a block"),
		info("/blocklocker trust <player> - Enable trust mode to add a player"),
		info("/blocklocker untrust <player> - Enable trust mode to remove a player"),
		info("/blocklocker info - Show your protection statistics"),
		info("/blocklocker list - List your protected blocks"),
		info("/blocklocker help - Show this help message"),
		header("================================"),
		muted("Protectable blocks: chests, doors, furnaces, hoppers, dispensers, barrels, "+
			"anvils, enchanting tables, beacons"),
	)
}
