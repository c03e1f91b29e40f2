package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/blocklocker/internal/bot"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/usecases"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// DefaultListLimit is how many protections /blocklocker list shows.
const DefaultListLimit = 10

// Counter reports how many entries a live store holds.
type Counter interface {
	Count() int
}

// CommandHandlers holds the /blocklocker command handlers.
type CommandHandlers struct {
	registry  *usecases.Registry
	players   Counter
	intents   Counter
	listLimit int
}

// NewCommandHandlers creates new CommandHandlers. players and intents feed the
// stats reply and may be nil.
func NewCommandHandlers(
	registry *usecases.Registry,
	players Counter,
	intents Counter,
	listLimit int,
) *CommandHandlers {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &CommandHandlers{
		registry:  registry,
		players:   players,
		intents:   intents,
		listLimit: listLimit,
	}
}

// HandleBlockLocker handles the /blocklocker command.
func (h *CommandHandlers) HandleBlockLocker(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return respondError(r, "Invalid subcommand")
	}

	subCmd := options[0]
	switch subCmd.Name {
	case "info":
		return h.handleInfo(r, subCmd.Options)
	case "list":
		return h.handleList(r, subCmd.Options)
	case "stats":
		return h.handleStats(r)
	case "release":
		return h.handleRelease(i, r, subCmd.Options)
	default:
		return respondError(r, "Unknown subcommand")
	}
}

func (h *CommandHandlers) handleInfo(
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	location, err := parseLocation(options)
	if err != nil {
		return respondError(r, err.Error())
	}

	protection, ok := h.registry.Get(location)
	if !ok {
		return respondEmbed(r, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("No lock at %s.", location),
			Color:       bot.ColorInfo,
		})
	}

	return respondEmbed(r, protectionEmbed(protection, h.listLimit))
}

func (h *CommandHandlers) handleList(
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	var raw string
	for _, opt := range options {
		if opt.Name == "player" {
			raw = opt.StringValue()
		}
	}

	player, err := domain.ParsePlayerID(raw)
	if err != nil {
		return respondError(r, "Invalid player UUID")
	}

	owned := h.registry.ListOwnedBy(player)
	if len(owned) == 0 {
		return respondEmbed(r, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("`%s` has no locked blocks.", player),
			Color:       bot.ColorInfo,
		})
	}

	var b strings.Builder
	for idx, p := range owned {
		if idx >= h.listLimit {
			fmt.Fprintf(&b, "... and %d more\n", len(owned)-h.listLimit)
			break
		}
		fmt.Fprintf(&b, "- %s (%d trusted)\n", p.Location(), p.TrustedCount())
	}

	return respondEmbed(r, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Locked blocks of %s", owned[0].OwnerName()),
		Description: b.String(),
		Color:       bot.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d total", len(owned)),
		},
	})
}

func (h *CommandHandlers) handleStats(r bot.Responder) error {
	all := h.registry.All()

	owners := make(map[domain.PlayerID]struct{})
	for _, p := range all {
		owners[p.Owner()] = struct{}{}
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Locked blocks", Value: fmt.Sprint(len(all)), Inline: true},
		{Name: "Owners", Value: fmt.Sprint(len(owners)), Inline: true},
	}
	if h.players != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Online players", Value: fmt.Sprint(h.players.Count()), Inline: true,
		})
	}
	if h.intents != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Pending actions", Value: fmt.Sprint(h.intents.Count()), Inline: true,
		})
	}

	return respondEmbed(r, &discordgo.MessageEmbed{
		Title:  "BlockLocker",
		Color:  bot.ColorInfo,
		Fields: fields,
	})
}

func (h *CommandHandlers) handleRelease(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		return respondError(r, "Only administrators can release locks.")
	}

	location, err := parseLocation(options)
	if err != nil {
		return respondError(r, err.Error())
	}

	removed, err := h.registry.Unprotect(location)
	if err != nil {
		if errors.Is(err, domain.ErrNotProtected) {
			return respondError(r, fmt.Sprintf("No lock at %s.", location))
		}
		return respondError(r, err.Error())
	}

	var operator string
	if i.Member.User != nil {
		operator = i.Member.User.ID
	}
	slog.Info("released protection",
		"key", removed.Key(),
		"owner", removed.Owner(),
		"operator", operator,
	)

	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Released the lock of **%s** at %s.", removed.OwnerName(), location),
		Color:       bot.ColorSuccess,
	})
}

func parseLocation(
	options []*discordgo.ApplicationCommandInteractionDataOption,
) (domain.Location, error) {
	var (
		world      string
		dimension  int
		x, y, z    int
		seenCoords int
	)
	for _, opt := range options {
		switch opt.Name {
		case "world":
			world = opt.StringValue()
		case "dimension":
			dimension = int(opt.IntValue())
		case "x":
			x = int(opt.IntValue())
			seenCoords++
		case "y":
			y = int(opt.IntValue())
			seenCoords++
		case "z":
			z = int(opt.IntValue())
			seenCoords++
		}
	}

	if world == "" {
		return domain.Location{}, errors.New("world is required")
	}
	if seenCoords != 3 {
		return domain.Location{}, errors.New("x, y and z are required")
	}

	return domain.NewLocation(world, dimension, x, y, z), nil
}

// maxFieldLength is Discord's limit on an embed field value.
const maxFieldLength = 1024

func protectionEmbed(p *domain.Protection, limit int) *discordgo.MessageEmbed {
	trusted := "None"
	if ids := p.Trusted(); len(ids) > 0 {
		trusted = trustedList(ids, limit)
	}

	flags := p.Flags()
	return &discordgo.MessageEmbed{
		Title:       "Locked Block",
		Description: p.Location().String(),
		Color:       bot.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("%s (`%s`)", p.OwnerName(), p.Owner()), Inline: false},
			{Name: "Locked", Value: fmt.Sprintf("<t:%d:f>", p.CreatedAt().Unix()), Inline: true},
			{Name: "Redstone", Value: yesNo(flags.AllowRedstone), Inline: true},
			{Name: "Hoppers", Value: yesNo(flags.AllowHoppers), Inline: true},
			{Name: "Trusted", Value: trusted, Inline: false},
		},
	}
}

// trustedList renders at most limit ids, one per line, and summarizes the rest.
// The result always fits in a single embed field.
func trustedList(ids []domain.PlayerID, limit int) string {
	// Room for the longest possible "... and N more" line.
	const reserve = len("... and 99999999 more")

	var b strings.Builder
	for idx, id := range ids {
		if idx > 0 {
			b.WriteByte('\n')
		}
		line := "`" + id.String() + "`"
		if idx >= limit || b.Len()+len(line)+1+reserve > maxFieldLength {
			fmt.Fprintf(&b, "... and %d more", len(ids)-idx)
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "Allowed"
	}
	return "Blocked"
}

func respondEmbed(r bot.Responder, embed *discordgo.MessageEmbed) error {
	return bot.RespondEmbed(r, embed)
}

func respondError(r bot.Responder, message string) error {
	return bot.RespondEmbed(r, bot.ErrorEmbed(message))
}
