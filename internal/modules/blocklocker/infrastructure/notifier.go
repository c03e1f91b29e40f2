package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// Embed colors.
const (
	colorGreen  = 0x08c404
	colorYellow = 0xF1C40F
	colorRed    = 0xE74C3C
	colorGray   = 0x95A5A6
)

// EmbedSender is the part of a Discord session the notifier needs.
type EmbedSender interface {
	ChannelMessageSendEmbed(
		channelID string,
		embed *discordgo.MessageEmbed,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// NameResolver returns display names for player identifiers.
type NameResolver interface {
	Name(player domain.PlayerID) (string, bool)
}

// Notifier posts protection events to a Discord audit channel.
type Notifier struct {
	sender    EmbedSender
	channelID snowflake.ID
	names     NameResolver
	now       func() time.Time
}

// NewNotifier creates a new Notifier. names may be nil.
func NewNotifier(sender EmbedSender, channelID snowflake.ID, names NameResolver) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		names:     names,
		now:       time.Now,
	}
}

// HandleEvent posts event to the audit channel. It is an EventSubscriber handler.
func (n *Notifier) HandleEvent(_ context.Context, event domain.Event) {
	embed := n.BuildEmbed(event)
	if embed == nil {
		return
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID.String(), embed); err != nil {
		slog.Error("failed to send audit notification",
			"channel", n.channelID,
			"type", event.EventType(),
			"error", err,
		)
	}
}

// BuildEmbed renders event as an audit embed, or nil for unknown events.
func (n *Notifier) BuildEmbed(event domain.Event) *discordgo.MessageEmbed {
	var (
		title       string
		description string
		color       int
		location    domain.Location
	)

	switch e := event.(type) {
	case domain.BlockLockedEvent:
		title, color, location = "Block Locked", colorGreen, e.Location
		description = fmt.Sprintf("**%s** locked a %s.", e.OwnerName, domain.BlockDisplayName(e.BlockKind))
	case domain.BlockUnlockedEvent:
		title, color, location = "Block Unlocked", colorGray, e.Location
		description = fmt.Sprintf("**%s** unlocked a block.", e.OwnerName)
	case domain.TrustGrantedEvent:
		title, color, location = "Player Trusted", colorGreen, e.Location
		description = fmt.Sprintf("**%s** trusted **%s**.", n.name(e.Owner), n.name(e.Target))
	case domain.TrustRevokedEvent:
		title, color, location = "Player Untrusted", colorGray, e.Location
		description = fmt.Sprintf("**%s** removed **%s** from the trusted list.",
			n.name(e.Owner), n.name(e.Target))
	case domain.AccessDeniedEvent:
		title, color, location = "Access Denied", colorYellow, e.Location
		description = fmt.Sprintf("**%s** tried to open a block locked by **%s**.",
			n.name(e.Actor), e.OwnerName)
	case domain.BreakDeniedEvent:
		title, color, location = "Break Denied", colorRed, e.Location
		description = fmt.Sprintf("**%s** tried to break a block locked by **%s**.",
			n.name(e.Actor), e.OwnerName)
	case domain.ProtectionBrokenEvent:
		title, color, location = "Locked Block Destroyed", colorGray, e.Location
		description = fmt.Sprintf("**%s** broke a block locked by **%s**.", n.name(e.Actor), e.OwnerName)
		if e.Bypass {
			description += " (bypass)"
		}
	default:
		return nil
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   n.now().UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "World", Value: location.World, Inline: true},
			{Name: "Dimension", Value: fmt.Sprint(location.Dimension), Inline: true},
			{
				Name:   "Position",
				Value:  fmt.Sprintf("%d, %d, %d", location.X, location.Y, location.Z),
				Inline: true,
			},
		},
	}
}

func (n *Notifier) name(player domain.PlayerID) string {
	if n.names != nil {
		if name, ok := n.names.Name(player); ok {
			return name
		}
	}
	return player.String()
}
