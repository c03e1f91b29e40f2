package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// InteractionHandler handles a Discord interaction and returns a response.
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// EventHandler is a generic handler for any Discord event.
// It should be a function matching one of discordgo's handler signatures,
// e.g., func(s *discordgo.Session, m *discordgo.MessageCreate)
type EventHandler any

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	// Context is cancelled when the host begins stopping, before any module's
	// Shutdown runs. Background work started in Init should stop with it.
	Context context.Context

	Config *Config

	// Session is nil when the host runs headless.
	Session *discordgo.Session
}

// Module is a unit of functionality hosted by the bot.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the slash commands that this module provides.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers returns a map of command names to their handlers.
	CommandHandlers() map[string]InteractionHandler

	// EventHandlers returns Discord event handlers for this module.
	EventHandlers() []EventHandler

	// Init initializes the module. It runs before the Discord connection opens,
	// and also in headless mode.
	Init(deps ModuleDependencies) error

	// Shutdown releases module resources and persists any pending state.
	Shutdown() error
}

// ConfigurableModule is implemented by modules that read their own settings.
// LoadConfig is called before Init and should fail on invalid configuration.
type ConfigurableModule interface {
	LoadConfig() error
}
