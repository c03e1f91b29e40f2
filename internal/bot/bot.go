package bot

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bwmarrin/discordgo"
)

// Bot hosts the modules and, unless headless, their Discord operator console.
type Bot struct {
	config   *Config
	session  *discordgo.Session
	modules  []Module
	handlers map[string]InteractionHandler

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		config:   cfg,
		modules:  make([]Module, 0),
		handlers: make(map[string]InteractionHandler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Start initializes the modules and, when a token is configured, connects to
// Discord and registers the module commands.
func (b *Bot) Start() error {
	if b.config.Headless() {
		if err := b.initModules(); err != nil {
			return fmt.Errorf("failed to initialize modules: %w", err)
		}
		slog.Info("started without discord connection")
		return nil
	}

	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	b.session = session

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	if err := b.buildHandlerMap(); err != nil {
		return err
	}

	b.session.AddHandler(b.handleInteraction)
	b.registerEventHandlers()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"guild_id", b.config.GuildID,
	)

	return nil
}

// Stop cancels the module context, shuts modules down in reverse
// initialization order, then closes the Discord session.
func (b *Bot) Stop() error {
	b.cancel()

	for _, mod := range slices.Backward(b.modules) {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// initModules loads module configuration and initializes every loaded module.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Context: b.ctx,
		Config:  b.config,
		Session: b.session,
	}

	names := make([]string, 0, len(b.modules))
	for _, mod := range b.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
		names = append(names, mod.Name())
	}

	slog.Info("initialized modules", "modules", names, "headless", deps.Session == nil)
	return nil
}

// buildHandlerMap builds the command name to handler mapping.
// Two modules claiming the same command is a configuration error.
func (b *Bot) buildHandlerMap() error {
	owners := make(map[string]string)
	for _, mod := range b.modules {
		for name, handler := range mod.CommandHandlers() {
			if owner, taken := owners[name]; taken {
				return fmt.Errorf("command %s is handled by both %s and %s", name, owner, mod.Name())
			}
			owners[name] = mod.Name()
			b.handlers[name] = handler
		}
	}
	return nil
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

// collectCommands gathers all commands from loaded modules.
func (b *Bot) collectCommands() []*discordgo.ApplicationCommand {
	var commands []*discordgo.ApplicationCommand
	for _, mod := range b.modules {
		commands = append(commands, mod.Commands()...)
	}
	return commands
}

// commandScope returns the guild commands are registered in.
// An empty string registers them globally.
func (b *Bot) commandScope() string {
	if b.config.GuildID == 0 {
		return ""
	}
	return b.config.GuildID.String()
}

// registerCommands registers all module commands with Discord.
func (b *Bot) registerCommands() error {
	scope := b.commandScope()

	for _, cmd := range b.collectCommands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, scope, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		slog.Debug("registered command", "command", cmd.Name, "guild_id", scope)
	}

	return nil
}

// handleInteraction routes incoming interactions to the appropriate handler.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.dispatch(s, i, NewDiscordResponder(s, i.Interaction))
}

func (b *Bot) dispatch(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) {
	cmdName := i.ApplicationCommandData().Name
	handler, ok := b.handlers[cmdName]
	if !ok {
		slog.Warn("found no handler for command", "command", cmdName)
		b.respond(r, NoticeEmbed("Unknown Command", "This command is not recognized."))
		return
	}

	if err := handler(s, i, r); err != nil {
		slog.Error("failed to handle command", "command", cmdName, "error", err)
		b.respond(r, ErrorEmbed("An error occurred while processing your command."))
	}
}

func (b *Bot) respond(r Responder, embed *discordgo.MessageEmbed) {
	if err := RespondEmbed(r, embed); err != nil {
		slog.Error("failed to send embed response", "error", err)
	}
}
