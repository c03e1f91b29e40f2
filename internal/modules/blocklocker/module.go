package blocklocker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/blocklocker/internal/bot"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/usecases"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/infrastructure"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/presentation/discord"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/presentation/game"
)

var defaultModule = &BlockLockerModule{}

func init() {
	bot.Register(defaultModule)
}

// Default returns the registered module. Game hosts forward world events to
// its Listener and player commands to its GameCommands once the bot has started.
func Default() *BlockLockerModule {
	return defaultModule
}

// Compile-time interface checks.
var (
	_ bot.Module             = (*BlockLockerModule)(nil)
	_ bot.ConfigurableModule = (*BlockLockerModule)(nil)
)

// BlockLockerModule provides block protection.
type BlockLockerModule struct {
	config *Config

	registry        *usecases.Registry
	catalog         *infrastructure.LiveCatalog
	players         *infrastructure.OnlinePlayers
	eventBus        *infrastructure.ChannelEventBus
	listener        *game.Listener
	gameCommands    *game.CommandHandlers
	commandHandlers *discord.CommandHandlers

	// Context for the catalog watcher
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Name returns the module name.
func (m *BlockLockerModule) Name() string {
	return "blocklocker"
}

// Commands returns the slash commands for this module.
func (m *BlockLockerModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *BlockLockerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		discord.CommandName: m.commandHandlers.HandleBlockLocker,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *BlockLockerModule) EventHandlers() []bot.EventHandler {
	return nil
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *BlockLockerModule) LoadConfig() error {
	cfg, err := ParseConfig()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *BlockLockerModule) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		if err := m.LoadConfig(); err != nil {
			return err
		}
	}
	cfg := m.config

	// Create infrastructure
	repo := infrastructure.NewMemoryRepository()
	store := infrastructure.NewFileStore(cfg.DataFile)
	m.registry = usecases.NewRegistry(repo, store)
	m.registry.Load()

	catalog, err := infrastructure.NewLiveCatalog(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("failed to load block catalog: %w", err)
	}
	m.catalog = catalog

	parent := deps.Context
	if parent == nil {
		parent = context.Background()
	}
	m.ctx, m.cancel = context.WithCancel(parent)
	if cfg.WatchCatalog && cfg.CatalogFile != "" {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			if err := m.catalog.Watch(m.ctx); err != nil {
				slog.Error("stopped watching block catalog", "path", cfg.CatalogFile, "error", err)
			}
		}()
	}

	m.eventBus = infrastructure.NewChannelEventBus(infrastructure.DefaultEventBufferSize)
	m.players = infrastructure.NewOnlinePlayers()

	if cfg.AuditChannelID != 0 {
		if deps.Session == nil {
			slog.Warn("blocklocker module initialized without session, audit notifications disabled")
		} else {
			notifier := infrastructure.NewNotifier(deps.Session, cfg.AuditChannelID, m.players)
			m.eventBus.Subscribe(notifier.HandleEvent)
		}
	}

	// Create services
	intents := infrastructure.NewMemoryIntentStore()
	interactions := usecases.NewInteractionService(
		m.registry,
		intents,
		m.catalog,
		m.eventBus,
	)

	// Create presentation handlers
	m.listener = game.NewListener(interactions, m.players)
	m.gameCommands = game.NewCommandHandlers(interactions, m.registry, m.players, cfg.ListLimit)
	m.commandHandlers = discord.NewCommandHandlers(m.registry, m.players, intents, cfg.ListLimit)

	slog.Info("blocklocker module initialized",
		"data_file", cfg.DataFile,
		"protections", m.registry.Count(),
		"catalog_patterns", len(m.catalog.Patterns()),
		"audit", cfg.AuditChannelID != 0 && deps.Session != nil,
	)

	return nil
}

// Listener returns the world event handlers.
func (m *BlockLockerModule) Listener() *game.Listener {
	return m.listener
}

// GameCommands returns the in-game command dispatcher.
func (m *BlockLockerModule) GameCommands() *game.CommandHandlers {
	return m.gameCommands
}

// Registry returns the protection registry.
func (m *BlockLockerModule) Registry() *usecases.Registry {
	return m.registry
}

// Shutdown stops the catalog watcher and the event bus, then writes a final snapshot.
func (m *BlockLockerModule) Shutdown() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()

	if m.eventBus != nil {
		m.eventBus.Close()
	}

	if m.registry != nil {
		if err := m.registry.Flush(); err != nil {
			return fmt.Errorf("failed to save protection data: %w", err)
		}
	}

	return nil
}
