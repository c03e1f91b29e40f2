package game

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/application/usecases"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/infrastructure"
)

var chestLocation = domain.NewLocation("world", 0, 10, 64, -5)

type testEnv struct {
	registry *usecases.Registry
	players  *infrastructure.OnlinePlayers
	listener *Listener
	commands *CommandHandlers
	alice    Sender
	bob      Sender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := infrastructure.NewFileStore(filepath.Join(t.TempDir(), "protected_blocks.json"))
	registry := usecases.NewRegistry(infrastructure.NewMemoryRepository(), store)
	players := infrastructure.NewOnlinePlayers()
	interactions := usecases.NewInteractionService(
		registry,
		infrastructure.NewMemoryIntentStore(),
		domain.DefaultBlockCatalog(),
		nil,
	)

	env := &testEnv{
		registry: registry,
		players:  players,
		listener: NewListener(interactions, players),
		commands: NewCommandHandlers(interactions, registry, players, 3),
		alice:    Sender{ID: uuid.New(), Name: "Alice", IsPlayer: true},
		bob:      Sender{ID: uuid.New(), Name: "Bob", IsPlayer: true},
	}
	env.listener.OnActorJoin(env.alice.ID, env.alice.Name)
	env.listener.OnActorJoin(env.bob.ID, env.bob.Name)
	return env
}

func (e *testEnv) clickChest(actor Sender) Response {
	return e.listener.OnWorldInteract(InteractEvent{
		Actor:     actor.ID,
		ActorName: actor.Name,
		Location:  chestLocation,
		BlockKind: "minecraft:chest",
	})
}

func (e *testEnv) lockChest(t *testing.T, owner Sender) {
	t.Helper()
	e.commands.Dispatch(owner, []string{"lock"})
	if resp := e.clickChest(owner); len(resp.Messages) == 0 || resp.Messages[0].Text != msgLocked {
		t.Fatalf("failed to lock chest: %+v", resp.Messages)
	}
}

func texts(msgs []Message) string {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.Text
	}
	return strings.Join(lines, "\n")
}
