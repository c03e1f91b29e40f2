package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestListener_LockFlow(t *testing.T) {
	env := newTestEnv(t)
	env.commands.Dispatch(env.alice, []string{"lock"})

	resp := env.clickChest(env.alice)

	if !resp.Cancelled() {
		t.Error("expected the lock click to be cancelled")
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Tone != ToneSuccess || resp.Messages[0].Text != msgLocked {
		t.Errorf("unexpected messages: %+v", resp.Messages)
	}
}

func TestListener_LockNotProtectable(t *testing.T) {
	env := newTestEnv(t)
	env.commands.Dispatch(env.alice, []string{"lock"})

	resp := env.listener.OnWorldInteract(InteractEvent{
		Actor:     env.alice.ID,
		ActorName: env.alice.Name,
		Location:  chestLocation,
		BlockKind: "minecraft:stone",
	})

	if len(resp.Messages) != 1 || resp.Messages[0].Text != msgNotProtectable {
		t.Errorf("unexpected messages: %+v", resp.Messages)
	}
	if resp.Messages[0].Tone != ToneError {
		t.Error("expected an error tone")
	}
}

func TestListener_AlreadyLocked(t *testing.T) {
	env := newTestEnv(t)
	env.lockChest(t, env.alice)
	env.commands.Dispatch(env.bob, []string{"lock"})

	resp := env.clickChest(env.bob)

	if texts(resp.Messages) != msgAlreadyLocked {
		t.Errorf("expected %q, got %q", msgAlreadyLocked, texts(resp.Messages))
	}
}

func TestListener_PassiveAccess(t *testing.T) {
	env := newTestEnv(t)
	env.lockChest(t, env.alice)

	t.Run("stranger is told the owner", func(t *testing.T) {
		resp := env.clickChest(env.bob)

		if !resp.Cancelled() {
			t.Error("expected the click to be cancelled")
		}
		want := fmt.Sprintf(msgLockedBy, "Alice")
		if texts(resp.Messages) != want {
			t.Errorf("expected %q, got %q", want, texts(resp.Messages))
		}
	})

	t.Run("owner passes silently", func(t *testing.T) {
		resp := env.clickChest(env.alice)

		if resp.Cancelled() || len(resp.Messages) != 0 {
			t.Errorf("expected silent allow, got %+v", resp)
		}
	})

	t.Run("bypass passes silently", func(t *testing.T) {
		resp := env.listener.OnWorldInteract(InteractEvent{
			Actor:     env.bob.ID,
			Location:  chestLocation,
			BlockKind: "minecraft:chest",
			Bypass:    true,
		})

		if resp.Cancelled() {
			t.Error("expected bypass to be allowed")
		}
	})
}

func TestListener_TrustMessages(t *testing.T) {
	env := newTestEnv(t)
	env.lockChest(t, env.alice)

	env.commands.Dispatch(env.alice, []string{"trust", "bob"})
	if got := texts(env.clickChest(env.alice).Messages); got != msgTrustAdded {
		t.Errorf("expected %q, got %q", msgTrustAdded, got)
	}

	if resp := env.clickChest(env.bob); resp.Cancelled() {
		t.Error("expected trusted player to be allowed")
	}

	env.commands.Dispatch(env.alice, []string{"untrust", "Bob"})
	if got := texts(env.clickChest(env.alice).Messages); got != msgTrustRemoved {
		t.Errorf("expected %q, got %q", msgTrustRemoved, got)
	}

	env.commands.Dispatch(env.bob, []string{"trust", "alice"})
	if got := texts(env.clickChest(env.bob).Messages); got != msgOnlyOwnerTrust {
		t.Errorf("expected %q, got %q", msgOnlyOwnerTrust, got)
	}
}

func TestListener_UnlockMessages(t *testing.T) {
	env := newTestEnv(t)

	env.commands.Dispatch(env.alice, []string{"unlock"})
	if got := texts(env.clickChest(env.alice).Messages); got != msgNotLocked {
		t.Errorf("expected %q, got %q", msgNotLocked, got)
	}

	env.lockChest(t, env.alice)

	env.commands.Dispatch(env.bob, []string{"unlock"})
	if got := texts(env.clickChest(env.bob).Messages); got != msgOnlyOwnerUnlock {
		t.Errorf("expected %q, got %q", msgOnlyOwnerUnlock, got)
	}

	env.commands.Dispatch(env.alice, []string{"unlock"})
	if got := texts(env.clickChest(env.alice).Messages); got != msgUnlocked {
		t.Errorf("expected %q, got %q", msgUnlocked, got)
	}
}

func TestListener_OnBlockDestroy(t *testing.T) {
	env := newTestEnv(t)
	env.lockChest(t, env.alice)

	resp := env.listener.OnBlockDestroy(BreakEvent{Actor: env.bob.ID, Location: chestLocation})
	if !resp.Cancelled() {
		t.Fatal("expected stranger break to be cancelled")
	}
	if want := fmt.Sprintf(msgCannotBreak, "Alice"); texts(resp.Messages) != want {
		t.Errorf("expected %q, got %q", want, texts(resp.Messages))
	}

	resp = env.listener.OnBlockDestroy(BreakEvent{Actor: env.alice.ID, Location: chestLocation})
	if resp.Cancelled() {
		t.Fatal("expected owner break to be allowed")
	}
	if texts(resp.Messages) != msgProtectionRemoved {
		t.Errorf("expected %q, got %q", msgProtectionRemoved, texts(resp.Messages))
	}
	if _, ok := env.registry.Get(chestLocation); ok {
		t.Error("expected protection to be cleared")
	}

	resp = env.listener.OnBlockDestroy(BreakEvent{Actor: env.bob.ID, Location: chestLocation})
	if resp.Cancelled() || len(resp.Messages) != 0 {
		t.Errorf("expected silent allow for an unlocked block, got %+v", resp)
	}
}

func TestListener_OnActorDisconnect(t *testing.T) {
	env := newTestEnv(t)
	env.commands.Dispatch(env.alice, []string{"lock"})

	env.listener.OnActorDisconnect(env.alice.ID)

	if resp := env.clickChest(env.alice); resp.Cancelled() {
		t.Error("expected the pending lock to be discarded")
	}
	if env.registry.Count() != 0 {
		t.Error("expected no protection")
	}
	if _, ok := env.players.Lookup("alice"); ok {
		t.Error("expected player to be removed from the directory")
	}
}

func TestListener_NilPresence(t *testing.T) {
	env := newTestEnv(t)
	listener := NewListener(env.listener.interactions, nil)

	// Must not panic
	listener.OnActorJoin(uuid.New(), "Carol")
	listener.OnActorDisconnect(uuid.New())
}
