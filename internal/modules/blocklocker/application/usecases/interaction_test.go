package usecases

import (
	"errors"
	"slices"
	"testing"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

func TestInteractionService_LockMode(t *testing.T) {
	f := newInteractionFixture()
	f.service.EnableLock(f.owner)

	out := f.click(f.owner)

	if out.Decision != DecisionCancel {
		t.Error("expected the click to be cancelled")
	}
	if out.Action != ActionLocked || out.Err != nil {
		t.Fatalf("expected ActionLocked, got %v (err %v)", out.Action, out.Err)
	}
	if !f.registry.IsOwner(testLocation, f.owner) {
		t.Error("expected the actor to own the block")
	}
	if !f.service.Mode(f.owner).IsIdle() {
		t.Error("expected lock mode to be consumed")
	}
	if got := f.publisher.types(); !slices.Equal(got, []string{"block_locked"}) {
		t.Errorf("expected [block_locked], got %v", got)
	}
}

func TestInteractionService_LockMode_NotProtectable(t *testing.T) {
	f := newInteractionFixture()
	f.catalog.protectable = false
	f.service.EnableLock(f.owner)

	out := f.click(f.owner)

	if !errors.Is(out.Err, domain.ErrNotProtectable) {
		t.Fatalf("expected ErrNotProtectable, got %v", out.Err)
	}
	if f.registry.Count() != 0 {
		t.Error("expected no protection to be created")
	}
	if !f.service.Mode(f.owner).IsIdle() {
		t.Error("expected lock mode to be consumed after a failure")
	}

	// The next click is a passive check, not a retry
	f.catalog.protectable = true
	if out := f.click(f.owner); out.Mode != domain.ModeNone || out.Decision != DecisionAllow {
		t.Errorf("expected passive allow, got mode %v decision %v", out.Mode, out.Decision)
	}
	if f.registry.Count() != 0 {
		t.Error("expected lock mode not to retry")
	}
}

func TestInteractionService_LockMode_AlreadyProtected(t *testing.T) {
	f := newInteractionFixture()
	f.lockAsOwner()
	f.service.EnableLock(f.stranger)

	out := f.click(f.stranger)

	if !errors.Is(out.Err, domain.ErrAlreadyProtected) {
		t.Fatalf("expected ErrAlreadyProtected, got %v", out.Err)
	}
	if out.Protection == nil || out.Protection.Owner() != f.owner {
		t.Error("expected the existing protection to be reported")
	}
	if !f.service.Mode(f.stranger).IsIdle() {
		t.Error("expected lock mode to be consumed")
	}
}

func TestInteractionService_UnlockMode(t *testing.T) {
	t.Run("owner unlocks", func(t *testing.T) {
		f := newInteractionFixture()
		f.lockAsOwner()
		f.service.EnableUnlock(f.owner)

		out := f.click(f.owner)

		if out.Action != ActionUnlocked || out.Decision != DecisionCancel {
			t.Fatalf("expected cancelled ActionUnlocked, got %v/%v (err %v)", out.Decision, out.Action, out.Err)
		}
		if _, ok := f.registry.Get(testLocation); ok {
			t.Error("expected protection to be removed")
		}
		if got := f.publisher.types(); !slices.Equal(got, []string{"block_unlocked"}) {
			t.Errorf("expected [block_unlocked], got %v", got)
		}
	})

	t.Run("stranger is refused", func(t *testing.T) {
		f := newInteractionFixture()
		f.lockAsOwner()
		f.service.EnableUnlock(f.stranger)

		out := f.click(f.stranger)

		if !errors.Is(out.Err, domain.ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", out.Err)
		}
		if _, ok := f.registry.Get(testLocation); !ok {
			t.Error("expected protection to remain")
		}
		if !f.service.Mode(f.stranger).IsIdle() {
			t.Error("expected unlock mode to be consumed")
		}
	})

	t.Run("unlocked block", func(t *testing.T) {
		f := newInteractionFixture()
		f.service.EnableUnlock(f.owner)

		out := f.click(f.owner)

		if !errors.Is(out.Err, domain.ErrNotProtected) {
			t.Fatalf("expected ErrNotProtected, got %v", out.Err)
		}
	})
}

func TestInteractionService_TrustToggle(t *testing.T) {
	f := newInteractionFixture()
	f.lockAsOwner()

	want := []struct {
		action  Action
		trusted bool
	}{
		{action: ActionTrustGranted, trusted: true},
		{action: ActionTrustRevoked, trusted: false},
		{action: ActionTrustGranted, trusted: true},
	}

	for i, step := range want {
		if err := f.service.EnableTrust(f.owner, f.friend); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}

		out := f.click(f.owner)

		if out.Action != step.action {
			t.Fatalf("step %d: expected action %v, got %v (err %v)", i, step.action, out.Action, out.Err)
		}
		if out.Target != f.friend {
			t.Errorf("step %d: expected target to be reported", i)
		}
		p, _ := f.registry.Get(testLocation)
		if p.IsTrusted(f.friend) != step.trusted {
			t.Errorf("step %d: expected trusted=%v", i, step.trusted)
		}
		if out.Protection.IsTrusted(f.friend) != step.trusted {
			t.Errorf("step %d: expected reported protection to reflect the change", i)
		}
	}

	want2 := []string{"trust_granted", "trust_revoked", "trust_granted"}
	if got := f.publisher.types(); !slices.Equal(got, want2) {
		t.Errorf("expected %v, got %v", want2, got)
	}
}

func TestInteractionService_TrustMode_Failures(t *testing.T) {
	t.Run("not owner", func(t *testing.T) {
		f := newInteractionFixture()
		f.lockAsOwner()
		_ = f.service.EnableTrust(f.stranger, f.friend)

		out := f.click(f.stranger)

		if !errors.Is(out.Err, domain.ErrNotOwner) || out.Mode != domain.ModeTrust {
			t.Fatalf("expected ErrNotOwner in trust mode, got %v in %v", out.Err, out.Mode)
		}
		p, _ := f.registry.Get(testLocation)
		if p.IsTrusted(f.friend) {
			t.Error("expected trusted set to be unchanged")
		}
	})

	t.Run("not protected", func(t *testing.T) {
		f := newInteractionFixture()
		_ = f.service.EnableTrust(f.owner, f.friend)

		out := f.click(f.owner)

		if !errors.Is(out.Err, domain.ErrNotProtected) {
			t.Fatalf("expected ErrNotProtected, got %v", out.Err)
		}
		if !f.service.Mode(f.owner).IsIdle() {
			t.Error("expected trust mode to be consumed")
		}
	})

	t.Run("self trust", func(t *testing.T) {
		f := newInteractionFixture()

		if err := f.service.EnableTrust(f.owner, f.owner); !errors.Is(err, domain.ErrSelfTrust) {
			t.Fatalf("expected ErrSelfTrust, got %v", err)
		}
		if !f.service.Mode(f.owner).IsIdle() {
			t.Error("expected no mode after a rejected self trust")
		}
	})
}

func TestInteractionService_ModesAreMutuallyExclusive(t *testing.T) {
	f := newInteractionFixture()
	f.lockAsOwner()

	f.service.EnableLock(f.owner)
	_ = f.service.EnableTrust(f.owner, f.friend)

	if got := f.service.Mode(f.owner).Mode(); got != domain.ModeTrust {
		t.Fatalf("expected trust mode, got %v", got)
	}

	out := f.click(f.owner)
	if out.Mode != domain.ModeTrust || out.Action != ActionTrustGranted {
		t.Errorf("expected a trust toggle, got %v/%v", out.Mode, out.Action)
	}
}

func TestInteractionService_Cleanup(t *testing.T) {
	f := newInteractionFixture()
	f.service.EnableLock(f.owner)
	f.service.Cleanup(f.owner)

	out := f.click(f.owner)

	if out.Mode != domain.ModeNone || out.Decision != DecisionAllow {
		t.Errorf("expected passive allow, got mode %v decision %v", out.Mode, out.Decision)
	}
	if f.registry.Count() != 0 {
		t.Error("expected no lock after cleanup")
	}
}

func TestInteractionService_PassiveAccess(t *testing.T) {
	f := newInteractionFixture()
	f.lockAsOwner()
	_ = f.registry.AddTrusted(testLocation, f.friend)

	tests := []struct {
		name   string
		actor  domain.PlayerID
		bypass bool
		want   Decision
	}{
		{name: "owner", actor: f.owner, want: DecisionAllow},
		{name: "trusted", actor: f.friend, want: DecisionAllow},
		{name: "stranger", actor: f.stranger, want: DecisionCancel},
		{name: "stranger with bypass", actor: f.stranger, bypass: true, want: DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := f.service.Interact(InteractInput{
				Actor:     tt.actor,
				Location:  testLocation,
				BlockKind: "minecraft:chest",
				Bypass:    tt.bypass,
			})
			if out.Decision != tt.want {
				t.Errorf("expected %v, got %v", tt.want, out.Decision)
			}
		})
	}

	if got := f.publisher.types(); !slices.Equal(got, []string{"access_denied"}) {
		t.Errorf("expected one access_denied event, got %v", got)
	}
}

func TestInteractionService_PassiveAccess_Unprotected(t *testing.T) {
	f := newInteractionFixture()

	out := f.click(f.stranger)

	if out.Decision != DecisionAllow || out.Protection != nil {
		t.Errorf("expected allow without protection, got %v", out.Decision)
	}
}

func TestInteractionService_Break(t *testing.T) {
	t.Run("owner break clears protection", func(t *testing.T) {
		f := newInteractionFixture()
		f.lockAsOwner()

		out := f.service.Break(BreakInput{Actor: f.owner, Location: testLocation})

		if out.Decision != DecisionAllow || out.Action != ActionProtectionBroken {
			t.Fatalf("expected allowed ActionProtectionBroken, got %v/%v", out.Decision, out.Action)
		}
		if _, ok := f.registry.Get(testLocation); ok {
			t.Error("expected protection to be cleared")
		}
	})

	t.Run("stranger break is cancelled", func(t *testing.T) {
		f := newInteractionFixture()
		f.lockAsOwner()
		_ = f.registry.AddTrusted(testLocation, f.friend)

		for _, actor := range []domain.PlayerID{f.stranger, f.friend} {
			out := f.service.Break(BreakInput{Actor: actor, Location: testLocation})
			if out.Decision != DecisionCancel || out.Action != ActionBreakDenied {
				t.Errorf("expected cancelled ActionBreakDenied, got %v/%v", out.Decision, out.Action)
			}
		}

		p, ok := f.registry.Get(testLocation)
		if !ok || p.Owner() != f.owner || !p.IsTrusted(f.friend) {
			t.Error("expected protection to be unchanged")
		}
	})

	t.Run("bypass break clears protection", func(t *testing.T) {
		f := newInteractionFixture()
		f.lockAsOwner()

		out := f.service.Break(BreakInput{Actor: f.stranger, Location: testLocation, Bypass: true})

		if out.Decision != DecisionAllow {
			t.Fatalf("expected allow, got %v", out.Decision)
		}
		if _, ok := f.registry.Get(testLocation); ok {
			t.Error("expected protection to be cleared")
		}
		last := f.publisher.events[len(f.publisher.events)-1].(domain.ProtectionBrokenEvent)
		if !last.Bypass {
			t.Error("expected the event to be marked as bypass")
		}
	})

	t.Run("unprotected block", func(t *testing.T) {
		f := newInteractionFixture()

		out := f.service.Break(BreakInput{Actor: f.stranger, Location: testLocation})

		if out.Decision != DecisionAllow || out.Action != ActionNone {
			t.Errorf("expected plain allow, got %v/%v", out.Decision, out.Action)
		}
		if len(f.publisher.events) != 0 {
			t.Error("expected no events")
		}
	})
}

func TestInteractionService_NilPublisher(t *testing.T) {
	registry, _ := newTestRegistry()
	service := NewInteractionService(registry, newMockIntentRepository(), &mockCatalog{protectable: true}, nil)
	f := newInteractionFixture()

	service.EnableLock(f.owner)
	out := service.Interact(InteractInput{Actor: f.owner, Location: testLocation, BlockKind: "minecraft:chest"})

	if out.Action != ActionLocked {
		t.Errorf("expected lock to succeed without a publisher, got %v", out.Action)
	}
}
