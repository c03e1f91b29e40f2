package usecases

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

var testLocation = domain.NewLocation("world", 0, 10, 64, -5)

type mockProtectionRepository struct {
	mu          sync.Mutex
	protections map[domain.LocationKey]*domain.Protection
}

func newMockProtectionRepository() *mockProtectionRepository {
	return &mockProtectionRepository{
		protections: make(map[domain.LocationKey]*domain.Protection),
	}
}

func (m *mockProtectionRepository) Get(key domain.LocationKey) (*domain.Protection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.protections[key]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (m *mockProtectionRepository) Insert(p *domain.Protection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.protections[p.Key()]; ok {
		return domain.ErrAlreadyProtected
	}
	m.protections[p.Key()] = p.Clone()
	return nil
}

func (m *mockProtectionRepository) DeleteIf(
	key domain.LocationKey,
	check func(*domain.Protection) error,
) (*domain.Protection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.protections[key]
	if !ok {
		return nil, domain.ErrNotProtected
	}
	if check != nil {
		if err := check(p.Clone()); err != nil {
			return nil, err
		}
	}
	delete(m.protections, key)
	return p, nil
}

func (m *mockProtectionRepository) Update(
	key domain.LocationKey,
	fn func(*domain.Protection),
) (*domain.Protection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.protections[key]
	if !ok {
		return nil, domain.ErrNotProtected
	}
	fn(p)
	return p.Clone(), nil
}

func (m *mockProtectionRepository) All() []*domain.Protection {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Protection, 0, len(m.protections))
	for _, p := range m.protections {
		result = append(result, p.Clone())
	}
	return result
}

func (m *mockProtectionRepository) Replace(protections []*domain.Protection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.protections = make(map[domain.LocationKey]*domain.Protection, len(protections))
	for _, p := range protections {
		m.protections[p.Key()] = p.Clone()
	}
}

func (m *mockProtectionRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.protections)
}

// mockSnapshotStore is a test double for ports.SnapshotStore.
// saved holds the most recent snapshot.
type mockSnapshotStore struct {
	mu      sync.Mutex
	saved   []*domain.Protection
	saves   int
	loadErr error
	saveErr error
}

func (m *mockSnapshotStore) Load() ([]*domain.Protection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved, nil
}

func (m *mockSnapshotStore) Save(protections []*domain.Protection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = protections
	return nil
}

func (m *mockSnapshotStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

type mockIntentRepository struct {
	mu      sync.Mutex
	intents map[domain.PlayerID]domain.Intent
}

func newMockIntentRepository() *mockIntentRepository {
	return &mockIntentRepository{intents: make(map[domain.PlayerID]domain.Intent)}
}

func (m *mockIntentRepository) Set(player domain.PlayerID, intent domain.Intent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intents[player] = intent
}

func (m *mockIntentRepository) Get(player domain.PlayerID) domain.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intents[player]
}

func (m *mockIntentRepository) Take(player domain.PlayerID) domain.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	intent := m.intents[player]
	delete(m.intents, player)
	return intent
}

func (m *mockIntentRepository) Delete(player domain.PlayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.intents, player)
}

func (m *mockIntentRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.intents)
}

type mockCatalog struct {
	protectable bool
}

func (m *mockCatalog) IsProtectable(string) bool {
	return m.protectable
}

type mockPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *mockPublisher) Publish(event domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, e := range m.events {
		types[i] = e.EventType()
	}
	return types
}

func newTestRegistry() (*Registry, *mockSnapshotStore) {
	store := &mockSnapshotStore{}
	registry := NewRegistry(newMockProtectionRepository(), store)
	registry.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return registry, store
}

type interactionFixture struct {
	service   *InteractionService
	registry  *Registry
	store     *mockSnapshotStore
	intents   *mockIntentRepository
	catalog   *mockCatalog
	publisher *mockPublisher
	owner     domain.PlayerID
	friend    domain.PlayerID
	stranger  domain.PlayerID
}

func newInteractionFixture() *interactionFixture {
	registry, store := newTestRegistry()
	f := &interactionFixture{
		registry:  registry,
		store:     store,
		intents:   newMockIntentRepository(),
		catalog:   &mockCatalog{protectable: true},
		publisher: &mockPublisher{},
		owner:     uuid.New(),
		friend:    uuid.New(),
		stranger:  uuid.New(),
	}
	f.service = NewInteractionService(f.registry, f.intents, f.catalog, f.publisher)
	return f
}

// click simulates actor clicking testLocation.
func (f *interactionFixture) click(actor domain.PlayerID) InteractOutput {
	return f.service.Interact(InteractInput{
		Actor:     actor,
		ActorName: "player",
		Location:  testLocation,
		BlockKind: "minecraft:chest",
	})
}

// lockAsOwner locks testLocation for f.owner directly through the registry.
func (f *interactionFixture) lockAsOwner() {
	if _, err := f.registry.Protect(testLocation, f.owner, "Owner"); err != nil {
		panic(err)
	}
}
