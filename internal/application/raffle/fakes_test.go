package raffle

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// memoryStore backs the fake repositories. The transaction scope snapshots it
// before each unit of work so a failed batch rolls back like a real database
// transaction would.
type memoryStore struct {
	mu            sync.Mutex
	raffles       map[uuid.UUID]*raffle.Raffle
	distributions []raffle.Distribution
	members       map[uuid.UUID]*catalog.Member
	items         map[uuid.UUID]*catalog.Item
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		raffles: make(map[uuid.UUID]*raffle.Raffle),
		members: make(map[uuid.UUID]*catalog.Member),
		items:   make(map[uuid.UUID]*catalog.Item),
	}
}

func cloneRaffle(r *raffle.Raffle) *raffle.Raffle {
	out := *r
	out.Roster = append([]raffle.RosterEntry(nil), r.Roster...)
	out.Stock = append([]raffle.StockEntry(nil), r.Stock...)
	return &out
}

type storeSnapshot struct {
	raffles       map[uuid.UUID]*raffle.Raffle
	distributions []raffle.Distribution
}

func (s *memoryStore) snapshot() storeSnapshot {
	raffles := make(map[uuid.UUID]*raffle.Raffle, len(s.raffles))
	for id, r := range s.raffles {
		raffles[id] = cloneRaffle(r)
	}
	return storeSnapshot{
		raffles:       raffles,
		distributions: append([]raffle.Distribution(nil), s.distributions...),
	}
}

func (s *memoryStore) restore(snap storeSnapshot) {
	s.raffles = snap.raffles
	s.distributions = snap.distributions
}

// ---------------------------------------------------------------------------

type fakeRaffleRepository struct {
	store *memoryStore
}

func (f *fakeRaffleRepository) FindByID(_ context.Context, id uuid.UUID) (*raffle.Raffle, error) {
	r, ok := f.store.raffles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneRaffle(r), nil
}

func (f *fakeRaffleRepository) FindAll(_ context.Context, _ shared.Filter) ([]raffle.Raffle, error) {
	out := make([]raffle.Raffle, 0, len(f.store.raffles))
	for _, r := range f.store.raffles {
		out = append(out, *cloneRaffle(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRaffleRepository) Save(_ context.Context, r *raffle.Raffle) error {
	f.store.raffles[r.ID] = cloneRaffle(r)
	return nil
}

func (f *fakeRaffleRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store.raffles, id)
	return nil
}

func (f *fakeRaffleRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store.raffles)), nil
}

func (f *fakeRaffleRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, r := range f.store.raffles {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------

type fakeStockRepository struct {
	store *memoryStore
}

func (f *fakeStockRepository) FindFirstAvailableForUpdate(_ context.Context, raffleID uuid.UUID) (*raffle.StockEntry, error) {
	r, ok := f.store.raffles[raffleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	pick := r.FirstAvailableStock()
	if pick == nil {
		return nil, shared.ErrNotFound
	}
	entry := *pick
	return &entry, nil
}

func (f *fakeStockRepository) FindForUpdate(_ context.Context, raffleID, itemID uuid.UUID) (*raffle.StockEntry, error) {
	r, ok := f.store.raffles[raffleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	stock := r.StockFor(itemID)
	if stock == nil {
		return nil, shared.ErrNotFound
	}
	entry := *stock
	return &entry, nil
}

func (f *fakeStockRepository) FindByRaffle(_ context.Context, raffleID uuid.UUID) ([]raffle.StockEntry, error) {
	r, ok := f.store.raffles[raffleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := append([]raffle.StockEntry(nil), r.Stock...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStockRepository) Save(_ context.Context, entry *raffle.StockEntry) error {
	r, ok := f.store.raffles[entry.RaffleID]
	if !ok {
		return shared.ErrNotFound
	}
	stock := r.StockFor(entry.ItemID)
	if stock == nil {
		return shared.ErrNotFound
	}
	*stock = *entry
	return nil
}

// ---------------------------------------------------------------------------

type fakeDistributionRepository struct {
	store *memoryStore
}

func (f *fakeDistributionRepository) Create(_ context.Context, d *raffle.Distribution) error {
	f.store.distributions = append(f.store.distributions, *d)
	return nil
}

func (f *fakeDistributionRepository) FindByID(_ context.Context, id uuid.UUID) (*raffle.Distribution, error) {
	for i := range f.store.distributions {
		if f.store.distributions[i].ID == id {
			d := f.store.distributions[i]
			return &d, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeDistributionRepository) FindAll(_ context.Context, _ shared.Filter) ([]raffle.Distribution, error) {
	return append([]raffle.Distribution(nil), f.store.distributions...), nil
}

func (f *fakeDistributionRepository) FindByRaffle(_ context.Context, raffleID uuid.UUID) ([]raffle.Distribution, error) {
	var out []raffle.Distribution
	for i := range f.store.distributions {
		if f.store.distributions[i].RaffleID == raffleID {
			out = append(out, f.store.distributions[i])
		}
	}
	return out, nil
}

func (f *fakeDistributionRepository) FindByRaffleAndMember(_ context.Context, raffleID, memberID uuid.UUID) ([]raffle.Distribution, error) {
	var out []raffle.Distribution
	for i := range f.store.distributions {
		d := &f.store.distributions[i]
		if d.RaffleID == raffleID && d.MemberID == memberID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDistributionRepository) FindByRaffleAndItem(_ context.Context, raffleID, itemID uuid.UUID) ([]raffle.Distribution, error) {
	var out []raffle.Distribution
	for i := range f.store.distributions {
		d := &f.store.distributions[i]
		if d.RaffleID == raffleID && d.ItemID == itemID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDistributionRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store.distributions)), nil
}

func (f *fakeDistributionRepository) ExistsForMembers(_ context.Context, raffleID uuid.UUID, memberIDs []uuid.UUID) (bool, error) {
	want := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		want[id] = true
	}
	for i := range f.store.distributions {
		d := &f.store.distributions[i]
		if d.RaffleID == raffleID && want[d.MemberID] {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDistributionRepository) ExistsForRaffle(_ context.Context, raffleID uuid.UUID) (bool, error) {
	for i := range f.store.distributions {
		if f.store.distributions[i].RaffleID == raffleID {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------

type fakeMemberRepository struct {
	store *memoryStore
}

func (f *fakeMemberRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Member, error) {
	m, ok := f.store.members[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (f *fakeMemberRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Member, error) {
	var out []catalog.Member
	for _, id := range ids {
		if m, ok := f.store.members[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepository) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Member, error) {
	out := make([]catalog.Member, 0, len(f.store.members))
	for _, m := range f.store.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepository) Save(_ context.Context, m *catalog.Member) error {
	out := *m
	f.store.members[m.ID] = &out
	return nil
}

func (f *fakeMemberRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store.members, id)
	return nil
}

func (f *fakeMemberRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store.members)), nil
}

func (f *fakeMemberRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, m := range f.store.members {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------

type fakeItemRepository struct {
	store *memoryStore
}

func (f *fakeItemRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	it, ok := f.store.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := *it
	return &out, nil
}

func (f *fakeItemRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	var out []catalog.Item
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if it, ok := f.store.items[id]; ok {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeItemRepository) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(f.store.items))
	for _, it := range f.store.items {
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeItemRepository) Save(_ context.Context, it *catalog.Item) error {
	out := *it
	f.store.items[it.ID] = &out
	return nil
}

func (f *fakeItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store.items, id)
	return nil
}

func (f *fakeItemRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store.items)), nil
}

func (f *fakeItemRepository) ExistsByIdentity(_ context.Context, name string, rarity catalog.Rarity, categoryID uuid.UUID, tradeable bool) (bool, error) {
	for _, it := range f.store.items {
		if it.Name == name && it.Rarity == rarity && it.CategoryID == categoryID && it.Tradeable == tradeable {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------

// fakeTransactionScope serializes units of work on the store mutex, the way
// row locks serialize real transactions, and restores a snapshot on error.
type fakeTransactionScope struct {
	store            *memoryStore
	raffleRepo       *fakeRaffleRepository
	stockRepo        *fakeStockRepository
	distributionRepo *fakeDistributionRepository
}

func (s *fakeTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	snap := s.store.snapshot()
	if err := fn(s); err != nil {
		s.store.restore(snap)
		return err
	}
	return nil
}

func (s *fakeTransactionScope) RaffleRepo() raffle.RaffleRepository             { return s.raffleRepo }
func (s *fakeTransactionScope) StockRepo() raffle.StockRepository               { return s.stockRepo }
func (s *fakeTransactionScope) DistributionRepo() raffle.DistributionRepository { return s.distributionRepo }

var _ TransactionScope = (*fakeTransactionScope)(nil)
var _ raffle.RaffleRepository = (*fakeRaffleRepository)(nil)
var _ raffle.StockRepository = (*fakeStockRepository)(nil)
var _ raffle.DistributionRepository = (*fakeDistributionRepository)(nil)
var _ catalog.MemberRepository = (*fakeMemberRepository)(nil)
var _ catalog.ItemRepository = (*fakeItemRepository)(nil)

// ---------------------------------------------------------------------------

// fixture wires the services against the in-memory store
type fixture struct {
	store        *memoryStore
	raffleSvc    *RaffleService
	distribution *DistributionService
	reports      *ReportService
}

func newFixture() *fixture {
	store := newMemoryStore()
	raffleRepo := &fakeRaffleRepository{store: store}
	stockRepo := &fakeStockRepository{store: store}
	distributionRepo := &fakeDistributionRepository{store: store}
	memberRepo := &fakeMemberRepository{store: store}
	itemRepo := &fakeItemRepository{store: store}
	txScope := &fakeTransactionScope{
		store:            store,
		raffleRepo:       raffleRepo,
		stockRepo:        stockRepo,
		distributionRepo: distributionRepo,
	}

	return &fixture{
		store:        store,
		raffleSvc:    NewRaffleService(txScope, raffleRepo, memberRepo, itemRepo),
		distribution: NewDistributionService(txScope, distributionRepo),
		reports:      NewReportService(raffleRepo, distributionRepo, memberRepo, itemRepo),
	}
}

func (f *fixture) seedMember(name string) *catalog.Member {
	m, err := catalog.NewMember(name, "mage", "dps", 60, decimal.NewFromInt(100))
	if err != nil {
		panic(err)
	}
	f.store.members[m.ID] = m
	return m
}

func (f *fixture) seedItem(name string, rarity catalog.Rarity) *catalog.Item {
	it, err := catalog.NewItem(name, rarity, uuid.New(), true)
	if err != nil {
		panic(err)
	}
	f.store.items[it.ID] = it
	return it
}
