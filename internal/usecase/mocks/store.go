package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/internal/usecase"
)

// FakeStore is an in-memory transactional implementation of
// TransactionManager, AccountRepository and LedgerRepository. Unlike the
// plain mocks it has real transaction semantics: per-account locks held
// from GetForUpdate until commit or rollback, and writes buffered in the
// transaction that only land on commit. Engine tests use it to observe
// atomicity and serialization without a database.
type FakeStore struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount
	entries  []*domain.LedgerEntry
	refs     map[string]map[domain.EntryDirection]bool

	commits   int
	rollbacks int
	appends   int

	// AppendErrFunc, when set, intercepts every append. The second
	// argument counts appends across all transactions, starting at 1.
	AppendErrFunc func(entry *domain.LedgerEntry, n int) error
}

type fakeAccount struct {
	account domain.Account
	lock    sync.Mutex
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		accounts: make(map[string]*fakeAccount),
		refs:     make(map[string]map[domain.EntryDirection]bool),
	}
}

// Seed creates an account with the given balance.
func (s *FakeStore) Seed(userID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.accounts[userID] = &fakeAccount{
		account: domain.Account{
			UserID:    userID,
			Balance:   balance,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Balance returns the committed balance.
func (s *FakeStore) Balance(userID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fa, ok := s.accounts[userID]; ok {
		return fa.account.Balance
	}
	return decimal.Zero
}

// Entries returns a snapshot of all committed entries.
func (s *FakeStore) Entries() []*domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Commits returns how many transactions committed.
func (s *FakeStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Rollbacks returns how many transactions rolled back.
func (s *FakeStore) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// FakeTx is one in-flight transaction over a FakeStore.
type FakeTx struct {
	store   *FakeStore
	locked  []*fakeAccount
	deltas  map[string]decimal.Decimal
	pending []*domain.LedgerEntry
	done    bool
}

// Begin implements TransactionManager.
func (s *FakeStore) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &FakeTx{
		store:  s,
		deltas: make(map[string]decimal.Decimal),
	}, nil
}

// Commit applies buffered deltas and entries, then releases locks.
func (t *FakeTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	for userID, delta := range t.deltas {
		if fa, ok := s.accounts[userID]; ok {
			fa.account.Balance = fa.account.Balance.Add(delta)
			fa.account.Version++
		}
	}
	for _, entry := range t.pending {
		s.entries = append(s.entries, entry)
		if s.refs[entry.Reference] == nil {
			s.refs[entry.Reference] = make(map[domain.EntryDirection]bool)
		}
		s.refs[entry.Reference][entry.Direction] = true
	}
	s.commits++
	s.mu.Unlock()

	t.release()
	return nil
}

// Rollback discards buffered writes and releases locks. It is a no-op
// after Commit, matching pgx semantics.
func (t *FakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	t.store.rollbacks++
	t.store.mu.Unlock()

	t.release()
	return nil
}

func (t *FakeTx) release() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.locked[i].lock.Unlock()
	}
	t.locked = nil
}

// Create implements AccountRepository.
func (s *FakeStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.UserID]; ok {
		return domain.ErrAccountExists
	}
	s.accounts[account.UserID] = &fakeAccount{account: *account}
	return nil
}

// GetByUserID implements AccountRepository with a committed read.
func (s *FakeStore) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fa, ok := s.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acc := fa.account
	return &acc, nil
}

// GetForUpdate implements AccountRepository. Locks are taken in the
// order given, which the engine guarantees is sorted, so two concurrent
// transfers over the same accounts serialize instead of deadlocking.
func (s *FakeStore) GetForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Account, error) {
	t := tx.(*FakeTx)

	var accounts []*domain.Account
	for _, userID := range userIDs {
		s.mu.Lock()
		fa, ok := s.accounts[userID]
		s.mu.Unlock()
		if !ok {
			continue
		}

		fa.lock.Lock()
		t.locked = append(t.locked, fa)

		s.mu.Lock()
		acc := fa.account
		s.mu.Unlock()
		accounts = append(accounts, &acc)
	}

	return accounts, nil
}

// ApplyDelta implements AccountRepository against the transaction's
// buffered view.
func (s *FakeStore) ApplyDelta(ctx context.Context, tx usecase.Transaction, userID string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	t := tx.(*FakeTx)

	s.mu.Lock()
	defer s.mu.Unlock()

	fa, ok := s.accounts[userID]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	newBalance := fa.account.Balance.Add(t.deltas[userID]).Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientFunds
	}

	t.deltas[userID] = t.deltas[userID].Add(delta)
	return newBalance, nil
}

// Append implements LedgerRepository, buffering into the transaction.
func (s *FakeStore) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	t := tx.(*FakeTx)

	s.mu.Lock()
	s.appends++
	n := s.appends
	hook := s.AppendErrFunc
	dup := s.refs[entry.Reference][entry.Direction]
	s.mu.Unlock()

	if hook != nil {
		if err := hook(entry, n); err != nil {
			return err
		}
	}

	if dup {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, entry.Reference)
	}

	for _, pending := range t.pending {
		if pending.Reference == entry.Reference && pending.Direction == entry.Direction {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, entry.Reference)
		}
	}

	t.pending = append(t.pending, entry)
	return nil
}

// GetByReference implements LedgerRepository over committed entries.
func (s *FakeStore) GetByReference(ctx context.Context, reference string) ([]*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []*domain.LedgerEntry
	for _, entry := range s.entries {
		if entry.Reference == reference {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

// QueryByParticipant implements LedgerRepository over committed entries.
func (s *FakeStore) QueryByParticipant(ctx context.Context, userID string, direction domain.EntryDirection, limit, offset int) ([]*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []*domain.LedgerEntry
	for _, entry := range s.entries {
		if entry.AccountID != userID {
			continue
		}
		if direction != "" && entry.Direction != direction {
			continue
		}
		matches = append(matches, entry)
	}
	if offset >= len(matches) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], nil
}

// CountByParticipant implements LedgerRepository over committed entries.
func (s *FakeStore) CountByParticipant(ctx context.Context, userID string, direction domain.EntryDirection) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, entry := range s.entries {
		if entry.AccountID != userID {
			continue
		}
		if direction != "" && entry.Direction != direction {
			continue
		}
		count++
	}
	return count, nil
}

// CheckConsistency implements LedgerRepository over committed state.
func (s *FakeStore) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalBalance := decimal.Zero
	for _, fa := range s.accounts {
		totalBalance = totalBalance.Add(fa.account.Balance)
	}

	totalDelta := decimal.Zero
	type refStats struct {
		net   decimal.Decimal
		count int
	}
	byRef := make(map[string]*refStats)
	for _, entry := range s.entries {
		signed := entry.Amount
		if entry.Direction == domain.DirectionDebit {
			signed = signed.Neg()
		}
		totalDelta = totalDelta.Add(signed)

		stats, ok := byRef[entry.Reference]
		if !ok {
			stats = &refStats{net: decimal.Zero}
			byRef[entry.Reference] = stats
		}
		stats.net = stats.net.Add(signed)
		stats.count++
	}

	var unbalanced int64
	for _, stats := range byRef {
		if !stats.net.IsZero() || stats.count != 2 {
			unbalanced++
		}
	}

	return totalBalance, totalDelta, unbalanced, nil
}
