package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc       func(ctx context.Context, account *domain.Account) error
	GetByUserIDFunc  func(ctx context.Context, userID string) (*domain.Account, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Account, error)
	ApplyDeltaFunc   func(ctx context.Context, tx usecase.Transaction, userID string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed registers an account for the default in-memory behavior.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.UserID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.UserID]; ok {
		return domain.ErrAccountExists
	}
	m.accounts[account.UserID] = account
	return nil
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[userID]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Account, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, userIDs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range userIDs {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, userID string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, tx, userID, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[userID]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	newBalance := acc.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientFunds
	}
	acc.Balance = newBalance
	acc.UpdatedAt = updatedAt
	return newBalance, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	AppendFunc             func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByReferenceFunc     func(ctx context.Context, reference string) ([]*domain.LedgerEntry, error)
	QueryByParticipantFunc func(ctx context.Context, userID string, direction domain.EntryDirection, limit, offset int) ([]*domain.LedgerEntry, error)
	CountByParticipantFunc func(ctx context.Context, userID string, direction domain.EntryDirection) (int64, error)
	CheckConsistencyFunc   func(ctx context.Context) (decimal.Decimal, decimal.Decimal, int64, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

// Seed registers entries for the default in-memory behavior. Entries are
// kept in the given order; callers seed newest first.
func (m *MockLedgerRepository) Seed(entries ...*domain.LedgerEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
}

// Entries returns a snapshot of everything appended.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.entries {
		if existing.Reference == entry.Reference && existing.Direction == entry.Direction {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, entry.Reference)
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLedgerRepository) GetByReference(ctx context.Context, reference string) ([]*domain.LedgerEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matches []*domain.LedgerEntry
	for _, entry := range m.entries {
		if entry.Reference == reference {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

func (m *MockLedgerRepository) QueryByParticipant(ctx context.Context, userID string, direction domain.EntryDirection, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.QueryByParticipantFunc != nil {
		return m.QueryByParticipantFunc(ctx, userID, direction, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matches []*domain.LedgerEntry
	for _, entry := range m.entries {
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

func (m *MockLedgerRepository) CountByParticipant(ctx context.Context, userID string, direction domain.EntryDirection) (int64, error) {
	if m.CountByParticipantFunc != nil {
		return m.CountByParticipantFunc(ctx, userID, direction)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, entry := range m.entries {
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

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, int64, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, 0, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	m.Committed = true
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu           sync.Mutex
	transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.transactions = append(m.transactions, tx)
	m.mu.Unlock()
	return tx, nil
}

// Transactions returns every transaction handed out so far.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockTransaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
// References and IDs are sequential so tests can assert on them.
type MockReferenceGenerator struct {
	NewReferenceFunc func() string
	NewIDFunc        func() string

	mu   sync.Mutex
	refs int
	ids  int
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) NewReference() string {
	if m.NewReferenceFunc != nil {
		return m.NewReferenceFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs++
	return fmt.Sprintf("TXN-%04d", m.refs)
}

func (m *MockReferenceGenerator) NewID() string {
	if m.NewIDFunc != nil {
		return m.NewIDFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids++
	return fmt.Sprintf("entry-%04d", m.ids)
}

// References returns how many references were handed out.
func (m *MockReferenceGenerator) References() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs
}

// MockRetrier is a mock implementation of Retrier. By default it mirrors
// the production classification without sleeping: duplicate references
// are retried up to Attempts times, everything else is permanent.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error

	Attempts int
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{Attempts: 3}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	var err error
	for i := 0; i < m.Attempts; i++ {
		err = operation()
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateReference) {
			return err
		}
	}
	return err
}

// MockRiskEvaluator is a mock implementation of RiskEvaluator.
type MockRiskEvaluator struct {
	EvaluateFunc func(ctx context.Context, input usecase.RiskInput) usecase.RiskAssessment

	mu     sync.Mutex
	inputs []usecase.RiskInput
}

func NewMockRiskEvaluator() *MockRiskEvaluator {
	return &MockRiskEvaluator{}
}

func (m *MockRiskEvaluator) Evaluate(ctx context.Context, input usecase.RiskInput) usecase.RiskAssessment {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, input)
	}
	return usecase.RiskAssessment{}
}

// Inputs returns every input the evaluator saw.
func (m *MockRiskEvaluator) Inputs() []usecase.RiskInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]usecase.RiskInput, len(m.inputs))
	copy(out, m.inputs)
	return out
}

// MockCounter is a mock implementation of Counter backed by in-memory
// fixed windows.
type MockCounter struct {
	IncrFunc func(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)

	mu     sync.Mutex
	counts map[string]int64
}

func NewMockCounter() *MockCounter {
	return &MockCounter{counts: make(map[string]int64)}
}

func (m *MockCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key, window)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], window, nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error

	mu     sync.Mutex
	values map[string][]byte
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{values: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	m.values[key] = []byte("processing")
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
