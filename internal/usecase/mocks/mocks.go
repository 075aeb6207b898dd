package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc              func(ctx context.Context, account *domain.Account) error
	CreateTxFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc       func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateAccountNumberFunc func(ctx context.Context, tx usecase.Transaction, id, accountNumber string, updatedAt time.Time) error
	MarkDeletedFunc         func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error
	DeleteFunc              func(ctx context.Context, id string) error
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) UpdateAccountNumber(ctx context.Context, tx usecase.Transaction, id, accountNumber string, updatedAt time.Time) error {
	if m.UpdateAccountNumberFunc != nil {
		return m.UpdateAccountNumberFunc(ctx, tx, id, accountNumber, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.AccountNumber = accountNumber
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) MarkDeleted(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	if m.MarkDeletedFunc != nil {
		return m.MarkDeletedFunc(ctx, tx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = decimal.Zero
		acc.OwnerID = ""
		acc.Status = domain.AccountStatusDeleted
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc  func(ctx context.Context, user *domain.User) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.User, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrOwnerNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []*domain.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

// MockBankRepository is a mock implementation of BankRepository.
type MockBankRepository struct {
	mu    sync.RWMutex
	banks map[string]*domain.Bank

	CreateFunc                  func(ctx context.Context, bank *domain.Bank) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.Bank, error)
	GetByIDForUpdateFunc        func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Bank, error)
	UpdateRepositoryBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetAccountIDsFunc           func(ctx context.Context, tx usecase.Transaction, id string, accountIDs []string, updatedAt time.Time) error
	AddBranchFunc               func(ctx context.Context, tx usecase.Transaction, bankID, branchID string, updatedAt time.Time) error
	ListFunc                    func(ctx context.Context, limit, offset int) ([]*domain.Bank, error)
}

func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{
		banks: make(map[string]*domain.Bank),
	}
}

func (m *MockBankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bank)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banks[bank.ID] = bank
	return nil
}

func (m *MockBankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.banks[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBankNotFound
}

func (m *MockBankRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Bank, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockBankRepository) UpdateRepositoryBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateRepositoryBalanceFunc != nil {
		return m.UpdateRepositoryBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.banks[id]; ok {
		b.RepositoryBalance = balance
		b.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockBankRepository) SetAccountIDs(ctx context.Context, tx usecase.Transaction, id string, accountIDs []string, updatedAt time.Time) error {
	if m.SetAccountIDsFunc != nil {
		return m.SetAccountIDsFunc(ctx, tx, id, accountIDs, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.banks[id]; ok {
		b.AccountIDs = accountIDs
		b.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockBankRepository) AddBranch(ctx context.Context, tx usecase.Transaction, bankID, branchID string, updatedAt time.Time) error {
	if m.AddBranchFunc != nil {
		return m.AddBranchFunc(ctx, tx, bankID, branchID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.banks[bankID]; ok {
		b.BranchIDs = append(b.BranchIDs, branchID)
		b.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockBankRepository) List(ctx context.Context, limit, offset int) ([]*domain.Bank, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var banks []*domain.Bank
	for _, b := range m.banks {
		banks = append(banks, b)
	}
	return banks, nil
}

// MockBranchRepository is a mock implementation of BranchRepository.
type MockBranchRepository struct {
	mu       sync.RWMutex
	branches map[string]*domain.Branch

	CreateFunc     func(ctx context.Context, tx usecase.Transaction, branch *domain.Branch) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Branch, error)
	ListByBankFunc func(ctx context.Context, bankID string) ([]*domain.Branch, error)
}

func NewMockBranchRepository() *MockBranchRepository {
	return &MockBranchRepository{
		branches: make(map[string]*domain.Branch),
	}
}

func (m *MockBranchRepository) Create(ctx context.Context, tx usecase.Transaction, branch *domain.Branch) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, branch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branches[branch.ID] = branch
	return nil
}

func (m *MockBranchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.branches[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBranchNotFound
}

func (m *MockBranchRepository) ListByBank(ctx context.Context, bankID string) ([]*domain.Branch, error) {
	if m.ListByBankFunc != nil {
		return m.ListByBankFunc(ctx, bankID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var branches []*domain.Branch
	for _, b := range m.branches {
		if b.BankID == bankID {
			branches = append(branches, b)
		}
	}
	return branches, nil
}

// MockATMRepository is a mock implementation of ATMRepository.
type MockATMRepository struct {
	mu   sync.RWMutex
	atms map[string]*domain.ATM

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, atm *domain.ATM) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.ATM, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.ATM, error)
	UpdateCashBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByBranchFunc      func(ctx context.Context, branchID string) ([]*domain.ATM, error)
}

func NewMockATMRepository() *MockATMRepository {
	return &MockATMRepository{
		atms: make(map[string]*domain.ATM),
	}
}

func (m *MockATMRepository) Create(ctx context.Context, tx usecase.Transaction, atm *domain.ATM) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, atm)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.atms[atm.ID] = atm
	return nil
}

func (m *MockATMRepository) GetByID(ctx context.Context, id string) (*domain.ATM, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.atms[id]; ok {
		return a, nil
	}
	return nil, domain.ErrATMNotFound
}

func (m *MockATMRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ATM, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockATMRepository) UpdateCashBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateCashBalanceFunc != nil {
		return m.UpdateCashBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.atms[id]; ok {
		a.CashBalance = balance
		a.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockATMRepository) ListByBranch(ctx context.Context, branchID string) ([]*domain.ATM, error) {
	if m.ListByBranchFunc != nil {
		return m.ListByBranchFunc(ctx, branchID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var atms []*domain.ATM
	for _, a := range m.atms {
		if a.BranchID == branchID {
			atms = append(atms, a)
		}
	}
	return atms, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if t.AccountID == accountID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter))
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
