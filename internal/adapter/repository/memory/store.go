// Package memory implements the repository interfaces against an
// in-process store. Mutual exclusion is scoped per entity: every
// balance-changing operation locks the entities it touches, in
// ascending ID order for multi-entity operations, and its writes are
// staged on the transaction and applied atomically at commit. Readers
// always observe fully committed state.
package memory

import (
	"sync"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// Store holds all ledger state. Entity maps are guarded by mu; the
// per-entity write locks live in locks and outlive transactions.
type Store struct {
	mu sync.RWMutex

	accounts map[string]*domain.Account
	users    map[string]*domain.User
	banks    map[string]*domain.Bank
	branches map[string]*domain.Branch
	atms     map[string]*domain.ATM

	// Append-only transaction log, plus per-account append order.
	txns          map[string]*domain.Transaction
	txnsByAccount map[string][]string

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*domain.Account),
		users:         make(map[string]*domain.User),
		banks:         make(map[string]*domain.Bank),
		branches:      make(map[string]*domain.Branch),
		atms:          make(map[string]*domain.ATM),
		txns:          make(map[string]*domain.Transaction),
		txnsByAccount: make(map[string][]string),
		locks:         make(map[string]*sync.Mutex),
	}
}

// entityLock returns the write lock for an entity ID, creating it on
// first use. Locks are never removed; a stale lock for a deleted
// entity is harmless.
func (s *Store) entityLock(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func copyAccount(a *domain.Account) *domain.Account {
	cp := *a
	return &cp
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func copyBank(b *domain.Bank) *domain.Bank {
	cp := *b
	cp.AccountIDs = append([]string(nil), b.AccountIDs...)
	cp.BranchIDs = append([]string(nil), b.BranchIDs...)
	return &cp
}

func copyBranch(b *domain.Branch) *domain.Branch {
	cp := *b
	cp.ATMIDs = append([]string(nil), b.ATMIDs...)
	return &cp
}

func copyATM(a *domain.ATM) *domain.ATM {
	cp := *a
	return &cp
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	cp := *t
	return &cp
}
