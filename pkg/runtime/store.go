// Package runtime is the host account store the pool program runs against.
//
// It stands in for the chain runtime: accounts are opaque byte records keyed
// by address, creation is create-if-absent, and a transaction either commits
// every staged write or none of them.
package runtime

import (
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrAccountExists is returned when a create targets an address that is
	// already materialized. Two racing creates for the same address resolve
	// to exactly one winner; the loser observes this error.
	ErrAccountExists = errors.New("runtime: account already exists")
	// ErrAccountNotFound is returned when an update targets an address with
	// no account behind it.
	ErrAccountNotFound = errors.New("runtime: account not found")
	// ErrTxnDone is returned when a finished transaction is reused.
	ErrTxnDone = errors.New("runtime: transaction already finished")
)

// Account is a stored record: the program that owns it and its raw data.
type Account struct {
	Owner solana.PublicKey
	Data  []byte
}

func (a Account) clone() Account {
	out := Account{Owner: a.Owner}
	if a.Data != nil {
		out.Data = make([]byte, len(a.Data))
		copy(out.Data, a.Data)
	}
	return out
}

// Store is an in-memory account map guarded by a single lock. Invocations
// are serialized by the host; the lock only protects against concurrent
// transactions racing on the same address.
type Store struct {
	mu       sync.RWMutex
	accounts map[solana.PublicKey]Account
}

func NewStore() *Store {
	return &Store{accounts: make(map[solana.PublicKey]Account)}
}

// Get returns a copy of the account at key.
func (s *Store) Get(key solana.PublicKey) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[key]
	if !ok {
		return Account{}, false
	}
	return acct.clone(), true
}

// Exists reports whether an account is materialized at key.
func (s *Store) Exists(key solana.PublicKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[key]
	return ok
}

// Len returns the number of materialized accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Begin opens a transaction. Writes are staged in the transaction and become
// visible only at Commit; dropping the transaction without committing is a
// rollback and leaves no trace.
func (s *Store) Begin() *Txn {
	return &Txn{
		store:   s,
		created: make(map[solana.PublicKey]Account),
		updated: make(map[solana.PublicKey]Account),
	}
}

// Txn is a staged unit of work over a Store.
type Txn struct {
	store   *Store
	created map[solana.PublicKey]Account
	updated map[solana.PublicKey]Account
	done    bool
}

// Get reads through the staging area first, then the store.
func (t *Txn) Get(key solana.PublicKey) (Account, bool) {
	if acct, ok := t.updated[key]; ok {
		return acct.clone(), true
	}
	if acct, ok := t.created[key]; ok {
		return acct.clone(), true
	}
	return t.store.Get(key)
}

// Create stages a create-if-absent. It fails fast if the address is already
// materialized or already staged; the absence check is repeated under the
// write lock at Commit, so the fast path is advisory only.
func (t *Txn) Create(key solana.PublicKey, acct Account) error {
	if t.done {
		return ErrTxnDone
	}
	if _, ok := t.created[key]; ok {
		return ErrAccountExists
	}
	if t.store.Exists(key) {
		return ErrAccountExists
	}
	t.created[key] = acct.clone()
	return nil
}

// Put stages an update to an existing account.
func (t *Txn) Put(key solana.PublicKey, acct Account) error {
	if t.done {
		return ErrTxnDone
	}
	if _, ok := t.created[key]; ok {
		t.created[key] = acct.clone()
		return nil
	}
	if !t.store.Exists(key) {
		return ErrAccountNotFound
	}
	t.updated[key] = acct.clone()
	return nil
}

// Commit applies every staged write atomically. If any created address was
// materialized by a concurrent transaction since staging, nothing is applied
// and ErrAccountExists is returned.
func (t *Txn) Commit() error {
	if t.done {
		return ErrTxnDone
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for key := range t.created {
		if _, ok := t.store.accounts[key]; ok {
			return ErrAccountExists
		}
	}
	for key := range t.updated {
		if _, ok := t.store.accounts[key]; !ok {
			return ErrAccountNotFound
		}
	}
	for key, acct := range t.created {
		t.store.accounts[key] = acct
	}
	for key, acct := range t.updated {
		t.store.accounts[key] = acct
	}
	return nil
}
