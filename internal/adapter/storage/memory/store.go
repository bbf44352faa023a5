// Package memory is a process-local storage driver with the same
// transactional contract as the PostgreSQL adapter: rows read FOR UPDATE stay
// locked until the transaction ends, and writes become visible on commit.
package memory

import (
	"context"
	"sync"

	"vtu-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store holds every table of the memory driver.
type Store struct {
	mu sync.RWMutex

	users        map[uuid.UUID]*domain.User
	wallets      map[uuid.UUID]*domain.Wallet // keyed by user ID
	walletOwners map[uuid.UUID]uuid.UUID      // wallet ID -> user ID
	transactions map[uuid.UUID]*domain.Transaction
	references   map[string]uuid.UUID
	reserved     map[string]struct{} // ledger and provider references staged by open transactions
	providerRefs map[string]uuid.UUID
	idempotency  map[string]*domain.IdempotencyLog
	seq          map[uuid.UUID]uint64
	nextSeq      uint64

	locks *rowLocks
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*domain.User),
		wallets:      make(map[uuid.UUID]*domain.Wallet),
		walletOwners: make(map[uuid.UUID]uuid.UUID),
		transactions: make(map[uuid.UUID]*domain.Transaction),
		references:   make(map[string]uuid.UUID),
		reserved:     make(map[string]struct{}),
		providerRefs: make(map[string]uuid.UUID),
		idempotency:  make(map[string]*domain.IdempotencyLog),
		seq:          make(map[uuid.UUID]uint64),
		locks:        newRowLocks(),
	}
}

// Begin starts a transaction. It implements ports.DBTransactor.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memTx{store: s, held: make(map[string]struct{})}, nil
}

// PutUser inserts or replaces a user record. Users are owned by the account
// service, so this is how the memory driver gets them.
func (s *Store) PutUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "memory"
}

// rowLocks is a set of exclusive locks keyed by row identity.
type rowLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newRowLocks() *rowLocks {
	return &rowLocks{slots: make(map[string]chan struct{})}
}

func (l *rowLocks) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// acquire blocks until key is free or ctx is done.
func (l *rowLocks) acquire(ctx context.Context, key string) error {
	select {
	case l.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *rowLocks) release(key string) {
	<-l.slot(key)
}

func cloneWallet(w *domain.Wallet) *domain.Wallet {
	cp := *w
	return &cp
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	cp := *t
	if t.Metadata != nil {
		cp.Metadata = t.Metadata.Clone()
	}
	return &cp
}
