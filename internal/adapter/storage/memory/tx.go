package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errTxClosed        = errors.New("memory: transaction already closed")
	errForeignTx       = errors.New("memory: transaction was not started by this store")
	errSQLNotSupported = errors.New("memory: raw SQL is not supported")
)

// memTx implements pgx.Tx. Writes are staged and applied atomically on
// Commit; row locks are held until Commit or Rollback.
type memTx struct {
	store *Store

	mu       sync.Mutex
	held     map[string]struct{}
	writes   []func(s *Store)
	reserved []string
	done     bool
}

func asMemTx(s *Store, tx pgx.Tx) (*memTx, error) {
	mt, ok := tx.(*memTx)
	if !ok || mt.store != s {
		return nil, errForeignTx
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.done {
		return nil, errTxClosed
	}
	return mt, nil
}

// lock takes the row lock for key unless this transaction already holds it.
func (t *memTx) lock(ctx context.Context, key string) error {
	t.mu.Lock()
	if _, ok := t.held[key]; ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if err := t.store.locks.acquire(ctx, key); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		t.store.locks.release(key)
		return errTxClosed
	}
	t.held[key] = struct{}{}
	return nil
}

func (t *memTx) stage(fn func(s *Store)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = append(t.writes, fn)
}

func (t *memTx) finish(apply bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	t.done = true

	t.store.mu.Lock()
	if apply {
		for _, w := range t.writes {
			w(t.store)
		}
	}
	for _, ref := range t.reserved {
		delete(t.store.reserved, ref)
	}
	t.store.mu.Unlock()

	for key := range t.held {
		t.store.locks.release(key)
	}
	t.held = nil
	t.writes = nil
	return nil
}

func (t *memTx) Commit(ctx context.Context) error {
	return t.finish(true)
}

// Rollback discards staged writes. Rolling back a finished transaction is a
// no-op so it can be deferred after Commit.
func (t *memTx) Rollback(ctx context.Context) error {
	if err := t.finish(false); err != nil && !errors.Is(err, errTxClosed) {
		return err
	}
	return nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("memory: nested transactions are not supported")
}

func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errSQLNotSupported
}

func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errSQLNotSupported
}

func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), errSQLNotSupported
}

func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errSQLNotSupported
}

func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{err: errSQLNotSupported}
}

func (t *memTx) Conn() *pgx.Conn { return nil }

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }
