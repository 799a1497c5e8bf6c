package service

import (
	"context"
	"sync"

	dErrors "meterbill/pkg/domain-errors"
)

// StoreTx provides a transactional boundary spanning all three ledger stores.
// Implementations may wrap a database transaction or an in-memory lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// inMemoryStoreTx serializes mutations when no store transaction is configured.
type inMemoryStoreTx struct {
	mu sync.Mutex
}

func newInMemoryStoreTx() *inMemoryStoreTx {
	return &inMemoryStoreTx{}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(ctx)
}
