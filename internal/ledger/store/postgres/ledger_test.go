package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	dErrors "meterbill/pkg/domain-errors"
)

func TestTranslateTxErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code dErrors.Code
	}{
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, dErrors.CodeConflict},
		{"deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgDeadlockDetected}), dErrors.CodeConflict},
		{"deadline", context.DeadlineExceeded, dErrors.CodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateTxErr(tt.err)
			assert.True(t, dErrors.HasCode(got, tt.code))
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		assert.Same(t, boom, translateTxErr(boom))
	})
}

func TestPgCodes(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestRunInTxRefusesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(nil).RunInTx(ctx, func(context.Context) error { return nil })
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}
