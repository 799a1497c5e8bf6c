package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)

	_, ok = From(WithTx(context.Background(), nil))
	assert.False(t, ok, "a nil transaction is not usable")

	tx := &sql.Tx{}
	got, ok := From(WithTx(context.Background(), tx))
	assert.True(t, ok)
	assert.Same(t, tx, got)
}
