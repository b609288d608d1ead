package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBeginner struct {
	calls int
}

func (b *failingBeginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	b.calls++
	return nil, errors.New("connection refused")
}

func TestContext(t *testing.T) {
	ctx := context.Background()

	_, ok := From(ctx)
	assert.False(t, ok)
	assert.Equal(t, ctx, WithTx(ctx, nil), "nil transactions are not stored")

	sqlTx := &sql.Tx{}
	got, ok := From(WithTx(ctx, sqlTx))
	require.True(t, ok)
	assert.Same(t, sqlTx, got)
}

func TestRun(t *testing.T) {
	t.Run("begin failures skip fn", func(t *testing.T) {
		db := &failingBeginner{}
		called := false

		err := Run(context.Background(), db, func(context.Context) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin transaction")
		assert.False(t, called)
	})

	t.Run("an existing transaction is joined", func(t *testing.T) {
		db := &failingBeginner{}
		outer := &sql.Tx{}

		err := Run(WithTx(context.Background(), outer), db, func(ctx context.Context) error {
			inner, ok := From(ctx)
			assert.True(t, ok)
			assert.Same(t, outer, inner)
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, db.calls, "no new transaction is started")
	})
}
