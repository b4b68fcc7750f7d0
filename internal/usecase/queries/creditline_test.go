//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"creditline-service/internal/domain/creditline"
	"creditline-service/internal/infra/repository"
	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/pkg/errs"
	"creditline-service/internal/usecase/commands"
	"creditline-service/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queriesFixture struct {
	cmds commands.CreditLineCommands
	q    queries.CreditLineQueries
	clk  *clock.MockClock
}

func newQueriesFixture(t *testing.T) *queriesFixture {
	t.Helper()
	lines := repository.NewCreditLineMemoryRepository()
	txns := repository.NewTransactionMemoryRepository()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return &queriesFixture{
		cmds: commands.NewCreditLineCommands(lines, txns, clk),
		q:    queries.NewCreditLineQueries(lines, txns),
		clk:  clk,
	}
}

// seedLedger creates a line and records one draw and one repayment per hour,
// draws on even hours. The created entry sits at hour zero.
func (f *queriesFixture) seedLedger(t *testing.T, entryCount int) uuid.UUID {
	t.Helper()
	borrowerID := uuid.New()
	line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
		BorrowerID: borrowerID,
		LimitCents: 10_000_000,
	})
	require.NoError(t, err)

	for i := 1; i < entryCount; i++ {
		f.clk.Add(time.Hour)
		if i%2 == 0 {
			_, err = f.cmds.Draw(context.Background(), line.ID(), borrowerID, 1_000, "USD")
		} else {
			_, err = f.cmds.Repay(context.Background(), line.ID(), 500, "USD")
		}
		require.NoError(t, err)
	}
	return line.ID()
}

func TestGetByID(t *testing.T) {
	f := newQueriesFixture(t)
	lineID := f.seedLedger(t, 1)

	line, err := f.q.GetByID(context.Background(), lineID)
	require.NoError(t, err)
	assert.Equal(t, lineID, line.ID())

	_, err = f.q.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrCreditLineNotFound)
}

func TestListTransactions(t *testing.T) {
	t.Run("entries come back newest first", func(t *testing.T) {
		f := newQueriesFixture(t)
		lineID := f.seedLedger(t, 5)

		page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{}, 1, 20)
		require.NoError(t, err)
		require.Len(t, page.Transactions, 5)
		for i := 1; i < len(page.Transactions); i++ {
			prev, cur := page.Transactions[i-1], page.Transactions[i]
			assert.False(t, prev.OccurredAt.Before(cur.OccurredAt))
		}
		assert.Equal(t, creditline.TransactionStatusChange, page.Transactions[4].Type)
	})

	t.Run("type filter", func(t *testing.T) {
		f := newQueriesFixture(t)
		lineID := f.seedLedger(t, 7)

		drawType := creditline.TransactionDraw
		page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{Type: &drawType}, 1, 20)
		require.NoError(t, err)
		require.Len(t, page.Transactions, 3)
		for _, tx := range page.Transactions {
			assert.Equal(t, creditline.TransactionDraw, tx.Type)
		}
	})

	t.Run("time range bounds are inclusive", func(t *testing.T) {
		f := newQueriesFixture(t)
		start := f.clk.Now()
		lineID := f.seedLedger(t, 5)

		from := start.Add(1 * time.Hour)
		to := start.Add(3 * time.Hour)
		page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{From: &from, To: &to}, 1, 20)
		require.NoError(t, err)
		require.Len(t, page.Transactions, 3)
		assert.Equal(t, to, page.Transactions[0].OccurredAt)
		assert.Equal(t, from, page.Transactions[2].OccurredAt)
	})

	t.Run("pagination covers every entry exactly once", func(t *testing.T) {
		f := newQueriesFixture(t)
		lineID := f.seedLedger(t, 25)

		var collected []uuid.UUID
		for p := 1; ; p++ {
			page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{}, p, 10)
			require.NoError(t, err)
			assert.Equal(t, 25, page.Total)
			assert.Equal(t, 3, page.TotalPages)
			for _, tx := range page.Transactions {
				collected = append(collected, tx.ID)
			}
			if p >= page.TotalPages {
				break
			}
		}

		full, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{}, 1, 100)
		require.NoError(t, err)
		expected := make([]uuid.UUID, 0, len(full.Transactions))
		for _, tx := range full.Transactions {
			expected = append(expected, tx.ID)
		}
		if diff := cmp.Diff(expected, collected); diff != "" {
			t.Errorf("paginated walk mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("page past the end is empty but keeps totals", func(t *testing.T) {
		f := newQueriesFixture(t)
		lineID := f.seedLedger(t, 3)

		page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{}, 9, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Transactions)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("empty result still reports one page", func(t *testing.T) {
		f := newQueriesFixture(t)
		lineID := f.seedLedger(t, 3)

		repayType := creditline.TransactionRepayment
		from := f.clk.Now().Add(100 * time.Hour)
		page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{Type: &repayType, From: &from}, 1, 20)
		require.NoError(t, err)
		assert.Empty(t, page.Transactions)
		assert.Equal(t, 0, page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("out-of-range limit falls back to defaults", func(t *testing.T) {
		f := newQueriesFixture(t)
		lineID := f.seedLedger(t, 3)

		page, err := f.q.ListTransactions(context.Background(), lineID, queries.TransactionFilters{}, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, queries.DefaultPageLimit, page.Limit)
	})

	t.Run("unknown credit line", func(t *testing.T) {
		f := newQueriesFixture(t)

		_, err := f.q.ListTransactions(context.Background(), uuid.New(), queries.TransactionFilters{}, 1, 20)
		assert.ErrorIs(t, err, errs.ErrCreditLineNotFound)
	})
}
