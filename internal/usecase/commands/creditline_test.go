//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"creditline-service/internal/domain/creditline"
	"creditline-service/internal/infra/repository"
	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/pkg/errs"
	"creditline-service/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creditLineFixture struct {
	cmds  commands.CreditLineCommands
	lines *repository.CreditLineMemoryRepository
	txns  *repository.TransactionMemoryRepository
	clk   *clock.MockClock
}

func newCreditLineFixture(t *testing.T) *creditLineFixture {
	t.Helper()
	lines := repository.NewCreditLineMemoryRepository()
	txns := repository.NewTransactionMemoryRepository()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return &creditLineFixture{
		cmds:  commands.NewCreditLineCommands(lines, txns, clk),
		lines: lines,
		txns:  txns,
		clk:   clk,
	}
}

func (f *creditLineFixture) ledger(t *testing.T, lineID uuid.UUID) []*creditline.Transaction {
	t.Helper()
	entries, err := f.txns.ListByCreditLine(context.Background(), lineID)
	require.NoError(t, err)
	return entries
}

func TestCreate(t *testing.T) {
	t.Run("new line starts active with zero utilization", func(t *testing.T) {
		f := newCreditLineFixture(t)
		borrowerID := uuid.New()

		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: borrowerID,
			LimitCents: 500_000,
		})
		require.NoError(t, err)

		assert.Equal(t, borrowerID, line.BorrowerID())
		assert.Equal(t, int64(500_000), line.Limit().Cents())
		assert.Equal(t, int64(0), line.Utilized().Cents())
		assert.Equal(t, creditline.StatusActive, line.Status())

		entries := f.ledger(t, line.ID())
		require.Len(t, entries, 1)
		assert.Equal(t, creditline.TransactionStatusChange, entries[0].Type())
		assert.Equal(t, map[string]string{"action": "created"}, entries[0].Metadata())
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		f := newCreditLineFixture(t)

		_, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: uuid.New(),
			LimitCents: -1,
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}

func TestDraw(t *testing.T) {
	t.Run("successful draw appends a ledger entry", func(t *testing.T) {
		f := newCreditLineFixture(t)
		borrowerID := uuid.New()
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: borrowerID,
			LimitCents: 100_000,
		})
		require.NoError(t, err)

		updated, err := f.cmds.Draw(context.Background(), line.ID(), borrowerID, 30_000, "USD")
		require.NoError(t, err)
		assert.Equal(t, int64(30_000), updated.Utilized().Cents())
		assert.Equal(t, int64(70_000), updated.Available().Cents())

		entries := f.ledger(t, line.ID())
		require.Len(t, entries, 2)
		draw := entries[1]
		assert.Equal(t, creditline.TransactionDraw, draw.Type())
		require.NotNil(t, draw.Amount())
		assert.Equal(t, int64(30_000), draw.Amount().Cents())
		require.NotNil(t, draw.Currency())
		assert.Equal(t, "USD", *draw.Currency())
	})

	t.Run("over-limit draw is rejected without a ledger entry", func(t *testing.T) {
		f := newCreditLineFixture(t)
		borrowerID := uuid.New()
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: borrowerID,
			LimitCents: 100_000,
		})
		require.NoError(t, err)
		_, err = f.cmds.Draw(context.Background(), line.ID(), borrowerID, 90_000, "USD")
		require.NoError(t, err)

		_, err = f.cmds.Draw(context.Background(), line.ID(), borrowerID, 20_000, "USD")
		assert.ErrorIs(t, err, creditline.ErrOverLimit)

		stored, err := f.lines.FindByID(context.Background(), line.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(90_000), stored.Utilized().Cents())
		assert.Len(t, f.ledger(t, line.ID()), 2)
	})

	t.Run("wrong borrower is rejected before amount validation", func(t *testing.T) {
		f := newCreditLineFixture(t)
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: uuid.New(),
			LimitCents: 100_000,
		})
		require.NoError(t, err)

		_, err = f.cmds.Draw(context.Background(), line.ID(), uuid.New(), -5, "USD")
		assert.ErrorIs(t, err, creditline.ErrBorrowerMismatch)
	})

	t.Run("unknown line id", func(t *testing.T) {
		f := newCreditLineFixture(t)

		_, err := f.cmds.Draw(context.Background(), uuid.New(), uuid.New(), 1000, "USD")
		assert.ErrorIs(t, err, errs.ErrCreditLineNotFound)
	})
}

func TestRepay(t *testing.T) {
	t.Run("repayment reduces utilization and appends an entry", func(t *testing.T) {
		f := newCreditLineFixture(t)
		borrowerID := uuid.New()
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: borrowerID,
			LimitCents: 100_000,
		})
		require.NoError(t, err)
		_, err = f.cmds.Draw(context.Background(), line.ID(), borrowerID, 50_000, "USD")
		require.NoError(t, err)

		updated, err := f.cmds.Repay(context.Background(), line.ID(), 20_000, "USD")
		require.NoError(t, err)
		assert.Equal(t, int64(30_000), updated.Utilized().Cents())

		entries := f.ledger(t, line.ID())
		require.Len(t, entries, 3)
		assert.Equal(t, creditline.TransactionRepayment, entries[2].Type())
	})

	t.Run("overpayment floors utilization at zero", func(t *testing.T) {
		f := newCreditLineFixture(t)
		borrowerID := uuid.New()
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: borrowerID,
			LimitCents: 100_000,
		})
		require.NoError(t, err)
		_, err = f.cmds.Draw(context.Background(), line.ID(), borrowerID, 10_000, "USD")
		require.NoError(t, err)

		updated, err := f.cmds.Repay(context.Background(), line.ID(), 99_999, "USD")
		require.NoError(t, err)
		assert.Equal(t, int64(0), updated.Utilized().Cents())
		assert.Equal(t, int64(100_000), updated.Available().Cents())
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("suspend then close records each change", func(t *testing.T) {
		f := newCreditLineFixture(t)
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: uuid.New(),
			LimitCents: 100_000,
		})
		require.NoError(t, err)

		suspended, err := f.cmds.Suspend(context.Background(), line.ID())
		require.NoError(t, err)
		assert.Equal(t, creditline.StatusSuspended, suspended.Status())

		closed, err := f.cmds.Close(context.Background(), line.ID())
		require.NoError(t, err)
		assert.Equal(t, creditline.StatusClosed, closed.Status())

		entries := f.ledger(t, line.ID())
		require.Len(t, entries, 3)
		assert.Equal(t, map[string]string{"action": "suspended"}, entries[1].Metadata())
		assert.Equal(t, map[string]string{"action": "closed"}, entries[2].Metadata())
	})

	t.Run("rejected transition appends nothing", func(t *testing.T) {
		f := newCreditLineFixture(t)
		line, err := f.cmds.Create(context.Background(), commands.CreateCreditLineInput{
			BorrowerID: uuid.New(),
			LimitCents: 100_000,
		})
		require.NoError(t, err)
		_, err = f.cmds.Close(context.Background(), line.ID())
		require.NoError(t, err)

		_, err = f.cmds.Suspend(context.Background(), line.ID())
		assert.ErrorIs(t, err, creditline.ErrInvalidTransition)
		assert.Len(t, f.ledger(t, line.ID()), 2)
	})
}
