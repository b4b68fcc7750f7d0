//go:build unit

package creditline_test

import (
	"testing"
	"time"

	"creditline-service/internal/domain/creditline"
	"creditline-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCreditLine(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithNow(now)
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, creditline.StatusActive, actual.Status())
		assert.Equal(t, int64(0), actual.Utilized().Cents())
		assert.Equal(t, int64(100000), actual.Limit().Cents())
		require.Len(t, actual.Events(), 1)
		assert.Equal(t, creditline.EventCreated, actual.Events()[0].Action)
		assert.Equal(t, now, actual.Events()[0].OccurredAt)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		_, err := creditline.NewMoney(-1)
		assert.Error(t, err)
	})
}

func TestCreditLineDraw(t *testing.T) {
	t.Run("draw increases utilization", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithLimitCents(1000).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, line.Draw(b.BorrowerID(), 200, now))
		assert.Equal(t, int64(200), line.Utilized().Cents())
		assert.Equal(t, int64(800), line.Available().Cents())
	})

	t.Run("over-limit draw rejected and state unchanged", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithLimitCents(1000).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, line.Draw(b.BorrowerID(), 200, now))

		err = line.Draw(b.BorrowerID(), 2000, now)
		assert.ErrorIs(t, err, creditline.ErrOverLimit)
		assert.Equal(t, int64(200), line.Utilized().Cents())
	})

	t.Run("draw up to the exact limit succeeds", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithLimitCents(1000).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, line.Draw(b.BorrowerID(), 1000, now))
		assert.Equal(t, int64(1000), line.Utilized().Cents())
		assert.Equal(t, int64(0), line.Available().Cents())
	})

	t.Run("wrong borrower rejected", func(t *testing.T) {
		line, err := builder.NewCreditLineBuilder().WithNow(now).BuildDomain()
		require.NoError(t, err)

		err = line.Draw(uuid.New(), 100, now)
		assert.ErrorIs(t, err, creditline.ErrBorrowerMismatch)
		assert.Equal(t, int64(0), line.Utilized().Cents())
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, line.Draw(b.BorrowerID(), 0, now), creditline.ErrInvalidAmount)
		assert.ErrorIs(t, line.Draw(b.BorrowerID(), -50, now), creditline.ErrInvalidAmount)
	})

	t.Run("draw on non-active line rejected", func(t *testing.T) {
		for _, status := range []creditline.Status{creditline.StatusSuspended, creditline.StatusClosed} {
			b := builder.NewCreditLineBuilder().WithStatus(status).WithNow(now)
			line, err := b.BuildDomain()
			require.NoError(t, err)

			err = line.Draw(b.BorrowerID(), 100, now)
			assert.ErrorIs(t, err, creditline.ErrNotActive, "status %s", status)
		}
	})

	t.Run("status is checked before ownership and amount", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithStatus(creditline.StatusClosed).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		// wrong borrower AND invalid amount, but the status failure wins
		err = line.Draw(uuid.New(), -1, now)
		assert.ErrorIs(t, err, creditline.ErrNotActive)
	})

	t.Run("ownership is checked before amount", func(t *testing.T) {
		line, err := builder.NewCreditLineBuilder().WithNow(now).BuildDomain()
		require.NoError(t, err)

		err = line.Draw(uuid.New(), -1, now)
		assert.ErrorIs(t, err, creditline.ErrBorrowerMismatch)
	})
}

func TestCreditLineRepay(t *testing.T) {
	t.Run("repay decreases utilization", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithLimitCents(1000).WithUtilizedCents(500).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, line.Repay(300, now))
		assert.Equal(t, int64(200), line.Utilized().Cents())
	})

	t.Run("repay floors at zero", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithLimitCents(1000).WithUtilizedCents(100).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, line.Repay(500, now))
		assert.Equal(t, int64(0), line.Utilized().Cents())
	})

	t.Run("repay on non-active line rejected", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithStatus(creditline.StatusSuspended).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, line.Repay(100, now), creditline.ErrNotActive)
	})

	t.Run("non-positive repay rejected", func(t *testing.T) {
		line, err := builder.NewCreditLineBuilder().WithNow(now).BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, line.Repay(0, now), creditline.ErrInvalidAmount)
	})
}

func TestCreditLineTransitions(t *testing.T) {
	t.Run("active to suspended", func(t *testing.T) {
		line, err := builder.NewCreditLineBuilder().WithNow(now).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, line.Suspend(now))
		assert.Equal(t, creditline.StatusSuspended, line.Status())
		require.Len(t, line.Events(), 2)
		assert.Equal(t, creditline.EventSuspended, line.Events()[1].Action)
	})

	t.Run("suspending a non-active line fails with context", func(t *testing.T) {
		for _, status := range []creditline.Status{creditline.StatusSuspended, creditline.StatusClosed} {
			b := builder.NewCreditLineBuilder().WithStatus(status).WithNow(now)
			line, err := b.BuildDomain()
			require.NoError(t, err)
			eventsBefore := len(line.Events())

			err = line.Suspend(now)
			require.ErrorIs(t, err, creditline.ErrInvalidTransition)

			var transitionErr *creditline.TransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, status, transitionErr.Current)
			assert.Equal(t, "suspend", transitionErr.Action)

			assert.Equal(t, status, line.Status())
			assert.Len(t, line.Events(), eventsBefore)
		}
	})

	t.Run("close from active and from suspended", func(t *testing.T) {
		for _, status := range []creditline.Status{creditline.StatusActive, creditline.StatusSuspended} {
			b := builder.NewCreditLineBuilder().WithStatus(status).WithNow(now)
			line, err := b.BuildDomain()
			require.NoError(t, err)

			require.NoError(t, line.Close(now))
			assert.Equal(t, creditline.StatusClosed, line.Status())
			assert.Equal(t, creditline.EventClosed, line.Events()[len(line.Events())-1].Action)
		}
	})

	t.Run("closing a closed line fails", func(t *testing.T) {
		b := builder.NewCreditLineBuilder().WithStatus(creditline.StatusClosed).WithNow(now)
		line, err := b.BuildDomain()
		require.NoError(t, err)

		err = line.Close(now)
		require.ErrorIs(t, err, creditline.ErrInvalidTransition)

		var transitionErr *creditline.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, creditline.StatusClosed, transitionErr.Current)
		assert.Equal(t, "close", transitionErr.Action)
	})
}

func TestBalanceInvariant(t *testing.T) {
	// 0 <= utilized <= limit must hold after every operation, accepted or not.
	b := builder.NewCreditLineBuilder().WithLimitCents(1000).WithNow(now)
	line, err := b.BuildDomain()
	require.NoError(t, err)

	ops := []func() error{
		func() error { return line.Draw(b.BorrowerID(), 400, now) },
		func() error { return line.Draw(b.BorrowerID(), 700, now) }, // over limit
		func() error { return line.Repay(100, now) },
		func() error { return line.Draw(b.BorrowerID(), 700, now) },
		func() error { return line.Repay(5000, now) }, // floors at zero
		func() error { return line.Draw(b.BorrowerID(), -3, now) },
	}
	for i, op := range ops {
		_ = op()
		utilized := line.Utilized().Cents()
		assert.GreaterOrEqual(t, utilized, int64(0), "op %d", i)
		assert.LessOrEqual(t, utilized, line.Limit().Cents(), "op %d", i)
	}
}
