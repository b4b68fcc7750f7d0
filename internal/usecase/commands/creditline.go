package commands

import (
	"context"

	"creditline-service/internal/domain/creditline"
	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/pkg/errs"
	"creditline-service/internal/telemetry"

	"github.com/google/uuid"
)

type CreateCreditLineInput struct {
	BorrowerID uuid.UUID
	LimitCents int64
}

type CreditLineCommands interface {
	Create(ctx context.Context, in CreateCreditLineInput) (*creditline.CreditLine, error)
	Draw(ctx context.Context, lineID, borrowerID uuid.UUID, amountCents int64, currency string) (*creditline.CreditLine, error)
	Repay(ctx context.Context, lineID uuid.UUID, amountCents int64, currency string) (*creditline.CreditLine, error)
	Suspend(ctx context.Context, lineID uuid.UUID) (*creditline.CreditLine, error)
	Close(ctx context.Context, lineID uuid.UUID) (*creditline.CreditLine, error)
}

type creditLineCommandsImpl struct {
	lines CreditLineRepository
	txns  TransactionRepository
	clock clock.Clock
}

func NewCreditLineCommands(lines CreditLineRepository, txns TransactionRepository, clk clock.Clock) CreditLineCommands {
	return &creditLineCommandsImpl{lines: lines, txns: txns, clock: clk}
}

func (uc *creditLineCommandsImpl) Create(ctx context.Context, in CreateCreditLineInput) (*creditline.CreditLine, error) {
	limit, err := creditline.NewMoney(in.LimitCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	now := uc.clock.Now()
	line := creditline.NewCreditLine(uuid.New(), in.BorrowerID, limit, now)
	if err := uc.lines.Create(ctx, line); err != nil {
		return nil, err
	}
	if err := uc.txns.Append(ctx, creditline.NewStatusChangeTransaction(line.ID(), creditline.EventCreated, now)); err != nil {
		return nil, err
	}
	return line, nil
}

func (uc *creditLineCommandsImpl) Draw(ctx context.Context, lineID, borrowerID uuid.UUID, amountCents int64, currency string) (*creditline.CreditLine, error) {
	now := uc.clock.Now()
	line, err := uc.lines.Update(ctx, lineID, func(l *creditline.CreditLine) error {
		return l.Draw(borrowerID, amountCents, now)
	})
	if err != nil {
		return nil, err
	}

	amount := creditline.MustMoney(amountCents)
	if err := uc.txns.Append(ctx, creditline.NewDrawTransaction(lineID, amount, currency, now)); err != nil {
		return nil, err
	}
	telemetry.DrawsTotal.Inc()
	return line, nil
}

func (uc *creditLineCommandsImpl) Repay(ctx context.Context, lineID uuid.UUID, amountCents int64, currency string) (*creditline.CreditLine, error) {
	now := uc.clock.Now()
	line, err := uc.lines.Update(ctx, lineID, func(l *creditline.CreditLine) error {
		return l.Repay(amountCents, now)
	})
	if err != nil {
		return nil, err
	}

	amount := creditline.MustMoney(amountCents)
	if err := uc.txns.Append(ctx, creditline.NewRepaymentTransaction(lineID, amount, currency, now)); err != nil {
		return nil, err
	}
	telemetry.RepaymentsTotal.Inc()
	return line, nil
}

func (uc *creditLineCommandsImpl) Suspend(ctx context.Context, lineID uuid.UUID) (*creditline.CreditLine, error) {
	now := uc.clock.Now()
	line, err := uc.lines.Update(ctx, lineID, func(l *creditline.CreditLine) error {
		return l.Suspend(now)
	})
	if err != nil {
		return nil, err
	}
	if err := uc.txns.Append(ctx, creditline.NewStatusChangeTransaction(lineID, creditline.EventSuspended, now)); err != nil {
		return nil, err
	}
	return line, nil
}

func (uc *creditLineCommandsImpl) Close(ctx context.Context, lineID uuid.UUID) (*creditline.CreditLine, error) {
	now := uc.clock.Now()
	line, err := uc.lines.Update(ctx, lineID, func(l *creditline.CreditLine) error {
		return l.Close(now)
	})
	if err != nil {
		return nil, err
	}
	if err := uc.txns.Append(ctx, creditline.NewStatusChangeTransaction(lineID, creditline.EventClosed, now)); err != nil {
		return nil, err
	}
	return line, nil
}
