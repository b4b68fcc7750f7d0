package creditline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotActive         = errors.New("credit line is not active")
	ErrBorrowerMismatch  = errors.New("borrower does not own credit line")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrOverLimit         = errors.New("draw would exceed credit limit")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TransitionError carries the state-machine context of a rejected transition.
type TransitionError struct {
	Current Status
	Action  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s credit line in status %q", e.Action, e.Current)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

type Event struct {
	Action     EventAction
	OccurredAt time.Time
}

type CreditLine struct {
	id         uuid.UUID
	borrowerID uuid.UUID
	limit      Money
	utilized   Money
	status     Status
	events     []Event
	createdAt  time.Time
	updatedAt  time.Time
}

func NewCreditLine(id, borrowerID uuid.UUID, limit Money, now time.Time) *CreditLine {
	return &CreditLine{
		id:         id,
		borrowerID: borrowerID,
		limit:      limit,
		status:     StatusActive,
		events:     []Event{{Action: EventCreated, OccurredAt: now}},
		createdAt:  now,
		updatedAt:  now,
	}
}

func ReconstructCreditLine(
	id, borrowerID uuid.UUID,
	limit, utilized Money,
	status Status,
	events []Event,
	createdAt, updatedAt time.Time,
) *CreditLine {
	return &CreditLine{
		id:         id,
		borrowerID: borrowerID,
		limit:      limit,
		utilized:   utilized,
		status:     status,
		events:     events,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Draw increases utilization. Validation order is fixed: status, ownership,
// amount, limit headroom. A rejected draw leaves the line unchanged.
func (c *CreditLine) Draw(borrowerID uuid.UUID, amountCents int64, now time.Time) error {
	if c.status != StatusActive {
		return ErrNotActive
	}
	if borrowerID != c.borrowerID {
		return ErrBorrowerMismatch
	}
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	amount := Money{cents: amountCents}
	if c.utilized.Add(amount).GreaterThan(c.limit) {
		return ErrOverLimit
	}
	c.utilized = c.utilized.Add(amount)
	c.updatedAt = now
	return nil
}

// Repay decreases utilization, floored at zero.
func (c *CreditLine) Repay(amountCents int64, now time.Time) error {
	if c.status != StatusActive {
		return ErrNotActive
	}
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	c.utilized = c.utilized.SubFloor(Money{cents: amountCents})
	c.updatedAt = now
	return nil
}

// Suspend transitions Active → Suspended.
func (c *CreditLine) Suspend(now time.Time) error {
	if c.status != StatusActive {
		return &TransitionError{Current: c.status, Action: "suspend"}
	}
	c.status = StatusSuspended
	c.events = append(c.events, Event{Action: EventSuspended, OccurredAt: now})
	c.updatedAt = now
	return nil
}

// Close transitions Active or Suspended → Closed. Closed is terminal.
func (c *CreditLine) Close(now time.Time) error {
	if c.status == StatusClosed {
		return &TransitionError{Current: c.status, Action: "close"}
	}
	c.status = StatusClosed
	c.events = append(c.events, Event{Action: EventClosed, OccurredAt: now})
	c.updatedAt = now
	return nil
}

func (c *CreditLine) Available() Money {
	return c.limit.SubFloor(c.utilized)
}

func (c *CreditLine) ID() uuid.UUID         { return c.id }
func (c *CreditLine) BorrowerID() uuid.UUID { return c.borrowerID }
func (c *CreditLine) Limit() Money          { return c.limit }
func (c *CreditLine) Utilized() Money       { return c.utilized }
func (c *CreditLine) Status() Status        { return c.status }
func (c *CreditLine) CreatedAt() time.Time  { return c.createdAt }
func (c *CreditLine) UpdatedAt() time.Time  { return c.updatedAt }

// Events returns a copy; the lifecycle log is append-only.
func (c *CreditLine) Events() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}
