package creditline

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusClosed    Status = "closed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusClosed:
		return true
	default:
		return false
	}
}

type TransactionType string

const (
	TransactionDraw         TransactionType = "draw"
	TransactionRepayment    TransactionType = "repayment"
	TransactionStatusChange TransactionType = "status_change"
)

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDraw, TransactionRepayment, TransactionStatusChange:
		return true
	default:
		return false
	}
}

type EventAction string

const (
	EventCreated   EventAction = "created"
	EventSuspended EventAction = "suspended"
	EventClosed    EventAction = "closed"
)
