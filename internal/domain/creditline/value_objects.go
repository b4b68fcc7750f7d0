package creditline

import "errors"

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// SubFloor subtracts, flooring the result at zero.
func (m Money) SubFloor(other Money) Money {
	remaining := m.cents - other.cents
	if remaining < 0 {
		remaining = 0
	}
	return Money{cents: remaining}
}

func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}
