package contract

import (
	"fmt"
	"math/big"
)

// BigUint is an arbitrary-precision unsigned integer. Unlike big.Int
// it can never hold a negative value: subtracting below zero fails
// with ErrUnderflow and the receiver is left unchanged.
type BigUint struct {
	i big.Int
}

func NewBigUint(v uint64) *BigUint {
	b := &BigUint{}
	b.i.SetUint64(v)
	return b
}

// NewBigUintFromString parses a decimal representation.
func NewBigUintFromString(s string) (*BigUint, error) {
	b := &BigUint{}
	if _, ok := b.i.SetString(s, 10); !ok {
		return nil, fmt.Errorf("%q is not a decimal number: %w", s, ErrBadArgument)
	}
	if b.i.Sign() < 0 {
		return nil, fmt.Errorf("%q is negative: %w", s, ErrBadArgument)
	}
	return b, nil
}

func (b *BigUint) Add(other *BigUint) {
	b.i.Add(&b.i, &other.i)
}

func (b *BigUint) Sub(other *BigUint) error {
	if b.i.Cmp(&other.i) < 0 {
		return ErrUnderflow
	}
	b.i.Sub(&b.i, &other.i)
	return nil
}

func (b *BigUint) Cmp(other *BigUint) int {
	return b.i.Cmp(&other.i)
}

func (b *BigUint) IsZero() bool {
	return b.i.Sign() == 0
}

func (b *BigUint) Clone() *BigUint {
	c := &BigUint{}
	c.i.Set(&b.i)
	return c
}

// String renders the decimal form, which is also the storage encoding.
func (b *BigUint) String() string {
	return b.i.String()
}
