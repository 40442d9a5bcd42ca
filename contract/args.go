package contract

import (
	"fmt"
	"strconv"
)

// Kind of a Value. Numbers are untyped until an accessor interprets
// them, so the same calldata serves u64 and big-uint parameters.
type Kind int

const (
	KindVoid Kind = iota
	KindNumber
	KindString
)

// Value is one positional argument or one endpoint result, carried in
// its textual form.
type Value struct {
	kind Kind
	raw  string
}

func Void() Value {
	return Value{kind: KindVoid}
}

func NumberValue(raw string) Value {
	return Value{kind: KindNumber, raw: raw}
}

func U64Value(v uint64) Value {
	return Value{kind: KindNumber, raw: strconv.FormatUint(v, 10)}
}

func BigUintValue(v *BigUint) Value {
	return Value{kind: KindNumber, raw: v.String()}
}

func StringValue(s string) Value {
	return Value{kind: KindString, raw: s}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsVoid() bool {
	return v.kind == KindVoid
}

func (v Value) String() string {
	return v.raw
}

// Args are the positional arguments of one call.
type Args []Value

func NewArgs(values ...Value) Args {
	return Args(values)
}

func (a Args) Len() int {
	return len(a)
}

func (a Args) at(i int, kind Kind) (Value, error) {
	if i < 0 || i >= len(a) {
		return Value{}, fmt.Errorf("argument %d missing: %w", i, ErrBadArgument)
	}
	if a[i].kind != kind {
		return Value{}, fmt.Errorf("argument %d has wrong kind: %w", i, ErrBadArgument)
	}
	return a[i], nil
}

func (a Args) BigUint(i int) (*BigUint, error) {
	value, err := a.at(i, KindNumber)
	if err != nil {
		return nil, err
	}
	return NewBigUintFromString(value.raw)
}

func (a Args) U64(i int) (uint64, error) {
	value, err := a.at(i, KindNumber)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(value.raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("argument %d is not a u64: %w", i, ErrBadArgument)
	}
	return v, nil
}

func (a Args) String(i int) (string, error) {
	value, err := a.at(i, KindString)
	if err != nil {
		return "", err
	}
	return value.raw, nil
}
