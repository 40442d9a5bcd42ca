package contract

import (
	"fmt"
	"math"
	"strconv"

	"go.dedis.ch/epfer/storage"
)

// Storage mappers bind a fixed storage key to a typed slot, the way a
// contract declares its persistent values. An absent slot reads as
// zero. Values are stored as decimal strings so every KV backend
// round-trips them unchanged.

// BigUintMapper is the mapper for an arbitrary-precision unsigned
// integer slot.
type BigUintMapper struct {
	kv  storage.KV
	key string
}

func NewBigUintMapper(kv storage.KV, key string) BigUintMapper {
	return BigUintMapper{kv: kv, key: key}
}

func (m BigUintMapper) Key() string {
	return m.key
}

func (m BigUintMapper) Get() (*BigUint, error) {
	value, err := m.kv.Get(m.key)
	if err == storage.ErrKeyNotFound {
		return NewBigUint(0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", m.key, err)
	}
	raw, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("slot %s is corrupted: %v", m.key, value)
	}
	v, err := NewBigUintFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("slot %s is corrupted: %w", m.key, err)
	}
	return v, nil
}

func (m BigUintMapper) Set(v *BigUint) error {
	if err := m.kv.Put(m.key, v.String()); err != nil {
		return fmt.Errorf("write slot %s: %w", m.key, err)
	}
	return nil
}

// Update reads the slot, applies fn and writes the result back. When
// fn fails nothing is written.
func (m BigUintMapper) Update(fn func(v *BigUint) error) error {
	v, err := m.Get()
	if err != nil {
		return err
	}
	if err := fn(v); err != nil {
		return err
	}
	return m.Set(v)
}

// U64Mapper is the mapper for a 64-bit unsigned integer slot.
type U64Mapper struct {
	kv  storage.KV
	key string
}

func NewU64Mapper(kv storage.KV, key string) U64Mapper {
	return U64Mapper{kv: kv, key: key}
}

func (m U64Mapper) Key() string {
	return m.key
}

func (m U64Mapper) Get() (uint64, error) {
	value, err := m.kv.Get(m.key)
	if err == storage.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read slot %s: %w", m.key, err)
	}
	raw, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("slot %s is corrupted: %v", m.key, value)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("slot %s is corrupted: %w", m.key, err)
	}
	return v, nil
}

func (m U64Mapper) Set(v uint64) error {
	if err := m.kv.Put(m.key, strconv.FormatUint(v, 10)); err != nil {
		return fmt.Errorf("write slot %s: %w", m.key, err)
	}
	return nil
}

func (m U64Mapper) Update(fn func(v uint64) (uint64, error)) error {
	v, err := m.Get()
	if err != nil {
		return err
	}
	v, err = fn(v)
	if err != nil {
		return err
	}
	return m.Set(v)
}

func (m U64Mapper) Increment() error {
	return m.Update(func(v uint64) (uint64, error) {
		if v == math.MaxUint64 {
			return 0, ErrOverflow
		}
		return v + 1, nil
	})
}

func (m U64Mapper) Decrement() error {
	return m.Update(func(v uint64) (uint64, error) {
		if v == 0 {
			return 0, ErrUnderflow
		}
		return v - 1, nil
	})
}
