package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SimpleKV is the in-memory KV, used for account state and as the
// default contract storage backend.
type SimpleKV struct {
	Internal map[string]interface{}
}

func NewSimpleKV() *SimpleKV {
	return &SimpleKV{Internal: make(map[string]interface{})}
}

func (skv *SimpleKV) Get(key string) (interface{}, error) {
	value, ok := skv.Internal[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (skv *SimpleKV) Put(key string, value interface{}) error {
	skv.Internal[key] = value
	return nil
}

func (skv *SimpleKV) Del(key string) error {
	_, ok := skv.Internal[key]
	if !ok {
		return ErrKeyNotFound
	}

	delete(skv.Internal, key)
	return nil
}

func (skv *SimpleKV) Iter(fn func(key string, value interface{}) error) error {
	for key, value := range skv.Internal {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a deep copy, done through a JSON round trip.
func (skv *SimpleKV) Copy() KV {
	serialized, err := json.Marshal(skv)
	if err != nil {
		panic(err)
	}
	var ret *SimpleKV = &SimpleKV{}
	err = json.Unmarshal(serialized, ret)
	if err != nil {
		panic(err)
	}
	return ret
}

func (skv *SimpleKV) String() string {
	keys := make([]string, 0, len(skv.Internal))
	for key := range skv.Internal {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := new(strings.Builder)
	out.WriteString("{")
	for i, key := range keys {
		if i > 0 {
			out.WriteString(",")
		}
		out.WriteString(fmt.Sprintf("%s->%v", key, skv.Internal[key]))
	}
	out.WriteString("}")
	return out.String()
}

func (skv *SimpleKV) Hash() string {
	return hashOf(skv)
}
