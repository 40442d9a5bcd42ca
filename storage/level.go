package storage

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelKV is the persistent KV, backed by a goleveldb database. Values
// go through JSON so that a reopened database yields the same dynamic
// types as SimpleKV does.
type LevelKV struct {
	db *leveldb.DB
}

func OpenLevelKV(path string) (*LevelKV, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return &LevelKV{db: db}, nil
}

// MustOpenLevelKV is OpenLevelKV for KVFactory closures.
func MustOpenLevelKV(path string) *LevelKV {
	lkv, err := OpenLevelKV(path)
	if err != nil {
		panic(err)
	}
	return lkv
}

func (lkv *LevelKV) Get(key string) (interface{}, error) {
	raw, err := lkv.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leveldb get: %w", err)
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decode value of %s: %w", key, err)
	}
	return value, nil
}

func (lkv *LevelKV) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value of %s: %w", key, err)
	}
	if err := lkv.db.Put([]byte(key), raw, nil); err != nil {
		return fmt.Errorf("leveldb put: %w", err)
	}
	return nil
}

func (lkv *LevelKV) Del(key string) error {
	ok, err := lkv.db.Has([]byte(key), nil)
	if err != nil {
		return fmt.Errorf("leveldb has: %w", err)
	}
	if !ok {
		return ErrKeyNotFound
	}
	if err := lkv.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("leveldb delete: %w", err)
	}
	return nil
}

func (lkv *LevelKV) Iter(fn func(key string, value interface{}) error) error {
	iter := lkv.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
		var value interface{}
		if err := json.Unmarshal(iter.Value(), &value); err != nil {
			return fmt.Errorf("decode value of %s: %w", iter.Key(), err)
		}
		if err := fn(string(iter.Key()), value); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (lkv *LevelKV) Hash() string {
	return hashOf(lkv)
}

func (lkv *LevelKV) Close() error {
	return lkv.db.Close()
}
