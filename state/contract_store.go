// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/cache/metercacher"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wasmsim/wasmsim/types"
)

const storeCacheSize = 2048

var _ types.Storage = (*ContractStore)(nil)

// ContractStore is one contract's persistent key/value store. Reads go
// through an LRU keyed by the hash of the storage key; a nil entry marks a
// key known to be absent so repeated misses skip the database. Writes go
// through to the database and refresh the cache in place.
type ContractStore struct {
	// cache values are []byte for present keys and nil for known-missing
	// keys
	cache   cache.Cacher
	storeDB database.Database
}

func newContractStore(db database.Database, namespace string, registerer prometheus.Registerer) (*ContractStore, error) {
	readCache, err := metercacher.New(
		namespace,
		registerer,
		&cache.LRU{Size: storeCacheSize},
	)
	if err != nil {
		return nil, err
	}
	return &ContractStore{
		cache:   readCache,
		storeDB: db,
	}, nil
}

func (s *ContractStore) Get(key []byte) ([]byte, error) {
	keyID := cacheKey(key)
	if valueIntf, ok := s.cache.Get(keyID); ok {
		if valueIntf == nil {
			return nil, nil
		}
		return valueIntf.([]byte), nil
	}

	value, err := s.storeDB.Get(key)
	switch {
	case err == database.ErrNotFound:
		s.cache.Put(keyID, nil)
		return nil, nil
	case err != nil:
		return nil, err
	}

	s.cache.Put(keyID, value)
	return value, nil
}

func (s *ContractStore) Set(key []byte, value []byte) error {
	keyID := cacheKey(key)
	if err := s.storeDB.Put(key, value); err != nil {
		return err
	}
	s.cache.Put(keyID, value)
	return nil
}

func (s *ContractStore) Remove(key []byte) error {
	keyID := cacheKey(key)
	if err := s.storeDB.Delete(key); err != nil {
		return err
	}
	s.cache.Put(keyID, nil)
	return nil
}

// Iterate walks the store in ascending key order starting at [start] and
// calls [f] until it returns false or the keys run out.
func (s *ContractStore) Iterate(start []byte, f func(key []byte, value []byte) bool) error {
	it := s.storeDB.NewIteratorWithStart(start)
	defer it.Release()

	for it.Next() {
		if !f(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

func (s *ContractStore) clearCache() {
	s.cache.Flush()
}

func cacheKey(key []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(key))
}
