// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	contractsPrefix = []byte("contracts")
	registryPrefix  = []byte("registry")
)

// State layers a versioned view over the base database so everything
// written during one dispatch can be committed or abandoned atomically. It
// also namespaces the base database: one prefix per contract instance plus
// one for the code registry.
type State struct {
	baseDB      *versiondb.Database
	contractsDB database.Database
	registryDB  database.Database
	metrics     *prometheus.Registry

	lock sync.Mutex
	// stores caches the per-contract handles so every caller of
	// ContractStore shares one read cache per address.
	stores map[string]*ContractStore
}

func New(db database.Database) *State {
	baseDB := versiondb.New(db)
	return &State{
		baseDB:      baseDB,
		contractsDB: prefixdb.New(contractsPrefix, baseDB),
		registryDB:  prefixdb.New(registryPrefix, baseDB),
		metrics:     prometheus.NewRegistry(),
		stores:      make(map[string]*ContractStore),
	}
}

// ContractStore returns the persistent store namespaced to [addr],
// creating it on first use.
func (s *State) ContractStore(addr string) (*ContractStore, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if store, ok := s.stores[addr]; ok {
		return store, nil
	}

	store, err := newContractStore(
		prefixdb.New([]byte(addr), s.contractsDB),
		metricNamespace(addr),
		s.metrics,
	)
	if err != nil {
		return nil, err
	}
	s.stores[addr] = store
	return store, nil
}

// RegistryStore returns the database namespace reserved for the code
// registry.
func (s *State) RegistryStore() database.Database {
	return s.registryDB
}

// Metrics exposes the cache counters of every store created so far.
func (s *State) Metrics() prometheus.Gatherer {
	return s.metrics
}

// Commit flushes all versioned writes to the base database.
func (s *State) Commit() error {
	return s.baseDB.Commit()
}

// Abort drops all uncommitted writes. Store read caches are cleared so
// reads after Abort cannot observe abandoned values.
func (s *State) Abort() {
	s.baseDB.Abort()

	s.lock.Lock()
	defer s.lock.Unlock()
	for _, store := range s.stores {
		store.clearCache()
	}
}

func (s *State) Close() error {
	return s.baseDB.Close()
}

// metricNamespace derives a prometheus-safe namespace from a contract
// address.
func metricNamespace(addr string) string {
	safe := make([]rune, 0, len(addr))
	for _, r := range addr {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			safe = append(safe, r)
		default:
			safe = append(safe, '_')
		}
	}
	return "contract_store_" + string(safe)
}
