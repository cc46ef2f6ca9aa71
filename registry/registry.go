// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	log "github.com/inconshreveable/log15"

	"github.com/wasmsim/wasmsim/contract"
	"github.com/wasmsim/wasmsim/state"
	"github.com/wasmsim/wasmsim/types"
)

var (
	// ErrCodeNotFound is returned when a code id was never registered or,
	// for Contract, when its callbacks are not loaded in this process.
	ErrCodeNotFound = errors.New("code not found")

	codePrefix  = []byte("code")
	lastCodeKey = []byte("lastCodeID")
)

// codeRecord is the persisted half of a registration. The callbacks
// themselves are process memory and must be registered again on restart.
type codeRecord struct {
	Creator  string `serialize:"true"`
	Checksum ids.ID `serialize:"true"`
}

// CodeInfo describes one registered contract code.
type CodeInfo struct {
	CodeID   uint64
	Creator  string
	Checksum ids.ID
}

// Registry hands out code ids for contracts and resolves them back to the
// runnable callbacks. Code ids are sequential starting at 1; the counter
// and the per-code metadata survive restarts through the shared state,
// while the callback table is rebuilt by re-registering on boot.
type Registry[C types.CustomMsg, Q types.CustomQuery] struct {
	state  *state.State
	baseDB database.Database
	codeDB database.Database

	lock      sync.RWMutex
	contracts map[uint64]contract.Contract[C, Q]
}

func New[C types.CustomMsg, Q types.CustomQuery](st *state.State) *Registry[C, Q] {
	baseDB := st.RegistryStore()
	return &Registry[C, Q]{
		state:     st,
		baseDB:    baseDB,
		codeDB:    prefixdb.New(codePrefix, baseDB),
		contracts: make(map[uint64]contract.Contract[C, Q]),
	}
}

// Register stores [c] under the next sequential code id and persists the
// registration.
func (r *Registry[C, Q]) Register(creator string, c contract.Contract[C, Q]) (uint64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	codeID, err := r.nextCodeID()
	if err != nil {
		return 0, err
	}

	record := codeRecord{
		Creator:  creator,
		Checksum: checksum(codeID),
	}
	recordBytes, err := Codec.Marshal(CodecVersion, &record)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal code info for code %d: %w", codeID, err)
	}
	if err := r.codeDB.Put(codeKey(codeID), recordBytes); err != nil {
		return 0, fmt.Errorf("failed to put code info for code %d: %w", codeID, err)
	}
	if err := r.state.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit registration of code %d: %w", codeID, err)
	}

	r.contracts[codeID] = c
	log.Info("registered contract code", "codeID", codeID, "creator", creator)
	return codeID, nil
}

// Contract resolves [codeID] to the callbacks registered in this process.
func (r *Registry[C, Q]) Contract(codeID uint64) (contract.Contract[C, Q], error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	c, ok := r.contracts[codeID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCodeNotFound, codeID)
	}
	return c, nil
}

// GetCode reads the persisted metadata of [codeID].
func (r *Registry[C, Q]) GetCode(codeID uint64) (CodeInfo, error) {
	recordBytes, err := r.codeDB.Get(codeKey(codeID))
	switch {
	case err == database.ErrNotFound:
		return CodeInfo{}, fmt.Errorf("%w: %d", ErrCodeNotFound, codeID)
	case err != nil:
		return CodeInfo{}, fmt.Errorf("failed to get code info for code %d: %w", codeID, err)
	}

	record := codeRecord{}
	if _, err := Codec.Unmarshal(recordBytes, &record); err != nil {
		return CodeInfo{}, fmt.Errorf("failed to parse code info for code %d: %w", codeID, err)
	}
	return CodeInfo{
		CodeID:   codeID,
		Creator:  record.Creator,
		Checksum: record.Checksum,
	}, nil
}

// Codes lists the persisted metadata of every registered code in ascending
// code id order.
func (r *Registry[C, Q]) Codes() ([]CodeInfo, error) {
	it := r.codeDB.NewIterator()
	defer it.Release()

	var codes []CodeInfo
	for it.Next() {
		key := it.Key()
		if len(key) != wrappers.LongLen {
			return nil, fmt.Errorf("unexpected code key length %d", len(key))
		}

		record := codeRecord{}
		if _, err := Codec.Unmarshal(it.Value(), &record); err != nil {
			return nil, fmt.Errorf("failed to parse code info: %w", err)
		}
		codes = append(codes, CodeInfo{
			CodeID:   binary.BigEndian.Uint64(key),
			Creator:  record.Creator,
			Checksum: record.Checksum,
		})
	}
	return codes, it.Error()
}

// nextCodeID bumps the persisted registration counter. Big-endian keys keep
// the code iterator in numeric order.
func (r *Registry[C, Q]) nextCodeID() (uint64, error) {
	next := uint64(1)
	lastBytes, err := r.baseDB.Get(lastCodeKey)
	switch {
	case err == nil:
		if len(lastBytes) != wrappers.LongLen {
			return 0, fmt.Errorf("unexpected last code id length %d", len(lastBytes))
		}
		next = binary.BigEndian.Uint64(lastBytes) + 1
	case err != database.ErrNotFound:
		return 0, fmt.Errorf("failed to get last code id: %w", err)
	}

	if err := r.baseDB.Put(lastCodeKey, codeKey(next)); err != nil {
		return 0, fmt.Errorf("failed to update last code id: %w", err)
	}
	return next, nil
}

func codeKey(codeID uint64) []byte {
	key := make([]byte, wrappers.LongLen)
	binary.BigEndian.PutUint64(key, codeID)
	return key
}

// checksum derives the stand-in hash recorded for [codeID]. There is no
// compiled artifact to hash in an in-process registry, so the id itself is
// hashed to keep the field stable and unique per code.
func checksum(codeID uint64) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(codeKey(codeID)))
}
