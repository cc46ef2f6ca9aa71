// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simtest

import (
	"github.com/ava-labs/avalanchego/database/memdb"

	"github.com/wasmsim/wasmsim/state"
	"github.com/wasmsim/wasmsim/types"
)

// DepsMut returns an exclusive context bundle backed by a fresh in-memory
// store at ContractAddress. Queries go to [querier].
func DepsMut[Q types.CustomQuery](querier types.Querier) types.DepsMut[Q] {
	return types.DepsMut[Q]{
		Storage: Storage(),
		Api:     Api(),
		Querier: types.NewQuerierWrapper[Q](querier),
	}
}

// Deps returns a read-only context bundle backed by a fresh in-memory store
// at ContractAddress. Queries go to [querier].
func Deps[Q types.CustomQuery](querier types.Querier) types.Deps[Q] {
	return types.Deps[Q]{
		Storage: Storage(),
		Api:     Api(),
		Querier: types.NewQuerierWrapper[Q](querier),
	}
}

// Storage returns a fresh in-memory contract store.
func Storage() types.Storage {
	store, err := state.New(memdb.New()).ContractStore(ContractAddress)
	if err != nil {
		panic(err)
	}
	return store
}
