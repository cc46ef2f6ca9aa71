// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simtest

import (
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"

	"github.com/wasmsim/wasmsim/types"
)

const (
	// TestHeight is the block height every fixture environment reports.
	TestHeight uint64 = 12_345

	// TestChainID is the chain id every fixture environment reports.
	TestChainID = "wasmsim-testnet"
)

// ContractAddress is the address fixtures place the dispatched contract at.
var ContractAddress = encodeAddress(ids.ShortID{'c', 'o', 'n', 't', 'r', 'a', 'c', 't'})

// Env returns the deterministic environment fixture. The block time is
// pinned through a mockable clock so repeated calls agree to the
// nanosecond.
func Env() types.Env {
	clock := mockable.Clock{}
	clock.Set(time.Unix(1_571_797_419, 879_305_533))

	return types.Env{
		Block: types.BlockInfo{
			Height:  TestHeight,
			Time:    uint64(clock.Time().UnixNano()),
			ChainID: TestChainID,
		},
		Transaction: &types.TransactionInfo{Index: 3},
		Contract: types.ContractInfo{
			Address: ContractAddress,
		},
	}
}

// Info returns caller metadata for execute and instantiate fixtures.
func Info(sender string, funds ...types.Coin) types.MessageInfo {
	return types.MessageInfo{
		Sender: sender,
		Funds:  funds,
	}
}
