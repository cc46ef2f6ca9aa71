// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "strconv"

// Env describes the environment a contract entry point runs in. It is
// supplied by the caller on every dispatch and passed through to the
// wrapped implementation unchanged.
type Env struct {
	Block       BlockInfo        `json:"block"`
	Transaction *TransactionInfo `json:"transaction"`
	Contract    ContractInfo     `json:"contract"`
}

// BlockInfo describes the block a dispatch is evaluated against.
type BlockInfo struct {
	// Height of the block this dispatch is executed in.
	Height uint64 `json:"height"`
	// Time in nanoseconds since the unix epoch.
	Time    uint64 `json:"time"`
	ChainID string `json:"chain_id"`
}

// TransactionInfo locates a dispatch inside its block.
type TransactionInfo struct {
	// Position of this transaction in the block. The first transaction has
	// index 0. Along with BlockInfo.Height this uniquely identifies the
	// transaction on the chain.
	Index uint32 `json:"index"`
}

// ContractInfo describes the contract instance being dispatched to.
type ContractInfo struct {
	Address string `json:"address"`
}

// MessageInfo carries the caller identity for execute and instantiate.
type MessageInfo struct {
	// Sender is the address executing the contract.
	Sender string `json:"sender"`
	// Funds sent to the contract along with this message.
	Funds []Coin `json:"funds"`
}

// Coin is a string representation of an amount of a single denomination.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// NewCoin is a convenience constructor for a single coin.
func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: strconv.FormatUint(amount, 10)}
}
