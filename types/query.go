// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"fmt"
)

// QueryRequest is the union of queries a contract can issue against the
// chain. Exactly one field is non-nil in a well-formed value.
type QueryRequest[Q CustomQuery] struct {
	Bank     *BankQuery     `json:"bank,omitempty"`
	Custom   *Q             `json:"custom,omitempty"`
	Staking  *StakingQuery  `json:"staking,omitempty"`
	Wasm     *WasmQuery     `json:"wasm,omitempty"`
	Ibc      *IbcQuery      `json:"ibc,omitempty"`
	Stargate *StargateQuery `json:"stargate,omitempty"`
}

type BankQuery struct {
	Balance     *BalanceQuery     `json:"balance,omitempty"`
	AllBalances *AllBalancesQuery `json:"all_balances,omitempty"`
}

type BalanceQuery struct {
	Address string `json:"address"`
	Denom   string `json:"denom"`
}

type AllBalancesQuery struct {
	Address string `json:"address"`
}

// BalanceResponse is the answer to a BalanceQuery.
type BalanceResponse struct {
	Amount Coin `json:"amount"`
}

// AllBalancesResponse is the answer to an AllBalancesQuery.
type AllBalancesResponse struct {
	Amount []Coin `json:"amount"`
}

type StakingQuery struct {
	BondedDenom    *struct{}            `json:"bonded_denom,omitempty"`
	AllDelegations *AllDelegationsQuery `json:"all_delegations,omitempty"`
	Delegation     *DelegationQuery     `json:"delegation,omitempty"`
}

type AllDelegationsQuery struct {
	Delegator string `json:"delegator"`
}

type DelegationQuery struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
}

type WasmQuery struct {
	// Smart calls the query entry point of another contract.
	Smart *SmartQuery `json:"smart,omitempty"`
	// Raw reads one key of another contract's store verbatim.
	Raw          *RawQuery          `json:"raw,omitempty"`
	ContractInfo *ContractInfoQuery `json:"contract_info,omitempty"`
}

type SmartQuery struct {
	ContractAddr string `json:"contract_addr"`
	Msg          []byte `json:"msg"`
}

type RawQuery struct {
	ContractAddr string `json:"contract_addr"`
	Key          []byte `json:"key"`
}

type ContractInfoQuery struct {
	ContractAddr string `json:"contract_addr"`
}

type IbcQuery struct {
	PortID       *PortIDQuery       `json:"port_id,omitempty"`
	ListChannels *ListChannelsQuery `json:"list_channels,omitempty"`
	Channel      *ChannelQuery      `json:"channel,omitempty"`
}

type PortIDQuery struct{}

type ListChannelsQuery struct {
	PortID string `json:"port_id,omitempty"`
}

type ChannelQuery struct {
	ChannelID string `json:"channel_id"`
	PortID    string `json:"port_id,omitempty"`
}

// StargateQuery is an opaque protobuf passthrough for queries the union
// does not model natively.
type StargateQuery struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

// Querier is the raw query capability handed to a contract. Implementations
// answer an encoded QueryRequest with an encoded response.
type Querier interface {
	// RawQuery answers a JSON-encoded query request. The response encoding
	// is variant specific.
	RawQuery(request []byte) ([]byte, error)
}

// QuerierWrapper types the raw query capability at a concrete custom query
// extension. It adds no state beyond the wrapped querier, so re-wrapping at
// a different extension is free.
type QuerierWrapper[Q CustomQuery] struct {
	querier Querier
}

func NewQuerierWrapper[Q CustomQuery](querier Querier) QuerierWrapper[Q] {
	return QuerierWrapper[Q]{querier: querier}
}

// Raw returns the untyped querier this wrapper was built over.
func (q QuerierWrapper[Q]) Raw() Querier {
	return q.querier
}

// Query encodes [request] and forwards it to the underlying querier.
func (q QuerierWrapper[Q]) Query(request QueryRequest[Q]) ([]byte, error) {
	requestBytes, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query request: %w", err)
	}
	return q.querier.RawQuery(requestBytes)
}

// QueryInto runs Query and decodes the response into [response].
func (q QuerierWrapper[Q]) QueryInto(request QueryRequest[Q], response any) error {
	responseBytes, err := q.Query(request)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(responseBytes, response); err != nil {
		return fmt.Errorf("failed to decode query response: %w", err)
	}
	return nil
}
