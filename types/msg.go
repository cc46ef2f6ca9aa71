// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

type (
	// CustomMsg is the constraint on chain-specific sub-message extensions.
	// Concrete types must round-trip through JSON.
	CustomMsg any
	// CustomQuery is the constraint on chain-specific query extensions.
	// Concrete types must round-trip through JSON.
	CustomQuery any
)

// Empty is the baseline extension type for contracts that declare no
// chain-specific message or query variants.
type Empty struct{}

// CosmosMsg is the union of messages a contract can emit. Exactly one field
// is non-nil in a well-formed value; the populated field determines the
// variant on the wire.
type CosmosMsg[C CustomMsg] struct {
	Bank         *BankMsg         `json:"bank,omitempty"`
	Custom       *C               `json:"custom,omitempty"`
	Staking      *StakingMsg      `json:"staking,omitempty"`
	Distribution *DistributionMsg `json:"distribution,omitempty"`
	Wasm         *WasmMsg         `json:"wasm,omitempty"`
	Ibc          *IbcMsg          `json:"ibc,omitempty"`
	Stargate     *StargateMsg     `json:"stargate,omitempty"`
}

// BankMsg moves native tokens held by the emitting contract.
type BankMsg struct {
	Send *SendMsg `json:"send,omitempty"`
	Burn *BurnMsg `json:"burn,omitempty"`
}

// SendMsg sends native tokens from the contract to another account.
type SendMsg struct {
	ToAddress string `json:"to_address"`
	Amount    []Coin `json:"amount"`
}

// BurnMsg removes native tokens from the contract's balance.
type BurnMsg struct {
	Amount []Coin `json:"amount"`
}

type StakingMsg struct {
	Delegate   *DelegateMsg   `json:"delegate,omitempty"`
	Undelegate *UndelegateMsg `json:"undelegate,omitempty"`
	Redelegate *RedelegateMsg `json:"redelegate,omitempty"`
}

type DelegateMsg struct {
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type UndelegateMsg struct {
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type RedelegateMsg struct {
	SrcValidator string `json:"src_validator"`
	DstValidator string `json:"dst_validator"`
	Amount       Coin   `json:"amount"`
}

type DistributionMsg struct {
	SetWithdrawAddress      *SetWithdrawAddressMsg      `json:"set_withdraw_address,omitempty"`
	WithdrawDelegatorReward *WithdrawDelegatorRewardMsg `json:"withdraw_delegator_reward,omitempty"`
}

// SetWithdrawAddressMsg changes the account staking rewards are paid to.
type SetWithdrawAddressMsg struct {
	Address string `json:"address"`
}

// WithdrawDelegatorRewardMsg claims the pending rewards from one validator.
type WithdrawDelegatorRewardMsg struct {
	Validator string `json:"validator"`
}

// WasmMsg targets another contract on the same chain.
type WasmMsg struct {
	Execute     *ExecuteMsg     `json:"execute,omitempty"`
	Instantiate *InstantiateMsg `json:"instantiate,omitempty"`
	Migrate     *MigrateMsg     `json:"migrate,omitempty"`
	UpdateAdmin *UpdateAdminMsg `json:"update_admin,omitempty"`
	ClearAdmin  *ClearAdminMsg  `json:"clear_admin,omitempty"`
}

// ExecuteMsg calls the execute entry point of another contract. Msg is the
// raw JSON the target decodes itself.
type ExecuteMsg struct {
	ContractAddr string `json:"contract_addr"`
	Msg          []byte `json:"msg"`
	Funds        []Coin `json:"funds"`
}

// InstantiateMsg creates a new instance of an already registered code.
type InstantiateMsg struct {
	Admin  string `json:"admin,omitempty"`
	CodeID uint64 `json:"code_id"`
	Msg    []byte `json:"msg"`
	Funds  []Coin `json:"funds"`
	Label  string `json:"label"`
}

// MigrateMsg points an existing instance at a new code id.
type MigrateMsg struct {
	ContractAddr string `json:"contract_addr"`
	NewCodeID    uint64 `json:"new_code_id"`
	Msg          []byte `json:"msg"`
}

type UpdateAdminMsg struct {
	ContractAddr string `json:"contract_addr"`
	Admin        string `json:"admin"`
}

type ClearAdminMsg struct {
	ContractAddr string `json:"contract_addr"`
}

type IbcMsg struct {
	Transfer     *TransferMsg     `json:"transfer,omitempty"`
	SendPacket   *SendPacketMsg   `json:"send_packet,omitempty"`
	CloseChannel *CloseChannelMsg `json:"close_channel,omitempty"`
}

// TransferMsg starts an ICS-20 token transfer over an existing channel.
type TransferMsg struct {
	ChannelID string     `json:"channel_id"`
	ToAddress string     `json:"to_address"`
	Amount    Coin       `json:"amount"`
	Timeout   IbcTimeout `json:"timeout"`
}

// SendPacketMsg sends a raw packet over a channel owned by the contract.
type SendPacketMsg struct {
	ChannelID string     `json:"channel_id"`
	Data      []byte     `json:"data"`
	Timeout   IbcTimeout `json:"timeout"`
}

type CloseChannelMsg struct {
	ChannelID string `json:"channel_id"`
}

// IbcTimeout bounds how long a packet may stay in flight. At least one of
// the two limits is set.
type IbcTimeout struct {
	Block *IbcTimeoutBlock `json:"block,omitempty"`
	// Timestamp in nanoseconds since the unix epoch.
	Timestamp uint64 `json:"timestamp,omitempty"`
}

// IbcTimeoutBlock is a block height on the counterparty chain.
type IbcTimeoutBlock struct {
	Revision uint64 `json:"revision"`
	Height   uint64 `json:"height"`
}

// StargateMsg is an opaque protobuf passthrough for messages the union does
// not model natively.
type StargateMsg struct {
	TypeURL string `json:"type_url"`
	Value   []byte `json:"value"`
}
