// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubMsgConstructors(t *testing.T) {
	require := require.New(t)

	send := CosmosMsg[Empty]{
		Bank: &BankMsg{Send: &SendMsg{ToAddress: "rcpt", Amount: []Coin{NewCoin(3, "uatom")}}},
	}

	fireAndForget := NewSubMsg(send)
	require.Equal(uint64(0), fireAndForget.ID)
	require.Equal(ReplyNever, fireAndForget.ReplyOn)
	require.Nil(fireAndForget.GasLimit)
	require.Equal(send, fireAndForget.Msg)

	correlated := ReplySubMsg(12, send, ReplyError)
	require.Equal(uint64(12), correlated.ID)
	require.Equal(ReplyError, correlated.ReplyOn)
	require.Equal(send, correlated.Msg)
}

// A union value encodes as an object with exactly the populated variant.
func TestCosmosMsgEncodesSingleVariant(t *testing.T) {
	require := require.New(t)

	msg := CosmosMsg[Empty]{
		Staking: &StakingMsg{Undelegate: &UndelegateMsg{Validator: "val", Amount: NewCoin(4, "uatom")}},
	}
	encoded, err := json.Marshal(msg)
	require.NoError(err)

	variants := map[string]json.RawMessage{}
	require.NoError(json.Unmarshal(encoded, &variants))
	require.Len(variants, 1)
	require.Contains(variants, "staking")

	decoded := CosmosMsg[Empty]{}
	require.NoError(json.Unmarshal(encoded, &decoded))
	require.Equal(msg, decoded)
}

func TestCustomVariantEncodesExtension(t *testing.T) {
	require := require.New(t)

	type hostMint struct {
		Amount uint64 `json:"amount"`
	}

	encoded, err := json.Marshal(CosmosMsg[hostMint]{Custom: &hostMint{Amount: 9}})
	require.NoError(err)
	require.JSONEq(`{"custom":{"amount":9}}`, string(encoded))
}

func TestNewCoin(t *testing.T) {
	require := require.New(t)
	require.Equal(Coin{Denom: "uatom", Amount: "12345"}, NewCoin(12345, "uatom"))
}
