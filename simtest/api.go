// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package simtest provides the fixtures contract tests are written
// against: a deterministic environment, an address scheme over 20-byte
// short ids, hookable chain queries and memory-backed stores.
package simtest

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"

	"github.com/wasmsim/wasmsim/types"
)

var _ types.Api = (*mockApi)(nil)

// mockApi maps between human addresses (checksummed hex) and canonical
// 20-byte short ids.
type mockApi struct{}

// Api returns the address utilities every fixture in this package agrees
// on.
func Api() types.Api {
	return mockApi{}
}

func (mockApi) ValidateAddress(human string) error {
	_, err := mockApi{}.CanonicalAddress(human)
	return err
}

func (mockApi) CanonicalAddress(human string) ([]byte, error) {
	canonical, err := formatting.Decode(formatting.Hex, human)
	if err != nil {
		return nil, err
	}
	if _, err := ids.ToShortID(canonical); err != nil {
		return nil, err
	}
	return canonical, nil
}

func (mockApi) HumanAddress(canonical []byte) (string, error) {
	if _, err := ids.ToShortID(canonical); err != nil {
		return "", err
	}
	return formatting.Encode(formatting.Hex, canonical)
}

// Address returns a fresh well-formed address.
func Address() string {
	return encodeAddress(ids.GenerateTestShortID())
}

func encodeAddress(id ids.ShortID) string {
	addr, err := formatting.Encode(formatting.Hex, id.Bytes())
	if err != nil {
		panic(err)
	}
	return addr
}
