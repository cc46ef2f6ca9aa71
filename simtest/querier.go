// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simtest

import "github.com/wasmsim/wasmsim/types"

var _ types.Querier = (*Querier)(nil)

// Querier is a hookable stand-in for the chain's query capability. Tests
// that expect queries set RawQueryFn; a dispatch that queries without a
// hook is a test bug and panics.
type Querier struct {
	RawQueryFn func(request []byte) ([]byte, error)
}

func (q *Querier) RawQuery(request []byte) ([]byte, error) {
	if q.RawQueryFn == nil {
		panic("not supposed to be called!")
	}
	return q.RawQueryFn(request)
}
