// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"github.com/wasmsim/wasmsim/types"
)

// Contract is the uniform interface the simulation engine drives a contract
// through. Entry points receive already-encoded messages; decoding is the
// contract's concern. C types the sub-messages a contract may emit and Q
// types the queries it may issue.
//
// Execute, Instantiate, Sudo, Reply and Migrate require exclusive access to
// the contract's store for the duration of the call. Query runs on a
// read-only view and may be called concurrently with other queries.
type Contract[C types.CustomMsg, Q types.CustomQuery] interface {
	// Execute processes a caller-signed message against live state.
	Execute(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg []byte) (*types.Response[C], error)

	// Instantiate initializes a fresh instance's state.
	Instantiate(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg []byte) (*types.Response[C], error)

	// Query answers a read-only request with an encoded response.
	Query(deps types.Deps[Q], env types.Env, msg []byte) ([]byte, error)

	// Sudo processes a privileged message that carries no caller identity.
	// Contracts without a sudo entry point fail with ErrNotImplemented.
	Sudo(deps types.DepsMut[Q], env types.Env, msg []byte) (*types.Response[C], error)

	// Reply receives the outcome of a sub-message this contract previously
	// emitted. Contracts without a reply entry point fail with
	// ErrNotImplemented.
	Reply(deps types.DepsMut[Q], env types.Env, reply types.Reply) (*types.Response[C], error)

	// Migrate rewires an instance to new code, upgrading its state in
	// place. Contracts without a migrate entry point fail with
	// ErrNotImplemented.
	Migrate(deps types.DepsMut[Q], env types.Env, msg []byte) (*types.Response[C], error)
}

// Typed callback shapes accepted by NewContract and the With* builders. M
// is the message type the raw bytes decode into before the callback runs.
type (
	ExecuteFn[M any, C types.CustomMsg, Q types.CustomQuery]     func(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg M) (*types.Response[C], error)
	InstantiateFn[M any, C types.CustomMsg, Q types.CustomQuery] func(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg M) (*types.Response[C], error)
	QueryFn[M any, Q types.CustomQuery]                          func(deps types.Deps[Q], env types.Env, msg M) ([]byte, error)
	SudoFn[M any, C types.CustomMsg, Q types.CustomQuery]        func(deps types.DepsMut[Q], env types.Env, msg M) (*types.Response[C], error)
	ReplyFn[C types.CustomMsg, Q types.CustomQuery]              func(deps types.DepsMut[Q], env types.Env, reply types.Reply) (*types.Response[C], error)
	MigrateFn[M any, C types.CustomMsg, Q types.CustomQuery]     func(deps types.DepsMut[Q], env types.Env, msg M) (*types.Response[C], error)
)
