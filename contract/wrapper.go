// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"encoding/json"

	"github.com/wasmsim/wasmsim/types"
)

var _ Contract[types.Empty, types.Empty] = (*ContractWrapper[types.Empty, types.Empty])(nil)

// Internal entry point shapes after type erasure. Each slot holds the typed
// callback wrapped in a closure that decodes the raw message, so the
// wrapper itself never names the per-operation message types.
type (
	contractClosure[C types.CustomMsg, Q types.CustomQuery]     func(types.DepsMut[Q], types.Env, types.MessageInfo, []byte) (*types.Response[C], error)
	permissionedClosure[C types.CustomMsg, Q types.CustomQuery] func(types.DepsMut[Q], types.Env, []byte) (*types.Response[C], error)
	replyClosure[C types.CustomMsg, Q types.CustomQuery]        func(types.DepsMut[Q], types.Env, types.Reply) (*types.Response[C], error)
	queryClosure[Q types.CustomQuery]                           func(types.Deps[Q], types.Env, []byte) ([]byte, error)
)

// ContractWrapper adapts a set of typed callbacks to the Contract
// interface. Execute, instantiate and query are always populated; sudo,
// reply and migrate start empty and are added with the With* builders.
//
// A wrapper holds no mutable state: every field is written once during
// construction, so a single wrapper may serve concurrent dispatches as long
// as the caller serializes access to each store.
type ContractWrapper[C types.CustomMsg, Q types.CustomQuery] struct {
	executeFn     contractClosure[C, Q]
	instantiateFn contractClosure[C, Q]
	queryFn       queryClosure[Q]
	sudoFn        permissionedClosure[C, Q]
	replyFn       replyClosure[C, Q]
	migrateFn     permissionedClosure[C, Q]
}

// NewContract wraps the three mandatory entry points of a contract. The
// optional entry points report ErrNotImplemented until populated with
// WithSudo, WithReply and WithMigrate.
func NewContract[C types.CustomMsg, Q types.CustomQuery, ExecMsg, InstMsg, QueryMsg any](
	execute ExecuteFn[ExecMsg, C, Q],
	instantiate InstantiateFn[InstMsg, C, Q],
	query QueryFn[QueryMsg, Q],
) *ContractWrapper[C, Q] {
	return &ContractWrapper[C, Q]{
		executeFn:     newContractClosure("execute", execute),
		instantiateFn: newContractClosure("instantiate", instantiate),
		queryFn:       newQueryClosure("query", query),
	}
}

// WithSudo returns a copy of [w] with the sudo entry point populated by
// [fn]. The last write wins when applied repeatedly.
func WithSudo[M any, C types.CustomMsg, Q types.CustomQuery](
	w *ContractWrapper[C, Q],
	fn SudoFn[M, C, Q],
) *ContractWrapper[C, Q] {
	next := *w
	next.sudoFn = newPermissionedClosure("sudo", fn)
	return &next
}

// WithReply returns a copy of [w] with the reply entry point populated by
// [fn]. The last write wins when applied repeatedly.
func WithReply[C types.CustomMsg, Q types.CustomQuery](
	w *ContractWrapper[C, Q],
	fn ReplyFn[C, Q],
) *ContractWrapper[C, Q] {
	next := *w
	next.replyFn = replyClosure[C, Q](fn)
	return &next
}

// WithMigrate returns a copy of [w] with the migrate entry point populated
// by [fn]. The last write wins when applied repeatedly.
func WithMigrate[M any, C types.CustomMsg, Q types.CustomQuery](
	w *ContractWrapper[C, Q],
	fn MigrateFn[M, C, Q],
) *ContractWrapper[C, Q] {
	next := *w
	next.migrateFn = newPermissionedClosure("migrate", fn)
	return &next
}

func (w *ContractWrapper[C, Q]) Execute(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg []byte) (*types.Response[C], error) {
	return w.executeFn(deps, env, info, msg)
}

func (w *ContractWrapper[C, Q]) Instantiate(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg []byte) (*types.Response[C], error) {
	return w.instantiateFn(deps, env, info, msg)
}

func (w *ContractWrapper[C, Q]) Query(deps types.Deps[Q], env types.Env, msg []byte) ([]byte, error) {
	return w.queryFn(deps, env, msg)
}

func (w *ContractWrapper[C, Q]) Sudo(deps types.DepsMut[Q], env types.Env, msg []byte) (*types.Response[C], error) {
	if w.sudoFn == nil {
		return nil, errNotImplemented("sudo")
	}
	return w.sudoFn(deps, env, msg)
}

func (w *ContractWrapper[C, Q]) Reply(deps types.DepsMut[Q], env types.Env, reply types.Reply) (*types.Response[C], error) {
	if w.replyFn == nil {
		return nil, errNotImplemented("reply")
	}
	return w.replyFn(deps, env, reply)
}

func (w *ContractWrapper[C, Q]) Migrate(deps types.DepsMut[Q], env types.Env, msg []byte) (*types.Response[C], error) {
	if w.migrateFn == nil {
		return nil, errNotImplemented("migrate")
	}
	return w.migrateFn(deps, env, msg)
}

// newContractClosure erases the message type of an execute or instantiate
// callback. Decode failures name [op] and never reach [fn]; errors returned
// by [fn] pass through unaltered.
func newContractClosure[M any, C types.CustomMsg, Q types.CustomQuery](
	op string,
	fn func(types.DepsMut[Q], types.Env, types.MessageInfo, M) (*types.Response[C], error),
) contractClosure[C, Q] {
	return func(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg []byte) (*types.Response[C], error) {
		var m M
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, errDecode(op, err)
		}
		return fn(deps, env, info, m)
	}
}

func newPermissionedClosure[M any, C types.CustomMsg, Q types.CustomQuery](
	op string,
	fn func(types.DepsMut[Q], types.Env, M) (*types.Response[C], error),
) permissionedClosure[C, Q] {
	return func(deps types.DepsMut[Q], env types.Env, msg []byte) (*types.Response[C], error) {
		var m M
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, errDecode(op, err)
		}
		return fn(deps, env, m)
	}
}

func newQueryClosure[M any, Q types.CustomQuery](
	op string,
	fn func(types.Deps[Q], types.Env, M) ([]byte, error),
) queryClosure[Q] {
	return func(deps types.Deps[Q], env types.Env, msg []byte) ([]byte, error) {
		var m M
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, errDecode(op, err)
		}
		return fn(deps, env, m)
	}
}
