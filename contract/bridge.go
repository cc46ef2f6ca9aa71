// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"encoding/json"
	"fmt"

	"github.com/wasmsim/wasmsim/types"
)

// This file bridges contracts written against the baseline types.Empty
// extensions into wrappers typed at richer extensions. The callback keeps
// seeing Empty on both sides: its context is re-wrapped at Empty before the
// call and its response is lifted into the extended type afterwards.

// NewContractWithEmpty wraps the three mandatory entry points of a
// baseline contract for use in a host typed at [C, Q]. The callbacks are
// written exactly as for NewContract[types.Empty, types.Empty]; the bridge
// is applied on every dispatch.
func NewContractWithEmpty[C types.CustomMsg, Q types.CustomQuery, ExecMsg, InstMsg, QueryMsg any](
	execute ExecuteFn[ExecMsg, types.Empty, types.Empty],
	instantiate InstantiateFn[InstMsg, types.Empty, types.Empty],
	query QueryFn[QueryMsg, types.Empty],
) *ContractWrapper[C, Q] {
	return &ContractWrapper[C, Q]{
		executeFn:     newBridgedContractClosure[ExecMsg, C, Q]("execute", execute),
		instantiateFn: newBridgedContractClosure[InstMsg, C, Q]("instantiate", instantiate),
		queryFn:       newBridgedQueryClosure[QueryMsg, Q]("query", query),
	}
}

// WithSudoEmpty populates the sudo entry point of [w] with a baseline
// callback, bridged the same way as NewContractWithEmpty. The last write
// wins when applied repeatedly.
func WithSudoEmpty[M any, C types.CustomMsg, Q types.CustomQuery](
	w *ContractWrapper[C, Q],
	fn SudoFn[M, types.Empty, types.Empty],
) *ContractWrapper[C, Q] {
	next := *w
	next.sudoFn = newBridgedPermissionedClosure[M, C, Q]("sudo", fn)
	return &next
}

// WithReplyEmpty populates the reply entry point of [w] with a baseline
// callback, bridged the same way as NewContractWithEmpty. The last write
// wins when applied repeatedly.
func WithReplyEmpty[C types.CustomMsg, Q types.CustomQuery](
	w *ContractWrapper[C, Q],
	fn ReplyFn[types.Empty, types.Empty],
) *ContractWrapper[C, Q] {
	next := *w
	next.replyFn = func(deps types.DepsMut[Q], env types.Env, reply types.Reply) (*types.Response[C], error) {
		resp, err := fn(decustomizeDepsMut(deps), env, reply)
		if err != nil {
			return nil, err
		}
		return liftResponse[C](resp), nil
	}
	return &next
}

// WithMigrateEmpty populates the migrate entry point of [w] with a baseline
// callback, bridged the same way as NewContractWithEmpty. The last write
// wins when applied repeatedly.
func WithMigrateEmpty[M any, C types.CustomMsg, Q types.CustomQuery](
	w *ContractWrapper[C, Q],
	fn MigrateFn[M, types.Empty, types.Empty],
) *ContractWrapper[C, Q] {
	next := *w
	next.migrateFn = newBridgedPermissionedClosure[M, C, Q]("migrate", fn)
	return &next
}

func newBridgedContractClosure[M any, C types.CustomMsg, Q types.CustomQuery](
	op string,
	fn func(types.DepsMut[types.Empty], types.Env, types.MessageInfo, M) (*types.Response[types.Empty], error),
) contractClosure[C, Q] {
	return func(deps types.DepsMut[Q], env types.Env, info types.MessageInfo, msg []byte) (*types.Response[C], error) {
		var m M
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, errDecode(op, err)
		}
		resp, err := fn(decustomizeDepsMut(deps), env, info, m)
		if err != nil {
			return nil, err
		}
		return liftResponse[C](resp), nil
	}
}

func newBridgedPermissionedClosure[M any, C types.CustomMsg, Q types.CustomQuery](
	op string,
	fn func(types.DepsMut[types.Empty], types.Env, M) (*types.Response[types.Empty], error),
) permissionedClosure[C, Q] {
	return func(deps types.DepsMut[Q], env types.Env, msg []byte) (*types.Response[C], error) {
		var m M
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, errDecode(op, err)
		}
		resp, err := fn(decustomizeDepsMut(deps), env, m)
		if err != nil {
			return nil, err
		}
		return liftResponse[C](resp), nil
	}
}

func newBridgedQueryClosure[M any, Q types.CustomQuery](
	op string,
	fn func(types.Deps[types.Empty], types.Env, M) ([]byte, error),
) queryClosure[Q] {
	return func(deps types.Deps[Q], env types.Env, msg []byte) ([]byte, error) {
		var m M
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, errDecode(op, err)
		}
		return fn(decustomizeDeps(deps), env, m)
	}
}

// decustomizeDepsMut re-types a context bundle at the baseline extension.
// The storage and api handles are shared, and the raw querier is re-wrapped
// without copying, so the baseline view stays as capable minus the custom
// query variant.
func decustomizeDepsMut[Q types.CustomQuery](deps types.DepsMut[Q]) types.DepsMut[types.Empty] {
	return types.DepsMut[types.Empty]{
		Storage: deps.Storage,
		Api:     deps.Api,
		Querier: types.NewQuerierWrapper[types.Empty](deps.Querier.Raw()),
	}
}

func decustomizeDeps[Q types.CustomQuery](deps types.Deps[Q]) types.Deps[types.Empty] {
	return types.Deps[types.Empty]{
		Storage: deps.Storage,
		Api:     deps.Api,
		Querier: types.NewQuerierWrapper[types.Empty](deps.Querier.Raw()),
	}
}

// liftResponse maps a baseline response into the extended response type.
// Attributes, events and data pass through as-is; sub-messages are
// translated variant by variant.
func liftResponse[C types.CustomMsg](resp *types.Response[types.Empty]) *types.Response[C] {
	if resp == nil {
		return nil
	}
	lifted := &types.Response[C]{
		Attributes: resp.Attributes,
		Events:     resp.Events,
		Data:       resp.Data,
	}
	if len(resp.Messages) > 0 {
		lifted.Messages = make([]types.SubMsg[C], len(resp.Messages))
		for i, sub := range resp.Messages {
			lifted.Messages[i] = types.SubMsg[C]{
				ID:       sub.ID,
				Msg:      liftCosmosMsg[C](sub.Msg),
				GasLimit: sub.GasLimit,
				ReplyOn:  sub.ReplyOn,
			}
		}
	}
	return lifted
}

// liftCosmosMsg translates one baseline message union into the extended
// union. A populated Custom variant cannot originate from a baseline
// callback, and a union with no variant set is malformed; both indicate a
// broken bridge rather than bad input, so they panic instead of returning
// an error.
func liftCosmosMsg[C types.CustomMsg](msg types.CosmosMsg[types.Empty]) types.CosmosMsg[C] {
	switch {
	case msg.Custom != nil:
		panic("custom message variant in a contract without custom message support")
	case msg.Bank != nil:
		return types.CosmosMsg[C]{Bank: msg.Bank}
	case msg.Staking != nil:
		return types.CosmosMsg[C]{Staking: msg.Staking}
	case msg.Distribution != nil:
		return types.CosmosMsg[C]{Distribution: msg.Distribution}
	case msg.Wasm != nil:
		return types.CosmosMsg[C]{Wasm: msg.Wasm}
	case msg.Ibc != nil:
		return types.CosmosMsg[C]{Ibc: msg.Ibc}
	case msg.Stargate != nil:
		return types.CosmosMsg[C]{Stargate: msg.Stargate}
	default:
		panic(fmt.Sprintf("unknown message variant %+v", msg))
	}
}
