// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmsim/wasmsim/simtest"
	"github.com/wasmsim/wasmsim/types"
)

// chainMsg and chainQuery are the host extensions used by typed wrapper
// tests.
type chainMsg struct {
	Mint *mintMsg `json:"mint,omitempty"`
}

type mintMsg struct {
	Amount uint64 `json:"amount"`
}

type chainQuery struct {
	Oracle *oracleQuery `json:"oracle,omitempty"`
}

type oracleQuery struct {
	Symbol string `json:"symbol"`
}

// Per-operation message types of the test contract.
type (
	execMsg struct {
		Tag string `json:"tag"`
	}
	instMsg struct {
		Seed uint64 `json:"seed"`
	}
	queryMsg struct {
		Want string `json:"want"`
	}
	sudoMsg struct {
		Level uint32 `json:"level"`
	}
	migrateMsg struct {
		From uint64 `json:"from"`
	}
)

// recorder tracks which callbacks ran and with what decoded payloads.
type recorder struct {
	executed    []execMsg
	initialized []instMsg
	queried     []queryMsg
	sudoed      []sudoMsg
	replied     []types.Reply
	migrated    []migrateMsg
}

func (r *recorder) contract() *ContractWrapper[types.Empty, types.Empty] {
	w := NewContract(
		func(_ types.DepsMut[types.Empty], _ types.Env, _ types.MessageInfo, msg execMsg) (*types.Response[types.Empty], error) {
			r.executed = append(r.executed, msg)
			return &types.Response[types.Empty]{}, nil
		},
		func(_ types.DepsMut[types.Empty], _ types.Env, _ types.MessageInfo, msg instMsg) (*types.Response[types.Empty], error) {
			r.initialized = append(r.initialized, msg)
			return &types.Response[types.Empty]{}, nil
		},
		func(_ types.Deps[types.Empty], _ types.Env, msg queryMsg) ([]byte, error) {
			r.queried = append(r.queried, msg)
			return []byte(`{}`), nil
		},
	)
	w = WithSudo(w, func(_ types.DepsMut[types.Empty], _ types.Env, msg sudoMsg) (*types.Response[types.Empty], error) {
		r.sudoed = append(r.sudoed, msg)
		return &types.Response[types.Empty]{}, nil
	})
	w = WithReply(w, func(_ types.DepsMut[types.Empty], _ types.Env, reply types.Reply) (*types.Response[types.Empty], error) {
		r.replied = append(r.replied, reply)
		return &types.Response[types.Empty]{}, nil
	})
	w = WithMigrate(w, func(_ types.DepsMut[types.Empty], _ types.Env, msg migrateMsg) (*types.Response[types.Empty], error) {
		r.migrated = append(r.migrated, msg)
		return &types.Response[types.Empty]{}, nil
	})
	return w
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()

	bytes, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes
}

func TestDispatchDecodesMessages(t *testing.T) {
	require := require.New(t)

	rec := &recorder{}
	w := rec.contract()
	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
	env := simtest.Env()
	info := simtest.Info(simtest.Address())

	_, err := w.Instantiate(deps, env, info, mustMarshal(t, instMsg{Seed: 7}))
	require.NoError(err)
	_, err = w.Execute(deps, env, info, mustMarshal(t, execMsg{Tag: "first"}))
	require.NoError(err)
	_, err = w.Sudo(deps, env, mustMarshal(t, sudoMsg{Level: 3}))
	require.NoError(err)
	_, err = w.Migrate(deps, env, mustMarshal(t, migrateMsg{From: 2}))
	require.NoError(err)
	_, err = w.Query(deps.AsReadOnly(), env, mustMarshal(t, queryMsg{Want: "count"}))
	require.NoError(err)

	require.Equal([]instMsg{{Seed: 7}}, rec.initialized)
	require.Equal([]execMsg{{Tag: "first"}}, rec.executed)
	require.Equal([]sudoMsg{{Level: 3}}, rec.sudoed)
	require.Equal([]migrateMsg{{From: 2}}, rec.migrated)
	require.Equal([]queryMsg{{Want: "count"}}, rec.queried)
}

func TestReplyEnvelopePassesThrough(t *testing.T) {
	require := require.New(t)

	rec := &recorder{}
	w := rec.contract()
	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})

	sent := types.Reply{
		ID: 42,
		Result: types.SubMsgResult{
			Ok: &types.SubMsgResponse{
				Events: []types.Event{{Type: "transfer"}},
				Data:   []byte{0x01, 0x02},
			},
		},
	}
	_, err := w.Reply(deps, simtest.Env(), sent)
	require.NoError(err)
	require.Equal([]types.Reply{sent}, rec.replied)
}

func TestDecodeFailureNamesOperation(t *testing.T) {
	rec := &recorder{}
	w := rec.contract()
	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
	env := simtest.Env()
	info := simtest.Info(simtest.Address())
	garbage := []byte("{")

	tests := []struct {
		op       string
		dispatch func() error
	}{
		{
			op: "execute",
			dispatch: func() error {
				_, err := w.Execute(deps, env, info, garbage)
				return err
			},
		},
		{
			op: "instantiate",
			dispatch: func() error {
				_, err := w.Instantiate(deps, env, info, garbage)
				return err
			},
		},
		{
			op: "query",
			dispatch: func() error {
				_, err := w.Query(deps.AsReadOnly(), env, garbage)
				return err
			},
		},
		{
			op: "sudo",
			dispatch: func() error {
				_, err := w.Sudo(deps, env, garbage)
				return err
			},
		},
		{
			op: "migrate",
			dispatch: func() error {
				_, err := w.Migrate(deps, env, garbage)
				return err
			},
		},
	}
	for _, test := range tests {
		t.Run(test.op, func(t *testing.T) {
			require := require.New(t)

			err := test.dispatch()
			require.Error(err)
			require.Contains(err.Error(), fmt.Sprintf("failed to decode %s message", test.op))
		})
	}

	// no callback saw the malformed dispatches
	require.Empty(t, rec.executed)
	require.Empty(t, rec.initialized)
	require.Empty(t, rec.queried)
	require.Empty(t, rec.sudoed)
	require.Empty(t, rec.migrated)
}

func TestCallbackErrorsPassThrough(t *testing.T) {
	require := require.New(t)

	errBusiness := errors.New("count overflow")
	w := NewContract(
		func(_ types.DepsMut[types.Empty], _ types.Env, _ types.MessageInfo, _ execMsg) (*types.Response[types.Empty], error) {
			return nil, errBusiness
		},
		instantiateNop,
		queryNop,
	)

	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
	_, err := w.Execute(deps, simtest.Env(), simtest.Info(simtest.Address()), mustMarshal(t, execMsg{}))
	require.ErrorIs(err, errBusiness)
	require.Equal(errBusiness.Error(), err.Error())
	require.NotErrorIs(err, ErrNotImplemented)
}

func TestUnpopulatedOperationsNotImplemented(t *testing.T) {
	w := NewContract(executeNop, instantiateNop, queryNop)
	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
	env := simtest.Env()

	tests := []struct {
		op       string
		dispatch func(msg []byte) error
	}{
		{
			op: "sudo",
			dispatch: func(msg []byte) error {
				_, err := w.Sudo(deps, env, msg)
				return err
			},
		},
		{
			op: "reply",
			dispatch: func(msg []byte) error {
				_, err := w.Reply(deps, env, types.Reply{ID: 1})
				return err
			},
		},
		{
			op: "migrate",
			dispatch: func(msg []byte) error {
				_, err := w.Migrate(deps, env, msg)
				return err
			},
		},
	}
	for _, test := range tests {
		t.Run(test.op, func(t *testing.T) {
			require := require.New(t)

			err := test.dispatch(mustMarshal(t, struct{}{}))
			require.ErrorIs(err, ErrNotImplemented)
			require.Equal(fmt.Sprintf("%s is not implemented for contract", test.op), err.Error())

			// an unpopulated operation fails the same way for messages that
			// would not even decode
			err = test.dispatch([]byte("{"))
			require.ErrorIs(err, ErrNotImplemented)
		})
	}
}

func TestBuildersCopyOnWrite(t *testing.T) {
	require := require.New(t)

	base := NewContract(executeNop, instantiateNop, queryNop)
	withSudo := WithSudo(base, func(_ types.DepsMut[types.Empty], _ types.Env, _ sudoMsg) (*types.Response[types.Empty], error) {
		return &types.Response[types.Empty]{Data: []byte("sudo")}, nil
	})
	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
	env := simtest.Env()

	// the original wrapper is untouched
	_, err := base.Sudo(deps, env, mustMarshal(t, sudoMsg{}))
	require.ErrorIs(err, ErrNotImplemented)

	resp, err := withSudo.Sudo(deps, env, mustMarshal(t, sudoMsg{}))
	require.NoError(err)
	require.Equal([]byte("sudo"), resp.Data)

	// the sibling slots of the derived wrapper stay unpopulated
	_, err = withSudo.Reply(deps, env, types.Reply{})
	require.ErrorIs(err, ErrNotImplemented)
	_, err = withSudo.Migrate(deps, env, mustMarshal(t, migrateMsg{}))
	require.ErrorIs(err, ErrNotImplemented)
}

// The optional slots are independent: any population order produces the
// same dispatch table.
func TestBuilderOrderIndependence(t *testing.T) {
	builders := []func(*ContractWrapper[types.Empty, types.Empty]) *ContractWrapper[types.Empty, types.Empty]{
		func(w *ContractWrapper[types.Empty, types.Empty]) *ContractWrapper[types.Empty, types.Empty] {
			return WithSudo(w, func(_ types.DepsMut[types.Empty], _ types.Env, _ sudoMsg) (*types.Response[types.Empty], error) {
				return &types.Response[types.Empty]{Data: []byte("sudo")}, nil
			})
		},
		func(w *ContractWrapper[types.Empty, types.Empty]) *ContractWrapper[types.Empty, types.Empty] {
			return WithReply(w, func(_ types.DepsMut[types.Empty], _ types.Env, _ types.Reply) (*types.Response[types.Empty], error) {
				return &types.Response[types.Empty]{Data: []byte("reply")}, nil
			})
		},
		func(w *ContractWrapper[types.Empty, types.Empty]) *ContractWrapper[types.Empty, types.Empty] {
			return WithMigrate(w, func(_ types.DepsMut[types.Empty], _ types.Env, _ migrateMsg) (*types.Response[types.Empty], error) {
				return &types.Response[types.Empty]{Data: []byte("migrate")}, nil
			})
		},
	}
	orders := [][3]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}}

	for _, order := range orders {
		w := NewContract(executeNop, instantiateNop, queryNop)
		for _, i := range order {
			w = builders[i](w)
		}

		require := require.New(t)
		deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
		env := simtest.Env()

		resp, err := w.Sudo(deps, env, mustMarshal(t, sudoMsg{}))
		require.NoError(err)
		require.Equal([]byte("sudo"), resp.Data)
		resp, err = w.Reply(deps, env, types.Reply{})
		require.NoError(err)
		require.Equal([]byte("reply"), resp.Data)
		resp, err = w.Migrate(deps, env, mustMarshal(t, migrateMsg{}))
		require.NoError(err)
		require.Equal([]byte("migrate"), resp.Data)
	}
}

func TestBuildersLastWriteWins(t *testing.T) {
	require := require.New(t)

	w := NewContract(executeNop, instantiateNop, queryNop)
	w = WithSudo(w, func(_ types.DepsMut[types.Empty], _ types.Env, _ sudoMsg) (*types.Response[types.Empty], error) {
		return &types.Response[types.Empty]{Data: []byte("first")}, nil
	})
	w = WithSudo(w, func(_ types.DepsMut[types.Empty], _ types.Env, _ sudoMsg) (*types.Response[types.Empty], error) {
		return &types.Response[types.Empty]{Data: []byte("second")}, nil
	})

	deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
	resp, err := w.Sudo(deps, simtest.Env(), mustMarshal(t, sudoMsg{}))
	require.NoError(err)
	require.Equal([]byte("second"), resp.Data)
}

func TestTypedWrapperEmitsCustomVariant(t *testing.T) {
	require := require.New(t)

	w := NewContract(
		func(_ types.DepsMut[chainQuery], _ types.Env, _ types.MessageInfo, _ execMsg) (*types.Response[chainMsg], error) {
			mint := types.CosmosMsg[chainMsg]{
				Custom: &chainMsg{Mint: &mintMsg{Amount: 777}},
			}
			return &types.Response[chainMsg]{
				Messages: []types.SubMsg[chainMsg]{types.NewSubMsg(mint)},
			}, nil
		},
		func(_ types.DepsMut[chainQuery], _ types.Env, _ types.MessageInfo, _ instMsg) (*types.Response[chainMsg], error) {
			return &types.Response[chainMsg]{}, nil
		},
		func(_ types.Deps[chainQuery], _ types.Env, _ queryMsg) ([]byte, error) {
			return []byte(`{}`), nil
		},
	)

	deps := simtest.DepsMut[chainQuery](&simtest.Querier{})
	resp, err := w.Execute(deps, simtest.Env(), simtest.Info(simtest.Address()), mustMarshal(t, execMsg{}))
	require.NoError(err)
	require.Len(resp.Messages, 1)
	require.NotNil(resp.Messages[0].Msg.Custom)
	require.Equal(uint64(777), resp.Messages[0].Msg.Custom.Mint.Amount)
	require.Equal(types.ReplyNever, resp.Messages[0].ReplyOn)
}

func TestConcurrentDispatch(t *testing.T) {
	require := require.New(t)

	w := NewContract(
		func(deps types.DepsMut[types.Empty], _ types.Env, _ types.MessageInfo, msg execMsg) (*types.Response[types.Empty], error) {
			if err := deps.Storage.Set([]byte(msg.Tag), []byte(msg.Tag)); err != nil {
				return nil, err
			}
			return &types.Response[types.Empty]{}, nil
		},
		instantiateNop,
		func(deps types.Deps[types.Empty], _ types.Env, msg queryMsg) ([]byte, error) {
			return deps.Storage.Get([]byte(msg.Want))
		},
	)
	env := simtest.Env()

	// one wrapper, one store per goroutine
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < len(errs); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			deps := simtest.DepsMut[types.Empty](&simtest.Querier{})
			tag := fmt.Sprintf("goroutine-%d", i)
			execBytes, err := json.Marshal(execMsg{Tag: tag})
			if err != nil {
				errs[i] = err
				return
			}
			if _, err := w.Execute(deps, env, simtest.Info(simtest.Address()), execBytes); err != nil {
				errs[i] = err
				return
			}
			queryBytes, err := json.Marshal(queryMsg{Want: tag})
			if err != nil {
				errs[i] = err
				return
			}
			value, err := w.Query(deps.AsReadOnly(), env, queryBytes)
			if err != nil {
				errs[i] = err
				return
			}
			if string(value) != tag {
				errs[i] = fmt.Errorf("unexpected value %q", value)
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(err)
	}
}

func executeNop(_ types.DepsMut[types.Empty], _ types.Env, _ types.MessageInfo, _ execMsg) (*types.Response[types.Empty], error) {
	return &types.Response[types.Empty]{}, nil
}

func instantiateNop(_ types.DepsMut[types.Empty], _ types.Env, _ types.MessageInfo, _ instMsg) (*types.Response[types.Empty], error) {
	return &types.Response[types.Empty]{}, nil
}

func queryNop(_ types.Deps[types.Empty], _ types.Env, _ queryMsg) ([]byte, error) {
	return []byte(`{}`), nil
}
