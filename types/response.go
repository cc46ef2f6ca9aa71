// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// ReplyOn controls when the outcome of a sub-message is reported back to
// the emitting contract.
type ReplyOn string

const (
	ReplyAlways  ReplyOn = "always"
	ReplySuccess ReplyOn = "success"
	ReplyError   ReplyOn = "error"
	ReplyNever   ReplyOn = "never"
)

// Response is the structured result of a state-changing entry point. The
// engine applies it after the entry point returns: sub-messages are
// dispatched in order, attributes and events are appended to the dispatch
// log, and data is handed back to the caller.
type Response[C CustomMsg] struct {
	// Messages are dispatched after the current call returns, in order. The
	// outcome of a sub-message is routed back through the reply entry point
	// when its ReplyOn condition matches.
	Messages   []SubMsg[C] `json:"messages"`
	Attributes []Attribute `json:"attributes"`
	Events     []Event     `json:"events"`
	// Data is an opaque payload returned to the caller of this contract.
	Data []byte `json:"data,omitempty"`
}

// SubMsg wraps a message emitted by a contract with its reply routing.
type SubMsg[C CustomMsg] struct {
	// ID is the correlation id handed back in the reply. It carries no
	// meaning when ReplyOn is ReplyNever.
	ID       uint64       `json:"id"`
	Msg      CosmosMsg[C] `json:"msg"`
	GasLimit *uint64      `json:"gas_limit,omitempty"`
	ReplyOn  ReplyOn      `json:"reply_on"`
}

// NewSubMsg wraps a message as fire-and-forget: no reply is delivered
// regardless of the outcome.
func NewSubMsg[C CustomMsg](msg CosmosMsg[C]) SubMsg[C] {
	return SubMsg[C]{
		ID:      0,
		Msg:     msg,
		ReplyOn: ReplyNever,
	}
}

// ReplySubMsg wraps a message so its outcome is reported back under [id]
// whenever [replyOn] matches.
func ReplySubMsg[C CustomMsg](id uint64, msg CosmosMsg[C], replyOn ReplyOn) SubMsg[C] {
	return SubMsg[C]{
		ID:      id,
		Msg:     msg,
		ReplyOn: replyOn,
	}
}

// Attribute is a key/value pair attached to the dispatch log.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed group of attributes attached to the dispatch log.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}
