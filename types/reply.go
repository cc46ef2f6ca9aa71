// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// Reply is the envelope delivered to the reply entry point after a
// sub-message emitted with a matching ReplyOn condition has settled.
type Reply struct {
	// ID is the correlation id of the sub-message this reply belongs to.
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}

// SubMsgResult is the outcome of one dispatched sub-message. Exactly one
// field is set: Ok on success, Err with the failure text otherwise.
type SubMsgResult struct {
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"error,omitempty"`
}

// SubMsgResponse carries what the successful sub-message produced.
type SubMsgResponse struct {
	Events []Event `json:"events"`
	Data   []byte  `json:"data,omitempty"`
}
