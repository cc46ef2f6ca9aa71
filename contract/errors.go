// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is wrapped by every error returned from an optional
// entry point that was never populated. Callers distinguish "this contract
// has no such entry point" from "the entry point rejected the call" with
// errors.Is.
var ErrNotImplemented = errors.New("not implemented for contract")

func errNotImplemented(op string) error {
	return fmt.Errorf("%s is %w", op, ErrNotImplemented)
}

func errDecode(op string, err error) error {
	return fmt.Errorf("failed to decode %s message: %w", op, err)
}
