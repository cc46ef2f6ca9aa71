// (c) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// ReadonlyStorage is the read side of a contract's persistent store.
type ReadonlyStorage interface {
	// Get returns the value stored under [key]. A missing key yields
	// (nil, nil); errors are reserved for storage failures.
	Get(key []byte) ([]byte, error)
	// Iterate walks the store in ascending key order starting at [start]
	// (nil starts at the first key) and calls [f] for each pair until [f]
	// returns false or the store is exhausted.
	Iterate(start []byte, f func(key []byte, value []byte) bool) error
}

// Storage is the full read/write store handed to state-changing entry
// points.
type Storage interface {
	ReadonlyStorage

	Set(key []byte, value []byte) error
	Remove(key []byte) error
}

// Api bundles the address utilities the chain exposes to contracts.
type Api interface {
	// ValidateAddress checks that [human] is a well-formed address on this
	// chain.
	ValidateAddress(human string) error
	// CanonicalAddress converts a human-readable address to its binary
	// representation.
	CanonicalAddress(human string) ([]byte, error)
	// HumanAddress converts a binary address back to its human-readable
	// form.
	HumanAddress(canonical []byte) (string, error)
}

// Deps is the context bundle for read-only entry points. The storage view
// cannot write, so any number of queries may run concurrently.
type Deps[Q CustomQuery] struct {
	Storage ReadonlyStorage
	Api     Api
	Querier QuerierWrapper[Q]
}

// DepsMut is the context bundle for state-changing entry points. The caller
// guarantees exclusive access to the storage for the duration of the call.
type DepsMut[Q CustomQuery] struct {
	Storage Storage
	Api     Api
	Querier QuerierWrapper[Q]
}

// AsReadOnly reprojects this bundle for read-only entry points. The
// underlying storage is shared, not copied.
func (d DepsMut[Q]) AsReadOnly() Deps[Q] {
	return Deps[Q]{
		Storage: d.Storage,
		Api:     d.Api,
		Querier: d.Querier,
	}
}
