// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/formatting"

	avalancheRPC "github.com/gorilla/rpc/v2"

	avalancheJSON "github.com/ava-labs/avalanchego/utils/json"

	log "github.com/inconshreveable/log15"

	"github.com/wasmsim/wasmsim/types"
)

// Service is the registry's JSON-RPC API. Codes registered by any client of
// the registry are visible here; the callbacks themselves never cross the
// wire.
type Service[C types.CustomMsg, Q types.CustomQuery] struct {
	registry *Registry[C, Q]
}

// Handler returns an http.Handler serving the registry API under the
// "registry" namespace.
func (r *Registry[C, Q]) Handler() (http.Handler, error) {
	server := avalancheRPC.NewServer()
	server.RegisterCodec(avalancheJSON.NewCodec(), "application/json")
	server.RegisterCodec(avalancheJSON.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&Service[C, Q]{registry: r}, "registry"); err != nil {
		return nil, fmt.Errorf("failed to register service: %w", err)
	}
	return server, nil
}

// Code is the wire form of one registered code.
type Code struct {
	CodeID   avalancheJSON.Uint64 `json:"codeID"`
	Creator  string               `json:"creator"`
	Checksum string               `json:"checksum"`
}

type ListCodesArgs struct{}

type ListCodesReply struct {
	Codes []Code `json:"codes"`
}

// ListCodes returns the metadata of every registered code.
func (s *Service[C, Q]) ListCodes(_ *http.Request, _ *ListCodesArgs, reply *ListCodesReply) error {
	log.Debug("listCodes called")

	codes, err := s.registry.Codes()
	if err != nil {
		return err
	}
	reply.Codes = make([]Code, len(codes))
	for i, info := range codes {
		code, err := codeJSON(info)
		if err != nil {
			return err
		}
		reply.Codes[i] = code
	}
	return nil
}

type GetCodeArgs struct {
	CodeID avalancheJSON.Uint64 `json:"codeID"`
}

type GetCodeReply struct {
	Code Code `json:"code"`
}

// GetCode returns the metadata of one registered code.
func (s *Service[C, Q]) GetCode(_ *http.Request, args *GetCodeArgs, reply *GetCodeReply) error {
	log.Debug("getCode called", "codeID", uint64(args.CodeID))

	info, err := s.registry.GetCode(uint64(args.CodeID))
	if err != nil {
		return err
	}
	reply.Code, err = codeJSON(info)
	return err
}

func codeJSON(info CodeInfo) (Code, error) {
	checksumStr, err := formatting.Encode(formatting.Hex, info.Checksum[:])
	if err != nil {
		return Code{}, fmt.Errorf("failed to encode checksum of code %d: %w", info.CodeID, err)
	}
	return Code{
		CodeID:   avalancheJSON.Uint64(info.CodeID),
		Creator:  info.Creator,
		Checksum: checksumStr,
	}, nil
}
