// Package client implements a typed client for the registry API.
package client

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/rpc"

	avalancheJSON "github.com/ava-labs/avalanchego/utils/json"

	"github.com/wasmsim/wasmsim/registry"
)

// Client defines registry client operations.
type Client interface {
	// ListCodes fetches the metadata of every registered code.
	ListCodes(ctx context.Context) ([]registry.CodeInfo, error)

	// GetCode fetches the metadata registered under [codeID].
	GetCode(ctx context.Context, codeID uint64) (registry.CodeInfo, error)
}

// New creates a client of the registry API served at [uri].
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) ListCodes(ctx context.Context) ([]registry.CodeInfo, error) {
	resp := new(registry.ListCodesReply)
	err := cli.req.SendRequest(ctx,
		"registry.listCodes",
		&registry.ListCodesArgs{},
		resp,
	)
	if err != nil {
		return nil, err
	}

	codes := make([]registry.CodeInfo, len(resp.Codes))
	for i, code := range resp.Codes {
		info, err := parseCode(code)
		if err != nil {
			return nil, err
		}
		codes[i] = info
	}
	return codes, nil
}

func (cli *client) GetCode(ctx context.Context, codeID uint64) (registry.CodeInfo, error) {
	resp := new(registry.GetCodeReply)
	err := cli.req.SendRequest(ctx,
		"registry.getCode",
		&registry.GetCodeArgs{CodeID: avalancheJSON.Uint64(codeID)},
		resp,
	)
	if err != nil {
		return registry.CodeInfo{}, err
	}
	return parseCode(resp.Code)
}

func parseCode(code registry.Code) (registry.CodeInfo, error) {
	checksumBytes, err := formatting.Decode(formatting.Hex, code.Checksum)
	if err != nil {
		return registry.CodeInfo{}, fmt.Errorf("failed to decode checksum of code %d: %w", uint64(code.CodeID), err)
	}
	checksum, err := ids.ToID(checksumBytes)
	if err != nil {
		return registry.CodeInfo{}, fmt.Errorf("failed to parse checksum of code %d: %w", uint64(code.CodeID), err)
	}
	return registry.CodeInfo{
		CodeID:   uint64(code.CodeID),
		Creator:  code.Creator,
		Checksum: checksum,
	}, nil
}
