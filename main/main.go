// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	log "github.com/inconshreveable/log15"

	"github.com/wasmsim/wasmsim/examples/counter"
	"github.com/wasmsim/wasmsim/registry"
	"github.com/wasmsim/wasmsim/state"
	"github.com/wasmsim/wasmsim/types"
)

const Name = "wasmsim"

// Version is the semantic version of this build.
var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}

func main() {
	v, err := getViper()
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}

	if v.GetBool(versionKey) {
		fmt.Printf("%s@%s\n", Name, Version)
		os.Exit(0)
	}

	logLevel, err := log.LvlFromString(v.GetString(logLevelKey))
	if err != nil {
		fmt.Printf("couldn't parse log level: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(logLevel, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	st := state.New(memdb.New())
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("failed to close state", "error", err)
		}
	}()

	reg := registry.New[types.Empty, types.Empty](st)
	codeID, err := reg.Register("wasmsim-demo", counter.Contract[types.Empty, types.Empty]())
	if err != nil {
		log.Error("failed to register counter contract", "error", err)
		os.Exit(1)
	}
	log.Info("registered demo contract", "codeID", codeID)

	handler, err := reg.Handler()
	if err != nil {
		log.Error("failed to build registry handler", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/registry", handler)
	mux.Handle("/metrics", promhttp.HandlerFor(st.Metrics(), promhttp.HandlerOpts{}))

	httpAddr := v.GetString(httpAddrKey)
	log.Info("serving registry API", "addr", httpAddr)
	if err := http.ListenAndServe(httpAddr, mux); err != nil {
		log.Error("http server exited", "error", err)
		os.Exit(1)
	}
}
