// Copyright (C) 2023, WasmSim, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	httpAddrKey = "http-addr"
	logLevelKey = "log-level"
	versionKey  = "version"

	defaultHTTPAddr = ":9750"
	defaultLogLevel = "info"
)

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)

	fs.String(httpAddrKey, defaultHTTPAddr, "Address the registry API listens on")
	fs.String(logLevelKey, defaultLogLevel, "Log level of the process")
	fs.Bool(versionKey, false, "If true, prints version and quits")

	return fs
}

// getViper returns the viper environment for the binary
func getViper() (*viper.Viper, error) {
	v := viper.New()

	fs := buildFlagSet()
	pflag.CommandLine.AddGoFlagSet(fs)
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	return v, nil
}
