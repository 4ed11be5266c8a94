// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/intelfx/netdata/agent"
	"github.com/intelfx/netdata/logger"
	"github.com/intelfx/netdata/pkg/cli"
	"github.com/intelfx/netdata/pkg/executable"

	_ "github.com/intelfx/netdata/collector/sensors"
)

var version = "v0.1.0"

func main() {
	opts := parseCLI()

	if opts.Version {
		fmt.Printf("%s, version: %s\n", executable.Name, version)
		os.Exit(0)
	}

	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	a := agent.New(agent.Config{
		Name:        executable.Name,
		ModuleName:  "sensors",
		ConfFile:    opts.ConfFile,
		UpdateEvery: opts.UpdateEvery,
	})

	a.Run()
}

func parseCLI() *cli.Option {
	opts, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	return opts
}
