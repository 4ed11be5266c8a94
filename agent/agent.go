// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intelfx/netdata/agent/module"
	"github.com/intelfx/netdata/logger"
	"github.com/intelfx/netdata/pkg/netdataapi"

	"gopkg.in/yaml.v2"
)

// Config is an Agent configuration.
type Config struct {
	Name        string // plugin name as reported to netdata
	ModuleName  string // registered module to run
	ConfFile    string // optional job configuration file (YAML)
	UpdateEvery int    // minimum data collection interval
	Out         io.Writer
}

// Agent runs a single registered module as a netdata external plugin.
type Agent struct {
	Config

	*logger.Logger

	api *netdataapi.API

	autoDetectEvery int
}

// New returns a new Agent.
func New(cfg Config) *Agent {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.UpdateEvery <= 0 {
		cfg.UpdateEvery = module.UpdateEvery
	}
	return &Agent{
		Config: cfg,
		Logger: logger.New().With("component", "agent"),
		api:    netdataapi.New(cfg.Out),
	}
}

// Run runs the agent until a termination signal is received or the module
// fails to initialize. In the latter case it disables the plugin.
func (a *Agent) Run() {
	a.Infof("instance is started using config '%s'", a.ConfFile)
	defer a.Info("instance is stopped")

	job, err := a.createJob()
	if err != nil {
		a.Errorf("cannot create collection job: %v", err)
		a.api.DISABLE()
		return
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGPIPE)

	for {
		err := job.AutoDetection()
		if err == nil {
			break
		}
		if a.autoDetectEvery <= 0 {
			a.Errorf("module '%s' detection failed: %v", a.ModuleName, err)
			a.api.DISABLE()
			return
		}

		// subsequent attempts fail the same way, no need to log each one
		job.Mute()
		a.Noticef("module '%s' detection failed (%v), next attempt in %ds", a.ModuleName, err, a.autoDetectEvery)

		select {
		case sig := <-ch:
			a.Infof("received %s signal (%d)", sig, sig)
			if sig == syscall.SIGPIPE {
				os.Exit(1)
			}
			return
		case <-time.After(time.Duration(a.autoDetectEvery) * time.Second):
		}
	}
	job.Unmute()

	go job.Start()
	defer job.Stop()

	tk := time.NewTicker(time.Second)
	defer tk.Stop()

	for {
		select {
		case t := <-tk.C:
			job.Tick(t.Second() + t.Minute()*60 + t.Hour()*60*60)
		case sig := <-ch:
			a.Infof("received %s signal (%d)", sig, sig)
			if sig == syscall.SIGPIPE {
				os.Exit(1)
			}
			return
		}
	}
}

func (a *Agent) createJob() (*module.Job, error) {
	creator, ok := module.DefaultRegistry.Lookup(a.ModuleName)
	if !ok {
		return nil, fmt.Errorf("module '%s' is not registered", a.ModuleName)
	}

	mod := creator.Create()

	updateEvery := creator.UpdateEvery
	if a.UpdateEvery > updateEvery {
		updateEvery = a.UpdateEvery
	}

	if a.ConfFile != "" {
		bs, err := os.ReadFile(a.ConfFile)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %v", err)
		}
		if err := yaml.Unmarshal(bs, mod.Configuration()); err != nil {
			return nil, fmt.Errorf("parsing config file '%s': %v", a.ConfFile, err)
		}

		var jobCfg struct {
			AutoDetectionRetry int `yaml:"autodetection_retry"`
		}
		if err := yaml.Unmarshal(bs, &jobCfg); err == nil {
			a.autoDetectEvery = jobCfg.AutoDetectionRetry
		}
	}

	job := module.NewJob(module.JobConfig{
		PluginName:  a.Name,
		Name:        a.ModuleName,
		ModuleName:  a.ModuleName,
		FullName:    a.ModuleName,
		Module:      mod,
		Out:         a.Out,
		UpdateEvery: updateEvery,
		Priority:    creator.Priority,
	})

	return job, nil
}
