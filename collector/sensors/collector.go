// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/intelfx/netdata/agent/module"
	"github.com/intelfx/netdata/pkg/confopt"
)

//go:embed "config_schema.json"
var configSchema string

func init() {
	module.Register("sensors", module.Creator{
		JobConfigSchema: configSchema,
		Defaults: module.Defaults{
			UpdateEvery: 10,
			Priority:    module.Priority,
		},
		Create: func() module.Module { return New() },
		Config: func() any { return &Config{} },
	})
}

func New() *Collector {
	return &Collector{
		Config: Config{
			Mode:       modeLiquidctl,
			BinaryPath: "liquidctl",
			UseSudo:    true,
			Timeout:    confopt.Duration(time.Second * 10),
			SysfsPath:  "/sys/class/hwmon",
			DeviceID:   deviceIDLabelAddress,
		},
		charts: &module.Charts{},
	}
}

type Config struct {
	UpdateEvery int              `yaml:"update_every,omitempty" json:"update_every"`
	Mode        string           `yaml:"mode,omitempty" json:"mode"`
	BinaryPath  string           `yaml:"binary_path,omitempty" json:"binary_path"`
	UseSudo     bool             `yaml:"use_sudo,omitempty" json:"use_sudo"`
	Timeout     confopt.Duration `yaml:"timeout,omitempty" json:"timeout"`
	SysfsPath   string           `yaml:"sysfs_path,omitempty" json:"sysfs_path"`
	DeviceID    string           `yaml:"device_id,omitempty" json:"device_id"`
}

type (
	Collector struct {
		module.Base
		Config `yaml:",inline" json:""`

		charts *module.Charts

		source statusSource
	}
	statusSource interface {
		status() ([]deviceStatus, error)
	}
)

func (c *Collector) Configuration() any {
	return &c.Config
}

func (c *Collector) Init() error {
	if err := c.validateConfig(); err != nil {
		return fmt.Errorf("config validation: %v", err)
	}

	source, err := c.initSource()
	if err != nil {
		return fmt.Errorf("init status source: %v", err)
	}
	c.source = source

	return nil
}

func (c *Collector) Check() error {
	mx, err := c.collect()
	if err != nil {
		return err
	}
	if len(mx) == 0 {
		return errors.New("no metrics collected")
	}
	return nil
}

func (c *Collector) Charts() *module.Charts {
	return c.charts
}

func (c *Collector) Collect() map[string]int64 {
	mx, err := c.collect()
	if err != nil {
		c.Error(err)
	}

	if len(mx) == 0 {
		return nil
	}

	return mx
}

func (c *Collector) Cleanup() {}
