// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	modeLiquidctl = "liquidctl"
	modeSysfs     = "sysfs"
)

const (
	deviceIDLabelAddress = "label-address"
	deviceIDLabel        = "label"
)

func (c *Collector) validateConfig() error {
	switch c.Mode {
	case modeLiquidctl, modeSysfs:
	default:
		return fmt.Errorf("invalid mode '%s' (expected '%s' or '%s')", c.Mode, modeLiquidctl, modeSysfs)
	}

	switch c.DeviceID {
	case deviceIDLabelAddress, deviceIDLabel:
	default:
		return fmt.Errorf("invalid device_id '%s' (expected '%s' or '%s')", c.DeviceID, deviceIDLabelAddress, deviceIDLabel)
	}

	return nil
}

func (c *Collector) initSource() (statusSource, error) {
	if c.Mode == modeSysfs {
		return newSysfsScanner(c.Logger, c.SysfsPath), nil
	}
	return c.initLiquidctlCli()
}

func (c *Collector) initLiquidctlCli() (statusSource, error) {
	binPath := c.BinaryPath

	if !strings.HasPrefix(binPath, "/") {
		path, err := exec.LookPath(binPath)
		if err != nil {
			return nil, err
		}
		binPath = path
	}

	if _, err := os.Stat(binPath); err != nil {
		return nil, err
	}

	var sudoPath string
	if c.UseSudo {
		path, err := exec.LookPath("sudo")
		if err != nil {
			return nil, err
		}
		sudoPath = path
	}

	return newLiquidctlCli(c.Logger, binPath, sudoPath, c.Timeout.Duration()), nil
}
