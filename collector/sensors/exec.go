// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/intelfx/netdata/logger"

	"github.com/tidwall/gjson"
)

type liquidctlCli struct {
	*logger.Logger

	binPath  string
	sudoPath string
	timeout  time.Duration
}

func newLiquidctlCli(log *logger.Logger, binPath, sudoPath string, timeout time.Duration) *liquidctlCli {
	return &liquidctlCli{
		Logger:   log,
		binPath:  binPath,
		sudoPath: sudoPath,
		timeout:  timeout,
	}
}

func (e *liquidctlCli) execute(args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	var cmd *exec.Cmd

	if e.sudoPath != "" {
		sudoArgs := append([]string{"-n", "--", e.binPath}, args...)
		cmd = exec.CommandContext(ctx, e.sudoPath, sudoArgs...)
	} else {
		cmd = exec.CommandContext(ctx, e.binPath, args...)
	}

	e.Debugf("executing '%s'", cmd)

	bs, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("error on '%s': %v", cmd, err)
	}

	return bs, nil
}

func (e *liquidctlCli) status() ([]deviceStatus, error) {
	bs, err := e.execute("status", "--json")
	if err != nil {
		return nil, err
	}
	return parseStatus(bs)
}

func parseStatus(bs []byte) ([]deviceStatus, error) {
	if !gjson.ValidBytes(bs) {
		return nil, errors.New("invalid JSON output")
	}

	root := gjson.ParseBytes(bs)
	if !root.IsArray() {
		return nil, errors.New("unexpected JSON output: not an array")
	}

	var devices []deviceStatus

	for _, dv := range root.Array() {
		ds := deviceStatus{
			Description: dv.Get("description").String(),
			Bus:         dv.Get("bus").String(),
			Address:     dv.Get("address").String(),
		}
		for _, sv := range dv.Get("status").Array() {
			ds.Status = append(ds.Status, statusItem{
				Key:   sv.Get("key").String(),
				Unit:  sv.Get("unit").String(),
				Value: sv.Get("value").Float(),
			})
		}
		devices = append(devices, ds)
	}

	return devices, nil
}
