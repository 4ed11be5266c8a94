// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/intelfx/netdata/logger"
)

// sysfsScanner reads hwmon sensors directly from sysfs. Raw readings are
// converted to canonical units here so the downstream classification sees
// the same unit strings regardless of the backend.
type sysfsScanner struct {
	*logger.Logger

	path string
}

func newSysfsScanner(log *logger.Logger, path string) *sysfsScanner {
	return &sysfsScanner{
		Logger: log,
		path:   path,
	}
}

var reSensorInput = regexp.MustCompile(`^(temp|fan|in|curr|power)([0-9]+)_input$`)

// hwmon reports fixed-scale integers: milli-degrees, millivolts,
// milliamperes, microwatts. Fans are plain rpm.
var sysfsScale = map[string]struct {
	unit  string
	ratio Ratio
}{
	"temp":  {unit: "°C", ratio: Ratio{Num: 1, Den: 1000}},
	"fan":   {unit: "rpm", ratio: Ratio{}},
	"in":    {unit: "V", ratio: Ratio{Num: 1, Den: 1000}},
	"curr":  {unit: "A", ratio: Ratio{Num: 1, Den: 1000}},
	"power": {unit: "W", ratio: Ratio{Num: 1, Den: 1000000}},
}

func (s *sysfsScanner) status() ([]deviceStatus, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %v", s.path, err)
	}

	var devices []deviceStatus

	for _, ent := range entries {
		if !strings.HasPrefix(ent.Name(), "hwmon") {
			continue
		}

		dir := filepath.Join(s.path, ent.Name())

		ds, err := s.scanDevice(dir)
		if err != nil {
			s.Debugf("skipping '%s': %v", dir, err)
			continue
		}
		if len(ds.Status) > 0 {
			devices = append(devices, ds)
		}
	}

	return devices, nil
}

func (s *sysfsScanner) scanDevice(dir string) (deviceStatus, error) {
	name, err := readSysfsString(filepath.Join(dir, "name"))
	if err != nil {
		return deviceStatus{}, err
	}

	ds := deviceStatus{
		Description: name,
		Bus:         "sysfs",
		Address:     dir,
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return deviceStatus{}, err
	}

	for _, f := range files {
		m := reSensorInput.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}

		scale := sysfsScale[m[1]]

		raw, err := readSysfsInt(filepath.Join(dir, f.Name()))
		if err != nil {
			s.Debugf("skipping '%s/%s': %v", dir, f.Name(), err)
			continue
		}

		label, err := readSysfsString(filepath.Join(dir, m[1]+m[2]+"_label"))
		if err != nil {
			label = fmt.Sprintf("%s %s", m[1], m[2])
		}

		ds.Status = append(ds.Status, statusItem{
			Key:   label,
			Unit:  scale.unit,
			Value: scale.ratio.Scale(float64(raw)),
		})
	}

	return ds, nil
}

func readSysfsString(path string) (string, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bs)), nil
}

func readSysfsInt(path string) (int64, error) {
	str, err := readSysfsString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(str, 10, 64)
}
