// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"errors"
	"fmt"
	"path/filepath"
)

// deviceStatus is one device worth of readings as reported by a backend.
type deviceStatus struct {
	Description string
	Bus         string
	Address     string
	Status      []statusItem
}

type statusItem struct {
	Key   string
	Unit  string
	Value float64
}

func (c *Collector) collect() (map[string]int64, error) {
	devices, err := c.source.status()
	if err != nil {
		return nil, err
	}

	builder := newChartBuilder(c.Logger)

	seen := make(map[string]bool)

	for _, ds := range devices {
		dev := c.makeDevice(&ds)

		// two devices resolving to the same id would cross-wire their
		// charts, so the whole cycle is rejected
		if seen[dev.id] {
			return nil, fmt.Errorf("duplicate device id '%s' (device '%s' at '%s')",
				dev.id, dev.label, dev.address)
		}
		seen[dev.id] = true

		for _, item := range ds.Status {
			c.collectItem(builder, dev, item)
		}
	}

	builder.buildCharts(c.charts)

	mx := builder.buildData()
	if mx == nil {
		return nil, errors.New("no data collected")
	}

	return mx, nil
}

func (c *Collector) collectItem(builder *chartBuilder, dev *device, item statusItem) {
	unit, err := lookupUnit(item.Unit)
	if err != nil {
		c.Warningf("skipping item '%s' on device '%s': %v", item.Key, dev.id, err)
		return
	}

	proto := protoForUnit(unit)

	if !proto.validateLimits(item.Value) {
		c.Warningf("bad value %v for item '%s' on device '%s' (expected within [%v, %v]), skipping",
			item.Value, item.Key, dev.id, proto.limits.min, proto.limits.max)
		return
	}

	slug := normalizeName(item.Key, proto.skipWords)

	builder.submit(proto, dev, slug, item.Key, unit.baseRatio.Scale(item.Value))
}

func (c *Collector) makeDevice(ds *deviceStatus) *device {
	name := normalizeName(ds.Description, nil)

	var id string
	switch c.DeviceID {
	case deviceIDLabel:
		id = name
	default:
		id = name + "-" + filepath.Base(ds.Address)
	}

	return &device{
		id:      id,
		name:    name,
		label:   ds.Description,
		bus:     ds.Bus,
		address: ds.Address,
	}
}
