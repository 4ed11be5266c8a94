// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"fmt"

	"github.com/intelfx/netdata/agent/module"
	"github.com/intelfx/netdata/logger"
)

// device is the normalized identity of a monitored device.
type device struct {
	id      string // normalized unique slug (e.g. "corsair-commander-pro-hidraw2")
	name    string // normalized non-unique slug (e.g. "corsair-commander-pro")
	label   string // human-readable name (e.g. "Corsair Commander Pro")
	bus     string // raw bus name (e.g. "hid")
	address string // raw device address (e.g. "/dev/hidraw2")
}

// chartKey identifies one aggregated chart: all readings of one kind on one
// device land on the same chart.
type chartKey struct {
	deviceID string
	kind     SensorKind
}

type dataPoint struct {
	dimID    string // normalized item slug, unique within the chart
	dimLabel string // original item name
	value    float64
}

type chartGroup struct {
	proto  *chartProto
	device *device
	points []dataPoint
}

// chartBuilder accumulates classified readings over one collection cycle and
// turns them into chart definitions and a dimension-id to value mapping.
// A builder is single-use: one per Collect call.
type chartBuilder struct {
	*logger.Logger

	groups map[chartKey]*chartGroup
	order  []chartKey
}

func newChartBuilder(log *logger.Logger) *chartBuilder {
	return &chartBuilder{
		Logger: log,
		groups: make(map[chartKey]*chartGroup),
	}
}

func chartID(dev *device, proto *chartProto) string {
	return fmt.Sprintf("%s_%s", dev.id, proto.name)
}

func dimID(dev *device, proto *chartProto, itemSlug string) string {
	return fmt.Sprintf("%s_%s_%s", dev.id, proto.name, itemSlug)
}

// submit adds one classified reading to its per-device, per-kind group.
// Slug collisions within a chart are disambiguated with a numeric suffix so
// that two distinct readings never share a dimension.
func (b *chartBuilder) submit(proto *chartProto, dev *device, itemSlug, itemLabel string, value float64) {
	key := chartKey{deviceID: dev.id, kind: proto.kind}

	group, ok := b.groups[key]
	if !ok {
		group = &chartGroup{proto: proto, device: dev}
		b.groups[key] = group
		b.order = append(b.order, key)
	}

	slug := itemSlug
	for n := 2; groupHasDim(group, slug); n++ {
		slug = fmt.Sprintf("%s-%d", itemSlug, n)
	}
	if slug != itemSlug {
		b.Warningf("duplicate sensor slug '%s' on device '%s' (%s chart), using '%s'",
			itemSlug, dev.id, proto.name, slug)
	}

	group.points = append(group.points, dataPoint{
		dimID:    slug,
		dimLabel: itemLabel,
		value:    value,
	})
}

func groupHasDim(group *chartGroup, slug string) bool {
	for _, p := range group.points {
		if p.dimID == slug {
			return true
		}
	}
	return false
}

// buildCharts registers a chart definition for every accumulated group that
// is not present in charts yet. Existing charts are left untouched: the
// first collection cycle a group appears on fixes its dimension set.
func (b *chartBuilder) buildCharts(charts *module.Charts) {
	for _, key := range b.order {
		group := b.groups[key]

		id := chartID(group.device, group.proto)
		if charts.Has(id) {
			continue
		}

		chart := &module.Chart{
			ID:       id,
			Title:    group.proto.title,
			Units:    group.proto.units,
			Fam:      group.proto.name,
			Ctx:      fmt.Sprintf("sensors.%s", group.proto.name),
			Type:     module.Line,
			Priority: module.Priority + int(group.proto.kind),
			Labels: []module.Label{
				{Key: "sensor_id", Value: group.device.id},
				{Key: "sensor_name", Value: group.device.name},
				{Key: "sensor_bus", Value: group.device.bus},
				{Key: "sensor_address", Value: group.device.address},
			},
		}

		for _, p := range group.points {
			dim := &module.Dim{
				ID:   dimID(group.device, group.proto, p.dimID),
				Name: p.dimLabel,
				Algo: module.Absolute,
				Mul:  int(group.proto.storeRatio.Denominator()),
				Div:  int(group.proto.storeRatio.Numerator()),
			}
			if err := chart.AddDim(dim); err != nil {
				b.Warningf("cannot add dimension '%s' to chart '%s': %v", dim.ID, id, err)
			}
		}

		if err := charts.Add(chart); err != nil {
			b.Warningf("cannot add chart '%s': %v", id, err)
		}
	}
}

// buildData converts every accumulated data point to fixed point using the
// prototype store ratio. Returns nil when nothing was accumulated.
func (b *chartBuilder) buildData() map[string]int64 {
	if len(b.order) == 0 {
		return nil
	}

	mx := make(map[string]int64)
	for _, key := range b.order {
		group := b.groups[key]
		for _, p := range group.points {
			mx[dimID(group.device, group.proto, p.dimID)] = group.proto.storeRatio.ScaleInt64(p.value)
		}
	}
	return mx
}
