// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"errors"
	"os"
	"testing"

	"github.com/intelfx/netdata/agent/module"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dataConfigJSON, _ = os.ReadFile("testdata/config.json")
	dataConfigYAML, _ = os.ReadFile("testdata/config.yaml")

	dataLiquidctlStatus, _ = os.ReadFile("testdata/liquidctl-status.json")
)

func Test_testDataIsValid(t *testing.T) {
	for name, data := range map[string][]byte{
		"dataConfigJSON":      dataConfigJSON,
		"dataConfigYAML":      dataConfigYAML,
		"dataLiquidctlStatus": dataLiquidctlStatus,
	} {
		require.NotNil(t, data, name)
	}
}

func TestCollector_Configuration(t *testing.T) {
	module.TestConfigurationSerialize(t, &Collector{}, dataConfigJSON, dataConfigYAML)
}

func TestCollector_Init(t *testing.T) {
	tests := map[string]struct {
		config   Config
		wantFail bool
	}{
		"success with sysfs mode": {
			wantFail: false,
			config: func() Config {
				cfg := New().Config
				cfg.Mode = modeSysfs
				return cfg
			}(),
		},
		"fails with invalid mode": {
			wantFail: true,
			config: func() Config {
				cfg := New().Config
				cfg.Mode = "hwmon"
				return cfg
			}(),
		},
		"fails with invalid device_id": {
			wantFail: true,
			config: func() Config {
				cfg := New().Config
				cfg.DeviceID = "serial"
				return cfg
			}(),
		},
		"fails with nonexistent binary path": {
			wantFail: true,
			config: func() Config {
				cfg := New().Config
				cfg.BinaryPath = "/usr/bin/liquidctl-nonexistent"
				return cfg
			}(),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			collr := New()
			collr.Config = test.config

			if test.wantFail {
				assert.Error(t, collr.Init())
			} else {
				assert.NoError(t, collr.Init())
			}
		})
	}
}

func TestCollector_Cleanup(t *testing.T) {
	tests := map[string]struct {
		prepare func(t *testing.T) *Collector
	}{
		"not initialized": {
			prepare: func(t *testing.T) *Collector {
				return New()
			},
		},
		"after check": {
			prepare: func(t *testing.T) *Collector {
				collr := prepareCollectorOk(t)
				_ = collr.Check()
				return collr
			},
		},
		"after collect": {
			prepare: func(t *testing.T) *Collector {
				collr := prepareCollectorOk(t)
				_ = collr.Collect()
				return collr
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			collr := test.prepare(t)

			assert.NotPanics(t, collr.Cleanup)
		})
	}
}

func TestCollector_Charts(t *testing.T) {
	assert.NotNil(t, New().Charts())
}

func TestCollector_Check(t *testing.T) {
	tests := map[string]struct {
		prepare  func(t *testing.T) *Collector
		wantFail bool
	}{
		"two devices": {
			wantFail: false,
			prepare:  prepareCollectorOk,
		},
		"error on status": {
			wantFail: true,
			prepare: func(t *testing.T) *Collector {
				collr := New()
				collr.source = &mockSource{err: errors.New("mock.status() error")}
				return collr
			},
		},
		"no devices": {
			wantFail: true,
			prepare: func(t *testing.T) *Collector {
				collr := New()
				collr.source = &mockSource{}
				return collr
			},
		},
		"no classifiable readings": {
			wantFail: true,
			prepare: func(t *testing.T) *Collector {
				collr := New()
				collr.source = &mockSource{devices: []deviceStatus{
					{
						Description: "Corsair HX750i",
						Bus:         "hid",
						Address:     "/dev/hidraw3",
						Status: []statusItem{
							{Key: "Firmware version", Unit: "", Value: 0},
						},
					},
				}}
				return collr
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			collr := test.prepare(t)

			if test.wantFail {
				assert.Error(t, collr.Check())
			} else {
				assert.NoError(t, collr.Check())
			}
		})
	}
}

func TestCollector_Collect(t *testing.T) {
	tests := map[string]struct {
		prepare     func(t *testing.T) *Collector
		wantMetrics map[string]int64
		wantCharts  int
	}{
		"two devices": {
			prepare:    prepareCollectorOk,
			wantCharts: 8,
			wantMetrics: map[string]int64{
				"corsair-commander-pro-hidraw2_temperature_1": 36600,
				"corsair-commander-pro-hidraw2_temperature_2": 31200,
				"corsair-commander-pro-hidraw2_fan_fan1":      1200,
				"corsair-commander-pro-hidraw2_fan_fan2":      980,
				"corsair-commander-pro-hidraw2_voltage_12v":   12030,
				"corsair-commander-pro-hidraw2_voltage_5v":    5020,
				"corsair-commander-pro-hidraw2_voltage_3v3":   3320,
				"corsair-hx750i-hidraw3_voltage_vin":          230000,
				"corsair-hx750i-hidraw3_power_total-output":   152500,
				"corsair-hx750i-hidraw3_current_12v-output":   9300,
				"corsair-hx750i-hidraw3_efficiency_estimated": 91200,
				"corsair-hx750i-hidraw3_uptime_uptime":        5417,
			},
		},
		"out of range reading is skipped": {
			prepare: func(t *testing.T) *Collector {
				collr := New()
				collr.source = &mockSource{devices: []deviceStatus{
					{
						Description: "Corsair Commander Pro",
						Bus:         "hid",
						Address:     "/dev/hidraw2",
						Status: []statusItem{
							{Key: "Temperature 1", Unit: "°C", Value: 500},
							{Key: "Temperature 2", Unit: "°C", Value: 31.2},
						},
					},
				}}
				return collr
			},
			wantCharts: 1,
			wantMetrics: map[string]int64{
				"corsair-commander-pro-hidraw2_temperature_2": 31200,
			},
		},
		"unsupported unit is skipped": {
			prepare: func(t *testing.T) *Collector {
				collr := New()
				collr.source = &mockSource{devices: []deviceStatus{
					{
						Description: "Corsair HX750i",
						Bus:         "hid",
						Address:     "/dev/hidraw3",
						Status: []statusItem{
							{Key: "Firmware version", Unit: "", Value: 0},
							{Key: "Total power output", Unit: "W", Value: 152.5},
						},
					},
				}}
				return collr
			},
			wantCharts: 1,
			wantMetrics: map[string]int64{
				"corsair-hx750i-hidraw3_power_total-output": 152500,
			},
		},
		"duplicate device id": {
			prepare: func(t *testing.T) *Collector {
				dev := deviceStatus{
					Description: "Corsair Commander Pro",
					Bus:         "hid",
					Address:     "/dev/hidraw2",
					Status: []statusItem{
						{Key: "Temperature 1", Unit: "°C", Value: 36.6},
					},
				}
				collr := New()
				collr.source = &mockSource{devices: []deviceStatus{dev, dev}}
				return collr
			},
			wantCharts:  0,
			wantMetrics: nil,
		},
		"error on status": {
			prepare: func(t *testing.T) *Collector {
				collr := New()
				collr.source = &mockSource{err: errors.New("mock.status() error")}
				return collr
			},
			wantCharts:  0,
			wantMetrics: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			collr := test.prepare(t)

			mx := collr.Collect()

			assert.Equal(t, test.wantMetrics, mx)
			assert.Len(t, *collr.Charts(), test.wantCharts)

			if len(test.wantMetrics) > 0 {
				module.TestMetricsHasAllChartsDims(t, collr.Charts(), mx)
			}
		})
	}
}

func TestCollector_Collect_RecoversAfterDuplicateDevice(t *testing.T) {
	dev := deviceStatus{
		Description: "Corsair Commander Pro",
		Bus:         "hid",
		Address:     "/dev/hidraw2",
		Status: []statusItem{
			{Key: "Temperature 1", Unit: "°C", Value: 36.6},
		},
	}

	collr := New()
	collr.source = &seqSource{polls: [][]deviceStatus{
		{dev, dev},
		{dev},
	}}

	assert.Nil(t, collr.Collect())
	assert.Len(t, *collr.Charts(), 0)

	mx := collr.Collect()

	assert.Equal(t, map[string]int64{
		"corsair-commander-pro-hidraw2_temperature_1": 36600,
	}, mx)
	assert.Len(t, *collr.Charts(), 1)
	module.TestMetricsHasAllChartsDims(t, collr.Charts(), mx)
}

func TestCollector_Collect_ChartsAreStable(t *testing.T) {
	collr := prepareCollectorOk(t)

	mx := collr.Collect()
	require.NotNil(t, mx)
	numCharts := len(*collr.Charts())

	var numDims int
	for _, chart := range *collr.Charts() {
		numDims += len(chart.Dims)
	}

	mx2 := collr.Collect()

	assert.Equal(t, mx, mx2)
	assert.Len(t, *collr.Charts(), numCharts)

	var numDims2 int
	for _, chart := range *collr.Charts() {
		numDims2 += len(chart.Dims)
	}
	assert.Equal(t, numDims, numDims2)
}

func TestCollector_Collect_ChartProperties(t *testing.T) {
	collr := prepareCollectorOk(t)

	require.NotNil(t, collr.Collect())

	chart := collr.Charts().Get("corsair-commander-pro-hidraw2_temperature")
	require.NotNil(t, chart)

	assert.Equal(t, "Temperature", chart.Title)
	assert.Equal(t, "Celsius", chart.Units)
	assert.Equal(t, "temperature", chart.Fam)
	assert.Equal(t, "sensors.temperature", chart.Ctx)
	assert.Equal(t, module.Priority+int(kindTemperature), chart.Priority)

	wantLabels := []module.Label{
		{Key: "sensor_id", Value: "corsair-commander-pro-hidraw2"},
		{Key: "sensor_name", Value: "corsair-commander-pro"},
		{Key: "sensor_bus", Value: "hid"},
		{Key: "sensor_address", Value: "/dev/hidraw2"},
	}
	assert.Equal(t, wantLabels, chart.Labels)

	dim := chart.GetDim("corsair-commander-pro-hidraw2_temperature_1")
	require.NotNil(t, dim)

	assert.Equal(t, "Temperature 1", dim.Name)
	assert.Equal(t, module.Absolute, dim.Algo)
	assert.Equal(t, 1, dim.Mul)
	assert.Equal(t, 1000, dim.Div)
}

type mockSource struct {
	devices []deviceStatus
	err     error
}

func (m *mockSource) status() ([]deviceStatus, error) {
	return m.devices, m.err
}

// seqSource returns a different set of devices on each poll,
// sticking with the last set once the list is exhausted.
type seqSource struct {
	polls [][]deviceStatus
	calls int
}

func (m *seqSource) status() ([]deviceStatus, error) {
	i := min(m.calls, len(m.polls)-1)
	m.calls++
	return m.polls[i], nil
}

func prepareCollectorOk(t *testing.T) *Collector {
	t.Helper()

	devices, err := parseStatus(dataLiquidctlStatus)
	require.NoError(t, err)

	collr := New()
	collr.source = &mockSource{devices: devices}

	return collr
}
