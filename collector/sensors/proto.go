// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

// chartProto describes the per-kind chart a reading is aggregated into:
// the chart identity, the fixed-point store ratio, the validity range and
// the words dropped from item names during slug normalization.
type chartProto struct {
	kind       SensorKind
	name       string
	title      string
	units      string
	storeRatio Ratio
	limits     *limits
	skipWords  []string
}

type limits struct {
	min, max float64
}

// validateLimits reports whether v falls within the prototype validity
// range. Prototypes without limits accept any value.
func (p *chartProto) validateLimits(v float64) bool {
	if p.limits == nil {
		return true
	}
	return p.limits.min <= v && v <= p.limits.max
}

var chartProtos = map[SensorKind]*chartProto{
	kindTemperature: {
		kind:       kindTemperature,
		name:       "temperature",
		title:      "Temperature",
		units:      "Celsius",
		storeRatio: Ratio{Num: 1000, Den: 1},
		limits:     &limits{min: -200, max: 200},
		skipWords:  []string{"temperature"},
	},
	kindFan: {
		kind:      kindFan,
		name:      "fan",
		title:     "Fans speed",
		units:     "Rotations/min",
		limits:    &limits{min: 0, max: 10000},
		skipWords: []string{"speed"},
	},
	kindPower: {
		kind:       kindPower,
		name:       "power",
		title:      "Power",
		units:      "Watt",
		storeRatio: Ratio{Num: 1000, Den: 1},
		limits:     &limits{min: 0, max: 10000},
		skipWords:  []string{"power"},
	},
	kindVoltage: {
		kind:       kindVoltage,
		name:       "voltage",
		title:      "Voltage",
		units:      "Volt",
		storeRatio: Ratio{Num: 1000, Den: 1},
		limits:     &limits{min: 0, max: 1000},
		skipWords:  []string{"voltage", "rail"},
	},
	kindCurrent: {
		kind:       kindCurrent,
		name:       "current",
		title:      "Current",
		units:      "Ampere",
		storeRatio: Ratio{Num: 1000, Den: 1},
		limits:     &limits{min: 0, max: 1000},
		skipWords:  []string{"current"},
	},
	kindEfficiency: {
		kind:       kindEfficiency,
		name:       "efficiency",
		title:      "Efficiency",
		units:      "Percent",
		storeRatio: Ratio{Num: 1000, Den: 1},
		limits:     &limits{min: 0, max: 100},
		skipWords:  []string{"efficiency"},
	},
	kindTime: {
		kind:  kindTime,
		name:  "uptime",
		title: "Uptime",
		units: "seconds",
	},
}

// protoForUnit resolves the chart prototype for a classified input unit.
func protoForUnit(u inputUnit) *chartProto {
	return chartProtos[u.kind]
}
