// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"errors"
	"fmt"
)

// SensorKind identifies the physical quantity a reading measures. Its
// numeric value defines the relative chart ordering on the dashboard.
type SensorKind int

const (
	kindTemperature SensorKind = iota + 1
	kindFan
	kindPower
	kindVoltage
	kindCurrent
	kindEfficiency
	kindTime
)

func (k SensorKind) String() string {
	switch k {
	case kindTemperature:
		return "temperature"
	case kindFan:
		return "fan"
	case kindPower:
		return "power"
	case kindVoltage:
		return "voltage"
	case kindCurrent:
		return "current"
	case kindEfficiency:
		return "efficiency"
	case kindTime:
		return "time"
	}
	return "unknown"
}

var errUnsupportedUnit = errors.New("unsupported unit")

// inputUnit maps a raw reading unit string to a sensor kind and an optional
// base ratio applied to the raw value before accumulation (e.g. for inputs
// reported in milli-units).
type inputUnit struct {
	kind      SensorKind
	name      string
	baseRatio Ratio
}

var inputUnits = map[string]inputUnit{
	"°C":  {kind: kindTemperature, name: "°C"},
	"rpm": {kind: kindFan, name: "rpm"},
	"W":   {kind: kindPower, name: "W"},
	"V":   {kind: kindVoltage, name: "V"},
	"A":   {kind: kindCurrent, name: "A"},
	"%":   {kind: kindEfficiency, name: "%"},
	"s":   {kind: kindTime, name: "s"},
}

// lookupUnit resolves a raw unit string. The match is exact, no case folding
// or whitespace trimming: an unrecognized unit means the reading cannot be
// classified and must be skipped.
func lookupUnit(unit string) (inputUnit, error) {
	u, ok := inputUnits[unit]
	if !ok {
		return inputUnit{}, fmt.Errorf("%w: '%s'", errUnsupportedUnit, unit)
	}
	return u, nil
}
