// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_normalizeName(t *testing.T) {
	tests := map[string]struct {
		input     string
		skipWords []string
		want      string
	}{
		"word and number are glued": {
			input: "Fan 1",
			want:  "fan1",
		},
		"leading plus is stripped from voltage": {
			input: "+12.0V",
			want:  "12v0",
		},
		"skip words are dropped": {
			input:     "VIN Voltage Rail",
			skipWords: []string{"voltage", "rail"},
			want:      "vin",
		},
		"skip words match whole tokens only": {
			input:     "Railing Voltage",
			skipWords: []string{"voltage", "rail"},
			want:      "railing",
		},
		"fractional voltage": {
			input: "+3.3V rail",
			want:  "3v3-rail",
		},
		"non-alphanumeric runs collapse to one dash": {
			input: "PSU / Main   (rear)",
			want:  "psu-main-rear-",
		},
		"device label": {
			input: "Corsair Commander Pro",
			want:  "corsair-commander-pro",
		},
		"empty input": {
			input: "",
			want:  "",
		},
		"only skip words": {
			input:     "Voltage",
			skipWords: []string{"voltage"},
			want:      "",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, normalizeName(test.input, test.skipWords))
		})
	}
}

func Test_normalizeName_Deterministic(t *testing.T) {
	want := normalizeName("Fan 1 speed", []string{"speed"})

	for i := 0; i < 100; i++ {
		assert.Equal(t, want, normalizeName("Fan 1 speed", []string{"speed"}))
	}
}
