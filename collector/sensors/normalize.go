// SPDX-License-Identifier: GPL-3.0-or-later

package sensors

import (
	"regexp"
	"slices"
	"strings"
)

var (
	reWordNumber  = regexp.MustCompile(`([a-z]+) ([0-9]+)`)
	rePlusVoltage = regexp.MustCompile(`\+([0-9.]+v)`)
	reVoltageDot  = regexp.MustCompile(`([0-9]+)\.([0-9]+)v`)
	reNonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)
)

// normalizeName turns a human-readable sensor or device name into a stable
// slug. The passes run in a fixed order: lowercase, drop skip words, glue
// "word N" pairs, strip leading '+' from voltage designators, move the dot
// out of fractional voltages ("12.0v" -> "12v0"), then collapse every
// remaining non-alphanumeric run into a single '-'.
//
// Changing the pass order changes slugs, and slugs are chart and dimension
// identities, so the order is part of the on-wire contract.
func normalizeName(name string, skipWords []string) string {
	r := strings.ToLower(name)

	if len(skipWords) > 0 {
		var kept []string
		for _, word := range strings.Fields(r) {
			if !slices.Contains(skipWords, word) {
				kept = append(kept, word)
			}
		}
		r = strings.Join(kept, " ")
	}

	r = reWordNumber.ReplaceAllString(r, "$1$2")
	r = rePlusVoltage.ReplaceAllString(r, "$1")
	r = reVoltageDot.ReplaceAllString(r, "${1}v$2")
	r = reNonAlphaNum.ReplaceAllString(r, "-")

	return r
}
