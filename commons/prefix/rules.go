// SPDX-License-Identifier: GPL-3.0-only

package prefix

import "strings"

// span returns digits[start:start+n] clamped to the string bounds.
func span(digits string, start, n int) string {
	if start >= len(digits) {
		return ""
	}
	end := start + n
	if end > len(digits) {
		end = len(digits)
	}
	return digits[start:end]
}

// digitAt returns the byte at i, or 0 past the end.
func digitAt(digits string, i int) byte {
	if i >= len(digits) {
		return 0
	}
	return digits[i]
}

func oneOf(b byte, set string) bool {
	return b != 0 && strings.IndexByte(set, b) >= 0
}

var disambiguators = map[string]Disambiguator{
	"1":   northAmerica,
	"7":   russiaKazakhstan,
	"44":  unitedKingdom,
	"47":  norway,
	"61":  australia,
	"212": morocco,
	"262": reunionMayotte,
	"358": finlandAland,
	"672": norfolkIsland,
}

var refiners = map[string]func(string) CountryCode{
	"1": puertoRico,
}

// +1: Canada by area code, 939 refused, everything else (Caribbean included) is US.
func northAmerica(d string) (CountryCode, bool) {
	area := span(d, 1, 3)
	if area == "939" {
		return "", false
	}
	if canadaAreaCodes.Has(area) {
		return "CA", true
	}
	return "US", true
}

func puertoRico(d string) CountryCode {
	if puertoRicoAreaCodes.Has(span(d, 1, 3)) {
		return "PR"
	}
	return ""
}

func russiaKazakhstan(d string) (CountryCode, bool) {
	first := digitAt(d, 1)
	switch {
	case first == '9':
		return "RU", true
	case oneOf(first, "3458"):
		return "", false
	case kazakhstanValid.Has(span(d, 1, 3)):
		return "KZ", true
	case kazakhstanReject.Has(span(d, 1, 2)):
		return "", false
	case first == '6':
		return "KZ", true
	}
	return "", false
}

// +44 takes its pair check one digit further in than its leading-digit and
// four-digit checks: 4477 00... is refused while 4476 24... reaches Isle of Man.
func unitedKingdom(d string) (CountryCode, bool) {
	if oneOf(digitAt(d, 2), "12358") {
		return "", false
	}
	pair, quad := span(d, 3, 2), span(d, 2, 4)
	switch {
	case pair == "70":
		return "", false
	case pair == "76" && quad != "7624":
		return "", false
	case isleOfManPrefixes.Has(quad):
		return "IM", true
	case guernseyPrefixes.Has(quad):
		return "GG", true
	case jerseyPrefixes.Has(quad):
		return "JE", true
	}
	return "GB", true
}

// +47 79 is Svalbard, which is not a destination.
func norway(d string) (CountryCode, bool) {
	if oneOf(digitAt(d, 2), "23568") || span(d, 2, 2) == "79" {
		return "", false
	}
	return "NO", true
}

// Mobile ranges only.
func australia(d string) (CountryCode, bool) {
	if oneOf(digitAt(d, 2), "45") {
		return "AU", true
	}
	return "", false
}

func morocco(d string) (CountryCode, bool) {
	if oneOf(digitAt(d, 3), "67") {
		return "MA", true
	}
	return "", false
}

func reunionMayotte(d string) (CountryCode, bool) {
	block := span(d, 3, 3)
	switch {
	case indianOceanDiscard.Has(block) || digitAt(d, 3) == '8':
		return "", false
	case mayottePrefixes.Has(block):
		return "YT", true
	case reunionPrefixes.Has(block):
		return "RE", true
	}
	return "", false
}

func finlandAland(d string) (CountryCode, bool) {
	switch {
	case span(d, 3, 3) == alandPrefix:
		return "AX", true
	case digitAt(d, 3) == finlandFirstDigit || span(d, 3, 2) == finlandSecondaryPair:
		return "FI", true
	}
	return "", false
}

func norfolkIsland(d string) (CountryCode, bool) {
	if span(d, 3, 2) == norfolkPrefix {
		return "NF", true
	}
	return "", false
}
