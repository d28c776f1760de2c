package booking

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
)

// airlineMatchCutoff is the minimum similarity ratio for a fuzzy airline match.
const airlineMatchCutoff = 0.6

var cityToIATA = map[string]string{
	"islamabad":        "ISB",
	"karachi":          "KHI",
	"lahore":           "LHE",
	"peshawar":         "PEW",
	"quetta":           "UET",
	"multan":           "MUX",
	"faisalabad":       "LYP",
	"sialkot":          "SKT",
	"skardu":           "KDU",
	"gilgit":           "GIL",
	"chitral":          "CJL",
	"sukkur":           "SKZ",
	"rahim_yar_khan":   "RYK",
	"gwadar":           "GWD",
	"turbat":           "TUK",
	"panjgur":          "PJG",
	"pasni":            "PSI",
	"jiwani":           "JIW",
	"dalbandin":        "DBA",
	"khuzdar":          "KDD",
	"nawabshah":        "WNS",
	"jacobabad":        "JAG",
	"dera_ghazi_khan":  "DEA",
	"dera_ismail_khan": "DSK",
	"parachinar":       "PAJ",
	"zhob":             "PZH",
	"muzaffarabad":     "MFG",
	"saidu_sharif":     "SDT",
	"mohenjodaro":      "MJD",
	"mianwali":         "MWD",
	"sibi":             "SBQ",
	"sui":              "SUL",
	"ormara":           "ORW",
	"kohat":            "OHT",
}

// knownIATA lets already-coded places pass through unchanged.
var knownIATA = lo.Invert(cityToIATA)

// airlineNames maps lowercased display names and internal codes to internal codes.
var airlineNames = map[string]string{
	"pia":                    "pia",
	"pakistan international": "pia",
	"air sial":               "airsial",
	"airsial":                "airsial",
	"airblue":                "airblue",
	"air blue":               "airblue",
	"serene air":             "serene",
	"sereneair":              "serene",
	"serene":                 "serene",
	"fly jinnah":             "flyjinnah",
	"flyjinnah":              "flyjinnah",
	"amadeus":                "amadeus",
	"oneapi":                 "oneapi",
}

// airlineCandidates is sorted so fuzzy ties resolve the same way every run.
var airlineCandidates = func() []string {
	keys := lo.Keys(airlineNames)
	sort.Strings(keys)
	return keys
}()

// CityToCode maps a city name (or a known IATA code) to its IATA code.
func CityToCode(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if _, ok := knownIATA[strings.ToUpper(name)]; ok {
		return strings.ToUpper(name), true
	}
	key := strings.Join(strings.Fields(strings.ToLower(name)), "_")
	code, ok := cityToIATA[key]
	return code, ok
}

// AirlineToCode maps an airline name to its internal code, tolerating misspelling.
func AirlineToCode(name string) (string, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if key == "" {
		return "", false
	}
	if code, ok := airlineNames[key]; ok {
		return code, true
	}

	best, bestRatio := "", 0.0
	matcher := difflib.NewMatcher(nil, nil)
	matcher.SetSeq2(strings.Split(key, ""))
	for _, candidate := range airlineCandidates {
		matcher.SetSeq1(strings.Split(candidate, ""))
		if ratio := matcher.Ratio(); ratio > bestRatio {
			best, bestRatio = candidate, ratio
		}
	}
	if bestRatio < airlineMatchCutoff {
		return "", false
	}
	return airlineNames[best], true
}

// DetectAirlines resolves every name it can and returns the distinct codes in input order.
func DetectAirlines(names []string) []string {
	codes := lo.FilterMap(names, func(name string, _ int) (string, bool) {
		return AirlineToCode(name)
	})
	return lo.Uniq(codes)
}
