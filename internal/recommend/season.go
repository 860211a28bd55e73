package recommend

import (
	"strings"
	"time"
)

// Season is the meteorological season at the destination.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// southernHemisphere lists destinations whose seasons are inverted
// relative to the meteorological month buckets.
var southernHemisphere = map[string]bool{
	"AU": true, "NZ": true, "AR": true, "CL": true, "UY": true,
	"PY": true, "BO": true, "PE": true, "BR": true, "ZA": true,
	"NA": true, "BW": true, "ZW": true, "MZ": true, "MG": true,
}

// SeasonFor buckets the trip start month (Dec-Feb winter, Mar-May spring,
// Jun-Aug summer, Sep-Nov autumn) and inverts for southern destinations.
func SeasonFor(start time.Time, destinationCountry string) Season {
	var s Season
	switch start.Month() {
	case time.December, time.January, time.February:
		s = SeasonWinter
	case time.March, time.April, time.May:
		s = SeasonSpring
	case time.June, time.July, time.August:
		s = SeasonSummer
	default:
		s = SeasonAutumn
	}
	if southernHemisphere[toUpperASCII(destinationCountry)] {
		s = invert(s)
	}
	return s
}

func invert(s Season) Season {
	switch s {
	case SeasonWinter:
		return SeasonSummer
	case SeasonSummer:
		return SeasonWinter
	case SeasonSpring:
		return SeasonAutumn
	default:
		return SeasonSpring
	}
}

// winterKeywords flags products that make no sense in a summer trip,
// matched case-insensitively against labels and tags. French spellings
// are included because the source catalog mixes both languages.
var winterKeywords = []string{
	"doudoune", "parka", "puffer", "thermal", "thermique",
	"beanie", "bonnet", "gloves", "gants", "scarf", "écharpe", "echarpe",
	"ski", "moufle",
}

// matchesWinterKeyword reports whether the label or any tag contains a
// winter-clothing keyword.
func matchesWinterKeyword(label string, productTags []string) bool {
	if containsWinterKeyword(label) {
		return true
	}
	for _, t := range productTags {
		if containsWinterKeyword(t) {
			return true
		}
	}
	return false
}

func containsWinterKeyword(s string) bool {
	low := strings.ToLower(s)
	for _, kw := range winterKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}
