package booking

import (
	"regexp"
	"strconv"
	"strings"
)

var travelerPhrase = regexp.MustCompile(`(\d+)\s*(adult|child|children|kid|infant|baby|babies)s?\b`)

var travelerTypes = map[string]string{
	"adult":    "adult",
	"adults":   "adult",
	"child":    "child",
	"children": "child",
	"kid":      "child",
	"kids":     "child",
	"infant":   "infant",
	"infants":  "infant",
	"baby":     "infant",
	"babies":   "infant",
}

// NormalizeTravelers folds traveler entries into counts. An empty input means
// the field was absent and yields DefaultTravelers; otherwise unparseable
// entries contribute nothing and all-zero counts are a valid result.
func NormalizeTravelers(entries []RawTraveler) TravelerCounts {
	if len(entries) == 0 {
		return DefaultTravelers
	}

	var counts TravelerCounts
	for _, e := range entries {
		if e.Structured {
			counts.add(e.Type, e.Count)
			continue
		}
		for _, m := range travelerPhrase.FindAllStringSubmatch(strings.ToLower(e.Phrase), -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			counts.add(m[2], n)
		}
	}
	return counts
}

func (c *TravelerCounts) add(kind string, n int) {
	if n < 0 {
		return
	}
	switch travelerTypes[strings.TrimSpace(kind)] {
	case "adult":
		c.Adult += n
	case "child":
		c.Child += n
	case "infant":
		c.Infant += n
	}
}
