package search

import (
	"github.com/samber/lo"

	"skybook/internal/modules/booking"
)

// airlineProviders maps airline codes to the content provider carrying them.
// Codes missing here are their own provider.
var airlineProviders = map[string]string{
	"pia":       "amadeus",
	"flyjinnah": "oneapi",
	"serene":    "sereneair",
}

func providerFor(airline string) string {
	if p, ok := airlineProviders[airline]; ok {
		return p
	}
	return airline
}

// SelectProviders narrows integrated to the providers serving airlines.
// No airlines, or none that an integrated provider serves, selects all of them.
func SelectProviders(airlines, integrated []string) []string {
	wanted := lo.Map(airlines, func(a string, _ int) string { return providerFor(a) })
	selected := lo.Filter(integrated, func(p string, _ int) bool { return lo.Contains(wanted, p) })
	if len(selected) == 0 {
		return append([]string(nil), integrated...)
	}
	return selected
}

// Assemble builds one request per selected provider for record.
func Assemble(record booking.Record, providers []string) []Request {
	locations := lo.Map(record.Locations(), func(code string, _ int) Location {
		return Location{IATA: code, Type: "airport"}
	})
	travelers := []Traveler{
		{Type: "adult", Count: record.Travelers.Adult},
		{Type: "child", Count: record.Travelers.Child},
		{Type: "infant", Count: record.Travelers.Infant},
	}
	dates := record.TravelingDates()

	selected := SelectProviders(record.Airlines, providers)
	reqs := make([]Request, 0, len(selected))
	for _, p := range selected {
		reqs = append(reqs, Request{
			Provider: p,
			Payload: Payload{
				Locations:       locations,
				ContentProvider: p,
				Currency:        DefaultCurrency,
				TravelClass:     record.TravelClass,
				TripType:        record.TripType.String(),
				TravelingDates:  dates,
				Travelers:       travelers,
			},
		})
	}
	return reqs
}
