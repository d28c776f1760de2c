package search

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// NoFlightsMessage is the whole summary when no provider had an offer.
	NoFlightsMessage = "No Flight Found for the given route"
	// OtherReturnDatesHint follows a same-day round trip summary.
	OtherReturnDatesHint = "You can also check flights on other return dates."

	divider        = "-------------------------------------------------------"
	displayLayout  = "03:04 PM, 02 Jan 2006"
	providerHeader = "\n%s\n Available Flights from %s:\n"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Summary renders the result as the user-facing flight list.
func (r Result) Summary() string {
	if r.Empty() {
		return NoFlightsMessage
	}

	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	// A Caser is stateful, so each summary gets its own.
	title := cases.Title(language.English)
	var sections []string
	for _, p := range r.Providers {
		if len(p.Offers) == 0 {
			continue
		}
		sections = append(sections, providerSection(title, p, currency))
	}

	out := strings.Join(sections, "\n")
	if r.SameDayReturn {
		out += "\n\n" + OtherReturnDatesHint
	}
	return out
}

func providerSection(title cases.Caser, p ProviderResult, currency string) string {
	lines := make([]string, 0, 3*len(p.Offers))
	for _, o := range p.Offers {
		lines = append(lines,
			fmt.Sprintf("\n%s flight from %s to %s", title.String(o.Carrier), o.From, o.To),
			fmt.Sprintf("   Departure: %s | Arrival: %s", displayTime(o.DepartureAt), displayTime(o.ArrivalAt)),
		)
		for _, f := range o.Fares {
			lines = append(lines, fmt.Sprintf("   Fare: %s - %s %s", strings.ToUpper(f.Name), currency, f.Price.String()))
		}
	}
	return fmt.Sprintf(providerHeader, divider, title.String(p.Provider)) + strings.Join(lines, "\n")
}

// displayTime renders a provider timestamp, or returns it raw when it does not parse.
func displayTime(raw string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayLayout)
		}
	}
	return raw
}
