// README: Normalizer turns an oracle extraction into a canonical record or a clarification.
package booking

import (
	"fmt"
	"strings"
)

// Normalizer validates and repairs extractions. It holds no per-call state.
type Normalizer struct {
	dates *DateResolver
}

func NewNormalizer(dates *DateResolver) *Normalizer {
	return &Normalizer{dates: dates}
}

// Dates exposes the resolver used for every date field.
func (n *Normalizer) Dates() *DateResolver {
	return n.dates
}

// Normalize maps raw onto one of the three booking shapes. Rejections and
// clarifications are outcomes; only an unrecognized trip type is an error.
func (n *Normalizer) Normalize(raw RawExtraction) (Outcome, error) {
	if raw.Message != "" {
		return Outcome{Kind: OutcomeRejection, Rejection: raw.Message}, nil
	}

	tripType, err := ParseTripType(raw.TripType)
	if err != nil {
		return Outcome{}, err
	}

	base := Record{
		TripType:    tripType,
		TravelClass: travelClass(raw.TravelClass),
		Travelers:   NormalizeTravelers(raw.Travelers),
	}
	if airlines := DetectAirlines(raw.Airlines); len(airlines) > 0 {
		base.Airlines = airlines
	}

	switch tripType {
	case OneWay:
		return n.oneWay(base, raw.Source, raw.Destination, raw.Date), nil
	case RoundTrip:
		return n.roundTrip(base, raw), nil
	case MultiCity:
		return n.multiCity(base, raw.Flights), nil
	default:
		return Outcome{}, fmt.Errorf("%w: %v", ErrUnknownTripType, tripType)
	}
}

func travelClass(class string) string {
	class = strings.Join(strings.Fields(strings.ToLower(class)), "_")
	if class == "" {
		return DefaultTravelClass
	}
	return class
}

func (n *Normalizer) oneWay(base Record, source, destination, date string) Outcome {
	base.TripType = OneWay
	base.Source, _ = CityToCode(source)
	base.Destination, _ = CityToCode(destination)

	if date == "" {
		return clarify("Please provide your travel date.", base, "date")
	}
	resolved, err := n.dates.ResolveISO(date)
	if err != nil {
		return clarify(fmt.Sprintf("I couldn't understand the travel date %q. Please provide it again.", date), base, "date")
	}
	base.DepartureDate = resolved

	if out, ok := placeClarification(base, source, destination); ok {
		return out
	}
	return recordOutcome(base)
}

type dateState int

const (
	dateAbsent dateState = iota
	dateInvalid
	dateResolved
)

func (n *Normalizer) resolveField(text string) (string, dateState) {
	if text == "" {
		return "", dateAbsent
	}
	resolved, err := n.dates.ResolveISO(text)
	if err != nil {
		return "", dateInvalid
	}
	return resolved, dateResolved
}

func (n *Normalizer) roundTrip(base Record, raw RawExtraction) Outcome {
	base.Source, _ = CityToCode(raw.Source)
	base.Destination, _ = CityToCode(raw.Destination)

	dep, depState := n.resolveField(raw.DepartureDate)
	ret, retState := n.resolveField(raw.ReturnDate)
	base.DepartureDate, base.ReturnDate = dep, ret

	switch {
	case depState != dateResolved && retState != dateResolved:
		return clarify("Please provide both your departure and return dates.", base, "departure_date", "return_date")
	case depState != dateResolved:
		return clarify("Please provide your departure date.", base, "departure_date")
	case retState == dateAbsent:
		base.ReturnDate = dep
	case retState == dateInvalid:
		return clarify(fmt.Sprintf("I couldn't understand the return date %q. Please provide it again.", raw.ReturnDate), base, "return_date")
	case ret < dep:
		return clarify("Your return date is before your departure date. Please check both dates.", base, "return_date")
	}

	if out, ok := placeClarification(base, raw.Source, raw.Destination); ok {
		return out
	}
	return recordOutcome(base)
}

// multiCity aborts on the first leg with a missing or unresolvable field,
// and silently drops legs whose cities are not served.
func (n *Normalizer) multiCity(base Record, flights []RawLeg) Outcome {
	var legs []Leg
	for i, f := range flights {
		var missing string
		switch {
		case f.Source == "":
			missing = "source"
		case f.Destination == "":
			missing = "destination"
		case f.Date == "":
			missing = "date"
		}
		if missing != "" {
			return clarify(fmt.Sprintf("Flight %d is missing its %s. Please provide it.", i+1, missing), base,
				fmt.Sprintf("flights[%d].%s", i, missing))
		}

		date, err := n.dates.ResolveISO(f.Date)
		if err != nil {
			return clarify(fmt.Sprintf("I couldn't understand the date %q of flight %d. Please provide it again.", f.Date, i+1), base,
				fmt.Sprintf("flights[%d].date", i))
		}

		source, okSource := CityToCode(f.Source)
		destination, okDestination := CityToCode(f.Destination)
		if !okSource || !okDestination {
			continue
		}
		legs = append(legs, Leg{Source: source, Destination: destination, Date: date})
	}

	switch len(legs) {
	case 0:
		base.TripType = OneWay
		return clarify("Please provide at least two complete flights, or a single route with a date.", base,
			"source", "destination", "date")
	case 1:
		return n.oneWay(base, legs[0].Source, legs[0].Destination, legs[0].Date)
	default:
		base.Legs = legs
		return recordOutcome(base)
	}
}

// placeClarification reports absent or unserved cities.
func placeClarification(base Record, source, destination string) (Outcome, bool) {
	var missing, asks []string
	check := func(field, label, name, code string) {
		switch {
		case name == "":
			missing = append(missing, field)
			asks = append(asks, "your "+label)
		case code == "":
			missing = append(missing, field)
			asks = append(asks, fmt.Sprintf("a supported %s (%q is not served)", label, name))
		}
	}
	check("source", "departure city", source, base.Source)
	check("destination", "destination city", destination, base.Destination)

	if len(missing) == 0 {
		return Outcome{}, false
	}
	return clarify("Please provide "+strings.Join(asks, " and ")+".", base, missing...), true
}
