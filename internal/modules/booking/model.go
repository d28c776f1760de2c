// README: Booking record types produced by normalizing an oracle extraction.
package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrOracleParse means the oracle output was not a JSON object.
	ErrOracleParse = errors.New("could not parse flight details")
	// ErrUnknownTripType means the oracle named a trip type outside the closed set.
	ErrUnknownTripType = errors.New("unknown trip type")
	// ErrUnresolvableDate means no date rule matched the expression.
	ErrUnresolvableDate = errors.New("could not resolve the date")
)

// DateLayout is the canonical date format of every date in a Record.
const DateLayout = "2006-01-02"

// DefaultTravelClass applies when the extraction names no class.
const DefaultTravelClass = "economy"

type TripType int

const (
	OneWay TripType = iota
	RoundTrip
	MultiCity
)

// ParseTripType maps an extraction label onto the closed set.
// Empty input means the oracle did not say and defaults to OneWay.
func ParseTripType(label string) (TripType, error) {
	switch label {
	case "", "one_way", "oneway", "one-way":
		return OneWay, nil
	case "round_trip", "roundtrip", "round-trip", "return":
		return RoundTrip, nil
	case "multi_city", "multicity", "multi-city":
		return MultiCity, nil
	default:
		return OneWay, fmt.Errorf("%w: %q", ErrUnknownTripType, label)
	}
}

// String is the canonical label sent to search providers.
// RoundTrip becomes "return", not "round_trip".
func (t TripType) String() string {
	switch t {
	case OneWay:
		return "one_way"
	case RoundTrip:
		return "return"
	case MultiCity:
		return "multi_city"
	default:
		return fmt.Sprintf("TripType(%d)", int(t))
	}
}

func (t TripType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Leg is one origin, destination and date of a multi-city itinerary.
type Leg struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// TravelerCounts always carries all three traveler types.
type TravelerCounts struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Infant int `json:"infant"`
}

// DefaultTravelers is one adult.
var DefaultTravelers = TravelerCounts{Adult: 1}

// Record is a canonical booking: IATA-coded places and ISO dates only.
// OneWay uses Source, Destination, DepartureDate. RoundTrip adds ReturnDate.
// MultiCity uses Legs only.
type Record struct {
	TripType      TripType       `json:"trip_type"`
	Source        string         `json:"source,omitempty"`
	Destination   string         `json:"destination,omitempty"`
	DepartureDate string         `json:"departure_date,omitempty"`
	ReturnDate    string         `json:"return_date,omitempty"`
	Legs          []Leg          `json:"legs,omitempty"`
	TravelClass   string         `json:"travel_class"`
	Travelers     TravelerCounts `json:"travelers"`
	Airlines      []string       `json:"airlines,omitempty"`
}

// Locations is the flat alternating source/destination code sequence.
func (r Record) Locations() []string {
	switch r.TripType {
	case MultiCity:
		out := make([]string, 0, 2*len(r.Legs))
		for _, leg := range r.Legs {
			out = append(out, leg.Source, leg.Destination)
		}
		return out
	default:
		return []string{r.Source, r.Destination}
	}
}

// TravelingDates has one date per leg, or departure then return.
func (r Record) TravelingDates() []string {
	switch r.TripType {
	case MultiCity:
		out := make([]string, 0, len(r.Legs))
		for _, leg := range r.Legs {
			out = append(out, leg.Date)
		}
		return out
	case RoundTrip:
		return []string{r.DepartureDate, r.ReturnDate}
	default:
		return []string{r.DepartureDate}
	}
}

// Clarification asks the user for what could not be resolved, keeping what could.
type Clarification struct {
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Partial Record   `json:"partial_data"`
}

type OutcomeKind int

const (
	OutcomeRecord OutcomeKind = iota
	OutcomeClarification
	OutcomeRejection
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRecord:
		return "record"
	case OutcomeClarification:
		return "clarification"
	case OutcomeRejection:
		return "rejection"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result of normalizing one extraction. Exactly one of
// Record, Clarification or Rejection is meaningful, selected by Kind.
type Outcome struct {
	Kind          OutcomeKind    `json:"kind"`
	Record        *Record        `json:"record,omitempty"`
	Clarification *Clarification `json:"clarification,omitempty"`
	Rejection     string         `json:"rejection,omitempty"`
}

func recordOutcome(r Record) Outcome {
	return Outcome{Kind: OutcomeRecord, Record: &r}
}

func clarify(msg string, partial Record, missing ...string) Outcome {
	return Outcome{
		Kind:          OutcomeClarification,
		Clarification: &Clarification{Message: msg, Missing: missing, Partial: partial},
	}
}
