// README: Provider search payloads, offers and per-provider results.
package search

import (
	"errors"

	"github.com/shopspring/decimal"

	"skybook/internal/modules/booking"
)

var (
	// ErrProviderStatus means a provider answered with a non-200 status.
	ErrProviderStatus = errors.New("provider returned non-success status")
	// ErrMalformedResponse means a provider body was not the expected JSON.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "PKR"

type Location struct {
	IATA string `json:"IATA"`
	Type string `json:"Type"`
}

type Traveler struct {
	Type  string `json:"Type"`
	Count int    `json:"Count"`
}

// Payload is the uniform request body every provider accepts.
type Payload struct {
	Locations       []Location `json:"Locations"`
	ContentProvider string     `json:"ContentProvider"`
	Currency        string     `json:"Currency"`
	TravelClass     string     `json:"TravelClass"`
	TripType        string     `json:"TripType"`
	TravelingDates  []string   `json:"TravelingDates"`
	Travelers       []Traveler `json:"Travelers"`
}

type Request struct {
	Provider string
	Payload  Payload
}

type Fare struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Offer is one flight as reported by a provider. Times are kept as sent.
type Offer struct {
	Provider    string `json:"provider"`
	Carrier     string `json:"carrier"`
	From        string `json:"from"`
	To          string `json:"to"`
	DepartureAt string `json:"departure_at"`
	ArrivalAt   string `json:"arrival_at"`
	Fares       []Fare `json:"fares"`
}

// ProviderResult holds either the offers of one provider or its failure.
type ProviderResult struct {
	Provider string
	Offers   []Offer
	Err      error
}

// Result is the outcome of one search across providers, in provider order.
type Result struct {
	TripType      booking.TripType
	Currency      string
	SameDayReturn bool
	Providers     []ProviderResult
}

// Offers concatenates every provider's offers in provider order.
func (r Result) Offers() []Offer {
	var out []Offer
	for _, p := range r.Providers {
		out = append(out, p.Offers...)
	}
	return out
}

// Empty is true only when no provider produced an offer.
func (r Result) Empty() bool {
	for _, p := range r.Providers {
		if len(p.Offers) > 0 {
			return false
		}
	}
	return true
}

// Failed lists the providers that errored.
func (r Result) Failed() []string {
	var out []string
	for _, p := range r.Providers {
		if p.Err != nil {
			out = append(out, p.Provider)
		}
	}
	return out
}
