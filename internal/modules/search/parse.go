package search

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type cityRef struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

// rawTimestamp keeps a provider timestamp as text whatever its JSON type.
// Strings are unquoted; numbers and objects keep their raw JSON.
type rawTimestamp string

func (t *rawTimestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = rawTimestamp(s)
	default:
		*t = rawTimestamp(data)
	}
	return nil
}

type searchResponse struct {
	Itineraries []struct {
		Flights []struct {
			MarketingCarrier struct {
				Name string `json:"name"`
			} `json:"MarketingCarrier"`
			From        cityRef      `json:"From"`
			To          cityRef      `json:"To"`
			DepartureAt rawTimestamp `json:"DepartureAt"`
			ArrivalAt   rawTimestamp `json:"ArrivalAt"`
			Fares       []struct {
				Name              string          `json:"Name"`
				ChargedTotalPrice decimal.Decimal `json:"ChargedTotalPrice"`
			} `json:"Fares"`
		} `json:"Flights"`
	} `json:"Itineraries"`
}

// ParseResponse maps a provider body to offers. An empty body or absent
// Itineraries means no offers; anything else that is not the expected JSON
// fails with ErrMalformedResponse.
func ParseResponse(body []byte, provider string) ([]Offer, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w from %s: %v", ErrMalformedResponse, provider, err)
	}

	var offers []Offer
	for _, itinerary := range resp.Itineraries {
		for _, f := range itinerary.Flights {
			offer := Offer{
				Provider:    provider,
				Carrier:     f.MarketingCarrier.Name,
				From:        f.From.City.Name,
				To:          f.To.City.Name,
				DepartureAt: string(f.DepartureAt),
				ArrivalAt:   string(f.ArrivalAt),
			}
			for _, fare := range f.Fares {
				offer.Fares = append(offer.Fares, Fare{Name: fare.Name, Price: fare.ChargedTotalPrice})
			}
			offers = append(offers, offer)
		}
	}
	return offers, nil
}
