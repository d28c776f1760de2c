package booking

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// RawLeg is one multi-city leg as the oracle wrote it.
type RawLeg struct {
	Source      string
	Destination string
	Date        string
}

// RawTraveler is either a structured {Type, Count} entry or a free-text phrase.
type RawTraveler struct {
	Structured bool
	Type       string
	Count      int
	Phrase     string
}

// RawExtraction is the oracle output after boundary decoding. An empty string
// or nil slice means the key was absent or had the wrong type.
type RawExtraction struct {
	Message       string
	Source        string
	Destination   string
	Date          string
	DepartureDate string
	ReturnDate    string
	Flights       []RawLeg
	TripType      string
	TravelClass   string
	Travelers     []RawTraveler
	Airlines      []string
}

// DecodeExtraction reads oracle JSON. Only text that is not a JSON object
// fails, with ErrOracleParse; wrong-typed keys decode as absent.
func DecodeExtraction(data []byte) (RawExtraction, error) {
	if !gjson.ValidBytes(data) {
		return RawExtraction{}, ErrOracleParse
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return RawExtraction{}, ErrOracleParse
	}

	return RawExtraction{
		Message:       str(root, "message"),
		Source:        str(root, "source"),
		Destination:   str(root, "destination"),
		Date:          str(root, "date"),
		DepartureDate: str(root, "departure_date"),
		ReturnDate:    str(root, "return_date"),
		Flights:       decodeLegs(root.Get("flights")),
		TripType:      strings.ToLower(str(root, "TripType", "trip_type")),
		TravelClass:   strings.ToLower(str(root, "TravelClass", "travel_class")),
		Travelers:     decodeTravelers(first(root, "Travelers", "travelers")),
		Airlines:      decodeStrings(first(root, "airline_detected", "airline")),
	}, nil
}

// first returns the first of keys present on root.
func first(root gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := root.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func str(root gjson.Result, keys ...string) string {
	v := first(root, keys...)
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.Str)
}

func decodeLegs(v gjson.Result) []RawLeg {
	if !v.IsArray() {
		return nil
	}
	var legs []RawLeg
	for _, item := range v.Array() {
		if !item.IsObject() {
			continue
		}
		legs = append(legs, RawLeg{
			Source:      str(item, "source"),
			Destination: str(item, "destination"),
			Date:        str(item, "date"),
		})
	}
	return legs
}

func decodeTravelers(v gjson.Result) []RawTraveler {
	var out []RawTraveler
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			switch {
			case item.IsObject():
				out = append(out, RawTraveler{
					Structured: true,
					Type:       strings.ToLower(str(item, "Type", "type")),
					Count:      count(first(item, "Count", "count")),
				})
			case item.Type == gjson.String:
				out = append(out, RawTraveler{Phrase: item.Str})
			}
		}
	case v.IsObject():
		// Partial counts keyed by type, e.g. {"adult": 2, "infant": 1}.
		v.ForEach(func(key, value gjson.Result) bool {
			out = append(out, RawTraveler{
				Structured: true,
				Type:       strings.ToLower(key.String()),
				Count:      count(value),
			})
			return true
		})
	case v.Type == gjson.String:
		for _, phrase := range strings.Split(v.Str, ",") {
			out = append(out, RawTraveler{Phrase: phrase})
		}
	}
	return out
}

// count is -1 for anything that is not a whole number.
func count(v gjson.Result) int {
	switch v.Type {
	case gjson.Number:
		if v.Num != float64(int(v.Num)) {
			return -1
		}
		return int(v.Num)
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return -1
		}
		return n
	default:
		return -1
	}
}

func decodeStrings(v gjson.Result) []string {
	switch {
	case v.Type == gjson.String:
		if s := strings.TrimSpace(v.Str); s != "" {
			return []string{s}
		}
	case v.IsArray():
		var out []string
		for _, item := range v.Array() {
			if item.Type == gjson.String && strings.TrimSpace(item.Str) != "" {
				out = append(out, strings.TrimSpace(item.Str))
			}
		}
		return out
	}
	return nil
}

// Extraction renders a canonical record back into extraction form.
// Normalizing the result yields the same record.
func (r Record) Extraction() RawExtraction {
	raw := RawExtraction{
		TripType:    r.TripType.String(),
		TravelClass: r.TravelClass,
		Airlines:    append([]string(nil), r.Airlines...),
		Travelers: []RawTraveler{
			{Structured: true, Type: "adult", Count: r.Travelers.Adult},
			{Structured: true, Type: "child", Count: r.Travelers.Child},
			{Structured: true, Type: "infant", Count: r.Travelers.Infant},
		},
	}
	switch r.TripType {
	case OneWay:
		raw.Source, raw.Destination, raw.Date = r.Source, r.Destination, r.DepartureDate
	case RoundTrip:
		raw.Source, raw.Destination = r.Source, r.Destination
		raw.DepartureDate, raw.ReturnDate = r.DepartureDate, r.ReturnDate
	case MultiCity:
		for _, leg := range r.Legs {
			raw.Flights = append(raw.Flights, RawLeg(leg))
		}
	}
	return raw
}
