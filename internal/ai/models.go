package ai

import "time"

const (
	DefaultModel          = "gemini-2.0-flash"
	DefaultEmbeddingModel = "embedding-001"
)

// Config selects the Gemini models and the timezone used for "today" in prompts.
type Config struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	Location       *time.Location
}

// airlineHints tells the model which provider carries which airline.
var airlineHints = []struct{ Airline, Provider string }{
	{"Fly Jinnah", "Oneapi"},
	{"PIA", "Amadeus"},
	{"Airblue", "Airblue"},
	{"Serene Air", "Sereneair"},
	{"AirSial", "Airsial"},
}
