package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeExtraction_OneWay(t *testing.T) {
	raw, err := DecodeExtraction([]byte(`{
		"source": " Karachi ",
		"destination": "Lahore",
		"date": "tomorrow",
		"TripType": "One_Way",
		"TravelClass": "Business",
		"Travelers": [{"Type": "adult", "Count": 2}, {"Type": "infant", "Count": "1"}],
		"airline_detected": ["Airblue", "", 7]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Karachi", raw.Source)
	assert.Equal(t, "Lahore", raw.Destination)
	assert.Equal(t, "tomorrow", raw.Date)
	assert.Equal(t, "one_way", raw.TripType)
	assert.Equal(t, "business", raw.TravelClass)
	assert.Equal(t, []RawTraveler{
		{Structured: true, Type: "adult", Count: 2},
		{Structured: true, Type: "infant", Count: 1},
	}, raw.Travelers)
	assert.Equal(t, []string{"Airblue"}, raw.Airlines)
}

func TestDecodeExtraction_MultiCityLegs(t *testing.T) {
	raw, err := DecodeExtraction([]byte(`{
		"trip_type": "multi_city",
		"flights": [
			{"source": "Karachi", "destination": "Lahore", "date": "2026-11-01"},
			"not a leg",
			{"source": "Lahore", "destination": 42, "date": "2026-11-05"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "multi_city", raw.TripType)
	assert.Equal(t, []RawLeg{
		{Source: "Karachi", Destination: "Lahore", Date: "2026-11-01"},
		{Source: "Lahore", Date: "2026-11-05"},
	}, raw.Flights)
}

func TestDecodeExtraction_WrongTypesDecodeAsAbsent(t *testing.T) {
	raw, err := DecodeExtraction([]byte(`{
		"source": 12,
		"date": null,
		"flights": "KHI-LHE",
		"Travelers": 3,
		"airline_detected": {"name": "pia"}
	}`))
	require.NoError(t, err)

	assert.Empty(t, raw.Source)
	assert.Empty(t, raw.Date)
	assert.Nil(t, raw.Flights)
	assert.Nil(t, raw.Travelers)
	assert.Nil(t, raw.Airlines)
}

func TestDecodeExtraction_RejectionMessage(t *testing.T) {
	raw, err := DecodeExtraction([]byte(`{"message": "I can only help with flight bookings."}`))
	require.NoError(t, err)
	assert.Equal(t, "I can only help with flight bookings.", raw.Message)
}

func TestDecodeExtraction_TravelerShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []RawTraveler
	}{
		{
			name: "phrases",
			in:   `{"Travelers": ["2 adults", "1 infant"]}`,
			want: []RawTraveler{{Phrase: "2 adults"}, {Phrase: "1 infant"}},
		},
		{
			name: "partial object",
			in:   `{"travelers": {"adult": 2, "child": 1.5}}`,
			want: []RawTraveler{
				{Structured: true, Type: "adult", Count: 2},
				{Structured: true, Type: "child", Count: -1},
			},
		},
		{
			name: "comma string",
			in:   `{"Travelers": "2 adults, 1 child"}`,
			want: []RawTraveler{{Phrase: "2 adults"}, {Phrase: " 1 child"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := DecodeExtraction([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, raw.Travelers)
		})
	}
}

func TestDecodeExtraction_SingleAirlineString(t *testing.T) {
	raw, err := DecodeExtraction([]byte(`{"airline": "Serene Air"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Serene Air"}, raw.Airlines)
}

func TestDecodeExtraction_NotAnObject(t *testing.T) {
	for _, in := range []string{"", "not json", `["a"]`, `"text"`, `{"source": `} {
		_, err := DecodeExtraction([]byte(in))
		assert.ErrorIs(t, err, ErrOracleParse, in)
	}
}
