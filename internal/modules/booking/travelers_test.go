package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTravelers(t *testing.T) {
	tests := []struct {
		name string
		in   []RawTraveler
		want TravelerCounts
	}{
		{
			name: "absent defaults to one adult",
			in:   nil,
			want: TravelerCounts{Adult: 1},
		},
		{
			name: "phrases",
			in:   []RawTraveler{{Phrase: "2 adults"}, {Phrase: "1 infant"}},
			want: TravelerCounts{Adult: 2, Infant: 1},
		},
		{
			name: "several matches in one phrase",
			in:   []RawTraveler{{Phrase: "2 Adults and 3 kids, 1 baby"}},
			want: TravelerCounts{Adult: 2, Child: 3, Infant: 1},
		},
		{
			name: "structured entries sum",
			in: []RawTraveler{
				{Structured: true, Type: "adult", Count: 1},
				{Structured: true, Type: "adult", Count: 2},
				{Structured: true, Type: "children", Count: 1},
			},
			want: TravelerCounts{Adult: 3, Child: 1},
		},
		{
			name: "unparseable entries contribute nothing",
			in: []RawTraveler{
				{Phrase: "me and my wife"},
				{Structured: true, Type: "pet", Count: 1},
				{Structured: true, Type: "adult", Count: -1},
			},
			want: TravelerCounts{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTravelers(tt.in))
		})
	}
}
