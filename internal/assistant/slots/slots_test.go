package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Price(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *float64
	}{
		{"million", "under 2 million", ptr(2_000_000)},
		{"k suffix", "around 500k", ptr(500_000)},
		{"thousand with space", "max 800 thousand", ptr(800_000)},
		{"upper case unit", "below 3M please", ptr(3_000_000)},
		{"first match wins", "between 500k and 2 million", ptr(500_000)},
		{"bare number", "I have 2000000", nil},
		{"no number", "something cheap", nil},
		{"zero amount", "under 0k", nil},
		{"zero million", "budget of 0 million", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got.PriceMax)
				return
			}
			require.NotNil(t, got.PriceMax)
			assert.Equal(t, *tt.expected, *got.PriceMax)
		})
	}
}

func TestExtract_MakeAndBodyType(t *testing.T) {
	tests := []struct {
		text     string
		make     string
		bodyType string
	}{
		{"Do you have a Toyota SUV?", "Toyota", "suv"},
		{"bmw sedan", "Bmw", "sedan"},
		// vocabulary order decides, not position in the text
		{"nissan or toyota", "Toyota", ""},
		{"a luxury truck", "", "truck"},
		{"mazda hatchback", "Mazda", "hatchback"},
		{"hello there", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.make, got.Make)
			assert.Equal(t, tt.bodyType, got.BodyType)
		})
	}
}

func TestVocabulariesAreCopies(t *testing.T) {
	m := Makes()
	m[0] = "lada"
	assert.Equal(t, "toyota", Makes()[0])
	assert.Equal(t, []string{"suv", "sedan", "hatchback", "truck", "luxury"}, BodyTypes())
}

func ptr(f float64) *float64 { return &f }
