// Package slots pulls structured search constraints out of a free-text chat message.
package slots

import (
	"regexp"
	"strconv"
	"strings"
)

// SlotSet holds the constraints found in one message. Zero values mean unconstrained.
type SlotSet struct {
	PriceMax *float64 `json:"priceMax,omitempty"`
	Make     string   `json:"make,omitempty"`
	BodyType string   `json:"bodyType,omitempty"`
}

// Vocabulary order is the tie-break when a message names more than one entry.
var (
	makes     = []string{"toyota", "mercedes", "bmw", "subaru", "honda", "ford", "nissan", "mazda"}
	bodyTypes = []string{"suv", "sedan", "hatchback", "truck", "luxury"}
)

var pricePattern = regexp.MustCompile(`(?i)(\d+)\s*(k|thousand|million|m)`)

// Extract never fails; anything it cannot recognise stays unset.
func Extract(text string) SlotSet {
	lower := strings.ToLower(text)

	var set SlotSet
	set.PriceMax = extractPrice(lower)
	if mk := firstContained(lower, makes); mk != "" {
		set.Make = titleCase(mk)
	}
	set.BodyType = firstContained(lower, bodyTypes)
	return set
}

func extractPrice(text string) *float64 {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return nil
	}

	switch strings.ToLower(m[2]) {
	case "k", "thousand":
		n *= 1_000
	case "m", "million":
		n *= 1_000_000
	}
	return &n
}

func firstContained(text string, vocabulary []string) string {
	for _, word := range vocabulary {
		if strings.Contains(text, word) {
			return word
		}
	}
	return ""
}

// titleCase upper-cases the first letter only, so "bmw" becomes "Bmw" as stored in inventory.
func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// Makes returns the make vocabulary in tie-break order.
func Makes() []string {
	return append([]string(nil), makes...)
}

// BodyTypes returns the body type vocabulary in tie-break order.
func BodyTypes() []string {
	return append([]string(nil), bodyTypes...)
}
