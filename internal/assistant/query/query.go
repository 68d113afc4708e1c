// Package query turns an intent and its slots into an inventory request.
package query

import (
	"fmt"
	"strconv"

	"dealer-assistant/internal/assistant/intent"
	"dealer-assistant/internal/assistant/slots"
	"dealer-assistant/internal/models"
)

// SortOrder names a result ordering the inventory sources understand.
type SortOrder string

const SortPriceAsc SortOrder = "price_asc"

// Per-intent result caps. Availability counts rather than lists.
const (
	VehicleInquiryLimit = 5
	PriceLimit          = 3
)

// Query is the normalized inventory request. Limit 0 means unlimited.
type Query struct {
	Status    string    `json:"status"`
	Make      string    `json:"make,omitempty"`
	BodyType  string    `json:"bodyType,omitempty"`
	PriceMax  *float64  `json:"priceMax,omitempty"`
	Sort      SortOrder `json:"sort"`
	Limit     int       `json:"limit"`
	CountOnly bool      `json:"countOnly,omitempty"`
}

// Build reports false when the intent is answered from templates alone.
func Build(in intent.Intent, s slots.SlotSet) (Query, bool) {
	q := Query{Status: models.VehicleStatusAvailable, Sort: SortPriceAsc}

	switch in {
	case intent.VehicleInquiry:
		q.Make = s.Make
		q.BodyType = s.BodyType
		q.Limit = VehicleInquiryLimit
	case intent.Price:
		q.PriceMax = s.PriceMax
		q.Limit = PriceLimit
	case intent.Availability:
		q.Make = s.Make
		q.CountOnly = true
	default:
		return Query{}, false
	}
	return q, true
}

// Fingerprint is a stable identity for the query, used as a cache key.
func (q Query) Fingerprint() string {
	price := "-"
	if q.PriceMax != nil {
		price = strconv.FormatFloat(*q.PriceMax, 'f', -1, 64)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d|%t", q.Status, q.Make, q.BodyType, price, q.Sort, q.Limit, q.CountOnly)
}
