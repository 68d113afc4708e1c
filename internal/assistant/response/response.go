// Package response renders assistant replies from templates and inventory results.
package response

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"dealer-assistant/internal/assistant/intent"
	"dealer-assistant/internal/models"
)

// Formatter picks template variants with an injected random source, so a seeded source
// gives reproducible replies. Safe for concurrent use.
type Formatter struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewFormatter(src rand.Source) *Formatter {
	return &Formatter{rnd: rand.New(src)}
}

// Static returns a canned reply. Intents without templates fall back to General.
func (f *Formatter) Static(in intent.Intent) string {
	variants, ok := templates[in]
	if !ok {
		variants = templates[intent.General]
	}

	f.mu.Lock()
	i := f.rnd.Intn(len(variants))
	f.mu.Unlock()
	return variants[i]
}

// VehicleList renders a numbered listing, or NoMatch when empty.
func (f *Formatter) VehicleList(vehicles []models.VehicleSummary) string {
	if len(vehicles) == 0 {
		return NoMatch
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d vehicle(s) that might interest you:\n\n", len(vehicles))
	for i, v := range vehicles {
		fmt.Fprintf(&b, "%d. %s %s %d\n", i+1, v.Make, v.Model, v.Year)
		fmt.Fprintf(&b, "   Price: %s\n", Currency(v.Price))
		fmt.Fprintf(&b, "   Mileage: %s\n", Mileage(v.Mileage))
		fmt.Fprintf(&b, "   Fuel: %s, Transmission: %s\n\n", v.FuelType, v.Transmission)
	}
	b.WriteString(vehicleListClose)
	return b.String()
}

// PriceList renders one bullet per vehicle in the order given.
func (f *Formatter) PriceList(vehicles []models.VehicleSummary, priceMax *float64) string {
	if len(vehicles) == 0 {
		if priceMax != nil {
			return fmt.Sprintf("I couldn't find vehicles within %s. Our vehicles typically range from %s.",
				Currency(*priceMax), catalogueRange)
		}
		return fmt.Sprintf("Our vehicles range from %s. What's your budget range?", catalogueRange)
	}

	var b strings.Builder
	b.WriteString(priceListHeader)
	for _, v := range vehicles {
		fmt.Fprintf(&b, "• %s %s %d: %s\n", v.Make, v.Model, v.Year, Currency(v.Price))
	}
	b.WriteString(priceListUpsell)
	return b.String()
}

// Availability reports a stock count, optionally for one make.
func (f *Formatter) Availability(count int, vehicleMake string) string {
	switch {
	case count == 0 && vehicleMake != "":
		return fmt.Sprintf("We currently don't have %s vehicles in stock, but we're expecting new arrivals soon.", vehicleMake)
	case count == 0:
		return "We have a wide selection of vehicles available. Could you specify which make or type you're interested in?"
	case vehicleMake != "":
		return fmt.Sprintf("We have %d %s vehicle(s) currently available. Would you like me to show you the details?", count, vehicleMake)
	default:
		return fmt.Sprintf("We have %d vehicles currently available in our inventory. What type of vehicle are you looking for?", count)
	}
}

// PaymentQuote is appended to a financing reply when the message carried loan terms.
func (f *Formatter) PaymentQuote(principal, annualRate float64, months int, monthly, total float64) string {
	return fmt.Sprintf("For %s over %d months at %s%%, your estimated monthly payment is %s (total repayment %s).",
		Currency(principal), months, decimal(annualRate), Currency(monthly), Currency(total))
}

// Currency formats an amount as "Ksh 1,234,567", keeping up to two decimals.
func Currency(amount float64) string {
	return "Ksh " + decimal(amount)
}

// Mileage formats an odometer reading, or "N/A" when unknown.
func Mileage(km *int) string {
	if km == nil || *km == 0 {
		return "N/A"
	}
	return message.NewPrinter(language.English).Sprintf("%v km", number.Decimal(*km))
}

func decimal(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}
