// Package intent assigns exactly one intent to a chat message using ordered keyword rules.
package intent

import "strings"

// Intent is a closed set of message categories.
type Intent string

const (
	Greeting       Intent = "Greeting"
	VehicleInquiry Intent = "VehicleInquiry"
	Financing      Intent = "Financing"
	TestDrive      Intent = "TestDrive"
	Price          Intent = "Price"
	Availability   Intent = "Availability"
	Contact        Intent = "Contact"
	Hours          Intent = "Hours"
	Warranty       Intent = "Warranty"
	General        Intent = "General"
)

// Rule matches when any keyword is a substring of the lower-cased message.
type Rule struct {
	Intent   Intent
	Keywords []string
}

func (r Rule) matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// rules are evaluated top to bottom and the first match wins. A message that hits several
// rules always resolves to the earliest one; reordering this slice changes behaviour.
var rules = []Rule{
	{Greeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}},
	{VehicleInquiry, []string{"car", "vehicle", "suv", "sedan", "toyota", "mercedes", "bmw", "subaru", "honda", "ford", "nissan"}},
	{Financing, []string{"finance", "loan", "payment", "installment", "credit", "interest rate", "down payment"}},
	{TestDrive, []string{"test drive", "drive test", "try car", "test car"}},
	{Price, []string{"price", "cost", "how much", "affordable", "budget", "expensive", "cheap"}},
	{Availability, []string{"available", "in stock", "have", "stock", "inventory"}},
	{Contact, []string{"contact", "call", "phone", "email", "whatsapp", "address", "location"}},
	{Hours, []string{"hour", "open", "close", "time", "when", "weekend", "sunday"}},
	{Warranty, []string{"warranty", "guarantee", "cover", "insurance", "protection"}},
}

// Classify always returns a value; messages no rule matches are General.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.Intent
		}
	}
	return General
}

// Rules returns a deep copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Intent: r.Intent, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// All lists every intent, General last.
func All() []Intent {
	out := make([]Intent, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.Intent)
	}
	return append(out, General)
}
