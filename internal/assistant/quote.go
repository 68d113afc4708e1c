package assistant

import (
	"regexp"
	"strconv"

	"dealer-assistant/internal/assistant/slots"
)

var (
	termPattern = regexp.MustCompile(`(?i)(\d+)\s*months?\b`)
	ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

type loanTerms struct {
	principal  float64
	annualRate float64
	months     int
}

// parseLoanTerms finds "<n> months", "<x>%" and a price such as "2 million". The term
// token is removed before the price is read, since "48 months" would otherwise parse as
// 48 million.
func parseLoanTerms(message string) (loanTerms, bool) {
	term := termPattern.FindStringSubmatch(message)
	rate := ratePattern.FindStringSubmatch(message)
	if term == nil || rate == nil {
		return loanTerms{}, false
	}

	months, err := strconv.Atoi(term[1])
	if err != nil {
		return loanTerms{}, false
	}
	annualRate, err := strconv.ParseFloat(rate[1], 64)
	if err != nil {
		return loanTerms{}, false
	}

	price := slots.Extract(termPattern.ReplaceAllString(message, " ")).PriceMax
	if price == nil {
		return loanTerms{}, false
	}
	return loanTerms{principal: *price, annualRate: annualRate, months: months}, true
}
