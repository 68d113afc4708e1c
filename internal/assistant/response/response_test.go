package response

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealer-assistant/internal/assistant/intent"
	"dealer-assistant/internal/models"
)

func fixtures() []models.VehicleSummary {
	km := 45000
	return []models.VehicleSummary{
		{Make: "Toyota", Model: "Vitz", Year: 2017, Price: 850000, Mileage: &km, FuelType: "petrol", Transmission: "automatic"},
		{Make: "Mazda", Model: "Demio", Year: 2016, Price: 920000.5, FuelType: "petrol", Transmission: "automatic"},
		{Make: "Subaru", Model: "Forester", Year: 2015, Price: 1850000, FuelType: "petrol", Transmission: "manual"},
	}
}

// ==========================
// Template selection
// ==========================

func TestStatic_SeededSourceIsDeterministic(t *testing.T) {
	a := NewFormatter(rand.NewSource(7))
	b := NewFormatter(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Static(intent.Greeting), b.Static(intent.Greeting))
	}
}

func TestStatic_PicksFromTable(t *testing.T) {
	f := NewFormatter(rand.NewSource(1))
	table := Templates()

	for in, variants := range table {
		t.Run(string(in), func(t *testing.T) {
			for i := 0; i < 10; i++ {
				assert.Contains(t, variants, f.Static(in))
			}
		})
	}
}

func TestStatic_UnknownIntentFallsBackToGeneral(t *testing.T) {
	f := NewFormatter(rand.NewSource(1))
	assert.Contains(t, Templates()[intent.General], f.Static(intent.Price))
}

func TestTemplates_VariantCounts(t *testing.T) {
	table := Templates()
	assert.Len(t, table[intent.Greeting], 3)
	assert.Len(t, table[intent.General], 3)
	for _, in := range []intent.Intent{intent.Financing, intent.TestDrive, intent.Contact, intent.Hours, intent.Warranty} {
		assert.Len(t, table[in], 2, string(in))
	}
	assert.True(t, strings.HasPrefix(table[intent.Financing][0], "We offer flexible financing options at Atro Motors"))
}

// ==========================
// Data-driven replies
// ==========================

func TestVehicleList(t *testing.T) {
	f := NewFormatter(rand.NewSource(1))

	assert.Equal(t, NoMatch, f.VehicleList(nil))

	out := f.VehicleList(fixtures()[:2])
	expected := "I found 2 vehicle(s) that might interest you:\n\n" +
		"1. Toyota Vitz 2017\n" +
		"   Price: Ksh 850,000\n" +
		"   Mileage: 45,000 km\n" +
		"   Fuel: petrol, Transmission: automatic\n\n" +
		"2. Mazda Demio 2016\n" +
		"   Price: Ksh 920,000.5\n" +
		"   Mileage: N/A\n" +
		"   Fuel: petrol, Transmission: automatic\n\n" +
		"Would you like more details on any of these vehicles?"
	assert.Equal(t, expected, out)
}

func TestPriceList(t *testing.T) {
	f := NewFormatter(rand.NewSource(1))
	bound := 2_000_000.0

	t.Run("three vehicles give three bullets in order", func(t *testing.T) {
		out := f.PriceList(fixtures(), &bound)

		var bullets []string
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, "• ") {
				bullets = append(bullets, line)
			}
		}
		require.Len(t, bullets, 3)
		assert.Equal(t, "• Toyota Vitz 2017: Ksh 850,000", bullets[0])
		assert.Equal(t, "• Mazda Demio 2016: Ksh 920,000.5", bullets[1])
		assert.Equal(t, "• Subaru Forester 2015: Ksh 1,850,000", bullets[2])
		assert.True(t, strings.HasSuffix(out, "We also offer financing options to make your dream car more affordable."))
	})

	t.Run("empty with bound", func(t *testing.T) {
		assert.Equal(t,
			"I couldn't find vehicles within Ksh 2,000,000. Our vehicles typically range from Ksh 1.5M to Ksh 15M.",
			f.PriceList(nil, &bound))
	})

	t.Run("empty without bound", func(t *testing.T) {
		assert.Equal(t, "Our vehicles range from Ksh 1.5M to Ksh 15M. What's your budget range?", f.PriceList(nil, nil))
	})
}

func TestAvailability(t *testing.T) {
	f := NewFormatter(rand.NewSource(1))

	tests := []struct {
		count    int
		make     string
		expected string
	}{
		{0, "Bmw", "We currently don't have Bmw vehicles in stock, but we're expecting new arrivals soon."},
		{0, "", "We have a wide selection of vehicles available. Could you specify which make or type you're interested in?"},
		{4, "Toyota", "We have 4 Toyota vehicle(s) currently available. Would you like me to show you the details?"},
		{1250, "", "We have 1250 vehicles currently available in our inventory. What type of vehicle are you looking for?"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, f.Availability(tt.count, tt.make))
	}
}

func TestPaymentQuote(t *testing.T) {
	f := NewFormatter(rand.NewSource(1))
	out := f.PaymentQuote(1_000_000, 10, 12, 87915.89, 1054990.68)
	assert.Equal(t, "For Ksh 1,000,000 over 12 months at 10%, your estimated monthly payment is "+
		"Ksh 87,915.89 (total repayment Ksh 1,054,990.68).", out)
}

func TestCurrencyAndMileage(t *testing.T) {
	assert.Equal(t, "Ksh 1,234,567", Currency(1234567))
	assert.Equal(t, "Ksh 999", Currency(999))
	assert.Equal(t, "Ksh 1,500.25", Currency(1500.25))

	km := 12345
	assert.Equal(t, "12,345 km", Mileage(&km))
	assert.Equal(t, "N/A", Mileage(nil))
}
