package response

import "dealer-assistant/internal/assistant/intent"

// Fixed replies that never vary.
const (
	NoMatch = "I couldn't find any vehicles matching your criteria. " +
		"Could you be more specific or try different search terms?"

	LookupFailure = "I apologize, but I'm having trouble processing your request. " +
		"Please try again or contact our support team directly."

	ResetDone = "Our conversation has been cleared. How can I help you find your next car?"
)

const (
	catalogueRange   = "Ksh 1.5M to Ksh 15M"
	vehicleListClose = "Would you like more details on any of these vehicles?"
	priceListHeader  = "Here are some vehicles within your price range:\n\n"
	priceListUpsell  = "\nWe also offer financing options to make your dream car more affordable."
)

var templates = map[intent.Intent][]string{
	intent.Greeting: {
		"Hello! I'm your Atro Motors assistant. How can I help you find your dream car today?",
		"Hi there! Ready to help you discover the perfect vehicle. What are you looking for?",
		"Welcome to Atro Motors! I'm here to assist with all your car needs. How can I help?",
	},
	intent.General: {
		"I'd be happy to help with that! Could you provide more details so I can assist you better?",
		"That's a great question! Let me connect you with the right information. What specifically would you like to know?",
		"I understand you're looking for information. Could you tell me more about what you need help with?",
	},
	intent.Financing: {
		"We offer flexible financing options at Atro Motors:\n\n" +
			"• Competitive interest rates starting from 8.5%\n" +
			"• Loan terms from 12 to 84 months\n" +
			"• Low down payment options available\n" +
			"• Quick approval process (24-48 hours)\n" +
			"• Both employed and self-employed applicants welcome\n\n" +
			"Would you like to calculate monthly payments or apply for pre-approval?",
		"Our financing plans include low down payments and flexible terms from 12 to 84 months. " +
			"Tell me the car price, the term in months and a rate like 12% and I'll estimate your monthly payment.",
	},
	intent.TestDrive: {
		"Scheduling a test drive is easy:\n\n" +
			"1. Choose your preferred vehicle\n" +
			"2. Select a convenient date and time\n" +
			"3. Visit our showroom or request a home test drive\n\n" +
			"We're open Monday-Friday 8:30 AM - 6:00 PM, Saturday 9:00 AM - 4:00 PM, and Sunday 10:00 AM - 2:00 PM.\n\n" +
			"Would you like me to help you schedule a test drive?",
		"We'd love to get you behind the wheel. Pick a vehicle and a time that suits you, " +
			"and we can arrange the drive at our showroom or at your home.",
	},
	intent.Contact: {
		"You can reach us through:\n\n" +
			"📍 Showroom: 123 Auto Plaza, Nairobi (Near ABC Mall, Off Mombasa Road)\n" +
			"📞 Phone: +254 700 123 456 / +254 712 345 678\n" +
			"📱 WhatsApp: +254 712 345 678\n" +
			"📧 Email: info@atromotors.com\n" +
			"🌐 Website: www.atromotors.com\n\n" +
			"Our team is available 7 days a week to assist you.",
		"You can reach us at +254 700 123 456, or on WhatsApp at +254 712 345 678 for immediate assistance.",
	},
	intent.Hours: {
		"Our business hours:\n\n" +
			"Monday - Friday: 8:30 AM - 6:00 PM\n" +
			"Saturday: 9:00 AM - 4:00 PM\n" +
			"Sunday: 10:00 AM - 2:00 PM\n" +
			"Public Holidays: 10:00 AM - 3:00 PM\n\n" +
			"Test drives can be scheduled during these hours.",
		"We're open Monday to Friday 8:30 AM - 6:00 PM, Saturday 9:00 AM - 4:00 PM and Sunday 10:00 AM - 2:00 PM.",
	},
	intent.Warranty: {
		"All our vehicles come with comprehensive warranty options:\n\n" +
			"• Standard 6-month warranty on all vehicles\n" +
			"• Extended warranty available up to 24 months\n" +
			"• Covers engine, transmission, and major components\n" +
			"• Includes roadside assistance\n" +
			"• Transferable to new owner\n\n" +
			"Warranty duration depends on vehicle age, mileage, and condition.",
		"We provide warranty coverage based on vehicle age and condition, and our packages include roadside assistance.",
	},
}

// Templates returns a copy of the canned replies for the template-only intents.
func Templates() map[intent.Intent][]string {
	out := make(map[intent.Intent][]string, len(templates))
	for k, v := range templates {
		out[k] = append([]string(nil), v...)
	}
	return out
}
