// Package pricing is the single home of the booking price formula. Both
// the customer flow and the admin edit form must go through Quote; a stored
// Total is never trusted, always recomputed here.
package pricing

import "photobox/pkg/model"

// Quote computes the total for a booking against the studio fee table:
// package price, per-extra-person charge, time-extension charge and the
// props add-on.
func Quote(settings model.Settings, pkg string, people, timeExtra int, props bool) int {
	total := packagePrice(settings, pkg)

	if people > 1 {
		total += (people - 1) * settings.ExtraPerson
	}

	switch timeExtra {
	case 30:
		total += settings.Extra30Min
	case 60:
		total += settings.Extra60Min
	}

	if props {
		total += settings.ExtraProps
	}

	return total
}

// QuoteBooking recomputes a booking's Total from its stored fields.
func QuoteBooking(settings model.Settings, b *model.Booking) int {
	return Quote(settings, b.Package, b.People, b.TimeExtra, b.Props)
}

func packagePrice(settings model.Settings, pkg string) int {
	switch pkg {
	case model.PackageBasic:
		return settings.PriceBasic
	case model.PackagePremium:
		return settings.PricePremium
	case model.PackageExclusive:
		return settings.PriceExclusive
	}
	return 0
}
