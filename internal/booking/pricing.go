package booking

import (
	"selvatours/internal/catalog"
)

// QuoteStatus names why a quote has no price instead of leaving callers to
// guess from a zero total.
type QuoteStatus string

const (
	// QuotePriced means the selection resolved to a positive price.
	QuotePriced QuoteStatus = "priced"
	// QuoteItemNotFound means the tour or route name had no catalog match
	// (e.g. a stale deep link). Soft failure: zero price, no error.
	QuoteItemNotFound QuoteStatus = "item_not_found"
	// QuoteTierUnavailable means a private tour tier was requested for a
	// tour that only runs as a group.
	QuoteTierUnavailable QuoteStatus = "tier_unavailable"
)

// Quote is the priced view of an in-progress selection. A status other
// than "priced" carries zero prices and suppresses the price summary:
// "no price yet", not "free".
type Quote struct {
	Status     QuoteStatus `json:"status"`
	UnitPrice  float64     `json:"unit_price"`
	TotalPrice float64     `json:"total_price"`
	FlatRate   bool        `json:"flat_rate"`
	Guests     int         `json:"guests"`
	Bucket     string      `json:"bucket,omitempty"`
}

// Priced reports whether the quote carries a displayable total.
func (q Quote) Priced() bool {
	return q.Status == QuotePriced && q.TotalPrice > 0
}

// ComputeQuote derives the unit and total price for a selection.
//
// Tours are priced per person: unit price comes from the selected tier,
// total is unit times guest count. Transfers are flat group rates picked
// by guest-count bucket, so unit and total are identical.
func ComputeQuote(repo catalog.Repository, req QuoteRequest) Quote {
	guests := GuestCount(req.Guests)

	if req.BookingType == BookingTypeTransfer {
		transfer, found := repo.FindTransferByRoute(req.Tour)
		if !found {
			return Quote{Status: QuoteItemNotFound, Guests: guests}
		}

		flat := transfer.Prices.ForGuests(guests)
		return Quote{
			Status:     QuotePriced,
			UnitPrice:  flat,
			TotalPrice: flat,
			FlatRate:   true,
			Guests:     guests,
			Bucket:     transfer.Prices.BucketLabel(guests),
		}
	}

	tour, found := repo.FindTourByName(req.Tour)
	if !found {
		return Quote{Status: QuoteItemNotFound, Guests: guests}
	}

	var unit float64
	if req.ServiceType == ServiceTypePrivate {
		if !tour.PrivateTier.Available {
			return Quote{Status: QuoteTierUnavailable, Guests: guests}
		}
		unit = tour.PrivateTier.Price
	} else {
		unit = tour.RegularPrice
	}

	return Quote{
		Status:     QuotePriced,
		UnitPrice:  unit,
		TotalPrice: unit * float64(guests),
		FlatRate:   false,
		Guests:     guests,
	}
}
