package quote

import (
	"time"

	"charterdesk/internal/domain/listing"
)

// ComputeReport recomputes the quote of a persisted lead against the
// listing's CURRENT catalog and commission rate. Quotes are a derived
// view, not a stored fact: the admin screens always reflect today's
// economics, even for old leads (a deliberate choice, not an accident
// of data modeling).
//
// Reporting is laxer than intake: historical rows may lack an end
// timestamp (daily leads never store one), in which case the quantity
// falls back to the mode minimum. A mode without a current price
// yields an all-zero quote instead of an error so list views can still
// render the row.
func ComputeReport(l *listing.Listing, mode listing.Mode, start time.Time, end *time.Time) Quote {
	entry := l.Rates().Entry(mode)
	q := Quote{
		Mode:           mode,
		UnitLabel:      mode.UnitLabel(),
		UnitPrice:      entry.UnitPrice,
		CommissionRate: l.CommissionRate(),
	}
	if entry.UnitPrice <= 0 {
		return q
	}

	switch mode {
	case listing.ModeHourly:
		minimum := entry.MinimumFor(listing.ModeHourly)
		hours := minimum
		if end != nil {
			hours = floorTo(hoursBetween(start, *end), minimum)
		}
		q.Quantity = hours
	case listing.ModeDaily:
		q.Quantity = 1
	case listing.ModeStay:
		minimum := entry.MinimumFor(listing.ModeStay)
		nights := minimum
		if end != nil {
			nights = floorTo(daysBetween(start, *end), minimum)
		}
		q.Quantity = nights
	default:
		return Quote{Mode: mode, CommissionRate: l.CommissionRate()}
	}

	q.TotalPrice = entry.UnitPrice * int64(q.Quantity)
	q.CommissionAmount = splitCommission(q.TotalPrice, q.CommissionRate)
	q.PayoutAmount = q.TotalPrice - q.CommissionAmount
	return q
}
