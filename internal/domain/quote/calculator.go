// Package quote computes deterministic price breakdowns for charter
// requests. It is the single shared calculator consumed by the booking
// form preview, the lead intake flow, and the admin reporting views so
// the three call sites can never drift apart.
package quote

import (
	"errors"
	"time"

	"charterdesk/internal/domain/listing"
)

var (
	// ErrModeUnavailable means the requested mode is not active on the
	// listing's catalog. It is surfaced to the customer, never silently
	// substituted with another mode.
	ErrModeUnavailable = errors.New("charter mode is not offered for this listing")

	// ErrInvalidRange means the requested time range yields a
	// non-positive quantity, or a required end is missing.
	ErrInvalidRange = errors.New("charter end must be after start")

	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
)

// ChargeRequest is a customer's requested charter, built transiently
// from form input and discarded after producing a Quote. For hourly
// charters Start and End carry whole-hour times of the same day; for
// stays they carry checkin and checkout dates.
type ChargeRequest struct {
	Mode  listing.Mode
	Start time.Time
	End   *time.Time
}

// Quote is the computed price breakdown for one charter request. It is
// a derived view: reporting recomputes it from the current catalog
// rather than trusting a stored copy.
type Quote struct {
	Mode             listing.Mode
	UnitLabel        string
	UnitPrice        int64
	Quantity         int
	TotalPrice       int64
	CommissionRate   int
	CommissionAmount int64
	PayoutAmount     int64
}

// Compute converts a catalog entry, a charge request and a commission
// rate (integer percent) into a Quote. Pure and safe for concurrent
// use; the only clock involved is the comparison of the two supplied
// timestamps.
//
// The commission is rounded half away from zero, and the payout is
// derived by subtraction so that commission + payout always equals the
// total exactly.
func Compute(entry listing.RateEntry, req ChargeRequest, commissionRate int) (Quote, error) {
	if commissionRate < 0 || commissionRate > 100 {
		return Quote{}, ErrInvalidCommissionRate
	}
	if !entry.Active {
		return Quote{}, ErrModeUnavailable
	}

	quantity, err := resolveQuantity(entry, req)
	if err != nil {
		return Quote{}, err
	}

	total := entry.UnitPrice * int64(quantity)
	commission := splitCommission(total, commissionRate)

	return Quote{
		Mode:             req.Mode,
		UnitLabel:        req.Mode.UnitLabel(),
		UnitPrice:        entry.UnitPrice,
		Quantity:         quantity,
		TotalPrice:       total,
		CommissionRate:   commissionRate,
		CommissionAmount: commission,
		PayoutAmount:     total - commission,
	}, nil
}

// ComputeForListing resolves the catalog entry and validates the mode
// before delegating to Compute. Inactive and unpriced modes are
// rejected with ErrModeUnavailable.
func ComputeForListing(l *listing.Listing, req ChargeRequest) (Quote, error) {
	if !req.Mode.IsValid() {
		return Quote{}, ErrModeUnavailable
	}
	entry := l.Rates().Entry(req.Mode)
	if !entry.Bookable() {
		return Quote{}, ErrModeUnavailable
	}
	return Compute(entry, req, l.CommissionRate())
}

func resolveQuantity(entry listing.RateEntry, req ChargeRequest) (int, error) {
	switch req.Mode {
	case listing.ModeHourly:
		if req.End == nil {
			return 0, ErrInvalidRange
		}
		// Whole-hour subtraction: the external interface only offers
		// whole hours, but a direct caller may still submit an
		// inverted range, so it is re-checked here.
		hours := hoursBetween(req.Start, *req.End)
		if hours <= 0 {
			return 0, ErrInvalidRange
		}
		return floorTo(hours, entry.MinimumFor(listing.ModeHourly)), nil

	case listing.ModeDaily:
		// Daily charters bill exactly one unit whatever range was sent.
		return 1, nil

	case listing.ModeStay:
		if req.End == nil {
			return 0, ErrInvalidRange
		}
		nights := daysBetween(req.Start, *req.End)
		if nights <= 0 {
			return 0, ErrInvalidRange
		}
		return floorTo(nights, entry.MinimumFor(listing.ModeStay)), nil

	default:
		return 0, ErrModeUnavailable
	}
}

// splitCommission rounds half away from zero for non-negative totals.
// Integer arithmetic keeps the split exact; bankers' rounding would
// disagree with the historical behavior of the marketplace.
func splitCommission(total int64, rate int) int64 {
	return (total*int64(rate) + 50) / 100
}

// hoursBetween counts whole hours between two same-day hour marks,
// rounding a partial hour up for ranges that cross midnight.
func hoursBetween(start, end time.Time) int {
	d := end.Sub(start)
	hours := int(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}

// daysBetween is the calendar-day difference between checkout and
// checkin, rounded up so a partial final day counts as a night.
func daysBetween(start, end time.Time) int {
	d := end.Sub(start)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		nights++
	}
	return nights
}

func floorTo(quantity, minimum int) int {
	if quantity < minimum {
		return minimum
	}
	return quantity
}
