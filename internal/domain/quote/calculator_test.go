//go:build unit

package quote_test

import (
	"testing"
	"time"

	"charterdesk/internal/domain/listing"
	"charterdesk/internal/domain/quote"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourly(day time.Time, startHour, endHour int) quote.ChargeRequest {
	start := day.Add(time.Duration(startHour) * time.Hour)
	end := day.Add(time.Duration(endHour) * time.Hour)
	return quote.ChargeRequest{Mode: listing.ModeHourly, Start: start, End: &end}
}

func stay(checkin, checkout time.Time) quote.ChargeRequest {
	return quote.ChargeRequest{Mode: listing.ModeStay, Start: checkin, End: &checkout}
}

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestCompute_Hourly(t *testing.T) {
	entry := listing.RateEntry{Active: true, UnitPrice: 1000, MinDuration: 2}

	t.Run("full breakdown for a four hour charter", func(t *testing.T) {
		q, err := quote.Compute(entry, hourly(day, 10, 14), 15)
		require.NoError(t, err)

		assert.Equal(t, 4, q.Quantity)
		assert.Equal(t, "hour", q.UnitLabel)
		assert.Equal(t, int64(1000), q.UnitPrice)
		assert.Equal(t, int64(4000), q.TotalPrice)
		assert.Equal(t, 15, q.CommissionRate)
		assert.Equal(t, int64(600), q.CommissionAmount)
		assert.Equal(t, int64(3400), q.PayoutAmount)
	})

	t.Run("requested hours below the minimum are floored to it", func(t *testing.T) {
		q, err := quote.Compute(entry, hourly(day, 10, 11), 15)
		require.NoError(t, err)

		assert.Equal(t, 2, q.Quantity)
		assert.Equal(t, int64(2000), q.TotalPrice)
	})

	t.Run("unset minimum defaults to two hours", func(t *testing.T) {
		noMin := listing.RateEntry{Active: true, UnitPrice: 1000}
		q, err := quote.Compute(noMin, hourly(day, 10, 11), 0)
		require.NoError(t, err)

		assert.Equal(t, 2, q.Quantity)
	})

	t.Run("end not after start is rejected", func(t *testing.T) {
		for _, endHour := range []int{10, 9} {
			_, err := quote.Compute(entry, hourly(day, 10, endHour), 15)
			assert.ErrorIs(t, err, quote.ErrInvalidRange)
		}
	})

	t.Run("missing end is rejected", func(t *testing.T) {
		req := quote.ChargeRequest{Mode: listing.ModeHourly, Start: day.Add(10 * time.Hour)}
		_, err := quote.Compute(entry, req, 15)
		assert.ErrorIs(t, err, quote.ErrInvalidRange)
	})
}

func TestCompute_Daily(t *testing.T) {
	entry := listing.RateEntry{Active: true, UnitPrice: 8000}

	t.Run("always exactly one unit", func(t *testing.T) {
		q, err := quote.Compute(entry, quote.ChargeRequest{Mode: listing.ModeDaily, Start: day}, 10)
		require.NoError(t, err)

		assert.Equal(t, 1, q.Quantity)
		assert.Equal(t, "day", q.UnitLabel)
		assert.Equal(t, int64(8000), q.TotalPrice)
	})

	t.Run("a supplied range does not change the quantity", func(t *testing.T) {
		end := day.AddDate(0, 0, 5)
		req := quote.ChargeRequest{Mode: listing.ModeDaily, Start: day, End: &end}
		q, err := quote.Compute(entry, req, 10)
		require.NoError(t, err)

		assert.Equal(t, 1, q.Quantity)
		assert.Equal(t, int64(8000), q.TotalPrice)
	})
}

func TestCompute_Stay(t *testing.T) {
	entry := listing.RateEntry{Active: true, UnitPrice: 5000, MinDuration: 3}

	t.Run("three nights at the minimum", func(t *testing.T) {
		checkin := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		checkout := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
		q, err := quote.Compute(entry, stay(checkin, checkout), 20)
		require.NoError(t, err)

		assert.Equal(t, 3, q.Quantity)
		assert.Equal(t, "night", q.UnitLabel)
		assert.Equal(t, int64(15000), q.TotalPrice)
	})

	t.Run("short stays are floored to the minimum nights", func(t *testing.T) {
		checkout := day.AddDate(0, 0, 1)
		q, err := quote.Compute(entry, stay(day, checkout), 20)
		require.NoError(t, err)

		assert.Equal(t, 3, q.Quantity)
	})

	t.Run("unset minimum defaults to three nights", func(t *testing.T) {
		noMin := listing.RateEntry{Active: true, UnitPrice: 5000}
		checkout := day.AddDate(0, 0, 1)
		q, err := quote.Compute(noMin, stay(day, checkout), 20)
		require.NoError(t, err)

		assert.Equal(t, 3, q.Quantity)
	})

	t.Run("partial final day counts as a night", func(t *testing.T) {
		checkout := day.AddDate(0, 0, 4).Add(6 * time.Hour)
		q, err := quote.Compute(entry, stay(day, checkout), 20)
		require.NoError(t, err)

		assert.Equal(t, 5, q.Quantity)
	})

	t.Run("checkout not after checkin is rejected", func(t *testing.T) {
		_, err := quote.Compute(entry, stay(day, day), 20)
		assert.ErrorIs(t, err, quote.ErrInvalidRange)

		_, err = quote.Compute(entry, quote.ChargeRequest{Mode: listing.ModeStay, Start: day}, 20)
		assert.ErrorIs(t, err, quote.ErrInvalidRange)
	})
}

func TestCompute_CommissionSplit(t *testing.T) {
	t.Run("rounds half away from zero", func(t *testing.T) {
		entry := listing.RateEntry{Active: true, UnitPrice: 333, MinDuration: 1}
		q, err := quote.Compute(entry, hourly(day, 10, 11), 10)
		require.NoError(t, err)

		// 333 * 10% = 33.3 -> 33, payout by subtraction.
		assert.Equal(t, int64(333), q.TotalPrice)
		assert.Equal(t, int64(33), q.CommissionAmount)
		assert.Equal(t, int64(300), q.PayoutAmount)
	})

	t.Run("exact half rounds up", func(t *testing.T) {
		entry := listing.RateEntry{Active: true, UnitPrice: 15, MinDuration: 1}
		q, err := quote.Compute(entry, hourly(day, 10, 11), 10)
		require.NoError(t, err)

		// 15 * 10% = 1.5 -> 2, not bankers' 1.
		assert.Equal(t, int64(2), q.CommissionAmount)
		assert.Equal(t, int64(13), q.PayoutAmount)
	})

	t.Run("zero rate is valid and pays out the full total", func(t *testing.T) {
		entry := listing.RateEntry{Active: true, UnitPrice: 1000, MinDuration: 2}
		q, err := quote.Compute(entry, hourly(day, 10, 14), 0)
		require.NoError(t, err)

		assert.Equal(t, int64(0), q.CommissionAmount)
		assert.Equal(t, q.TotalPrice, q.PayoutAmount)
	})

	t.Run("rate outside 0-100 is rejected", func(t *testing.T) {
		entry := listing.RateEntry{Active: true, UnitPrice: 1000}
		for _, rate := range []int{-1, 101} {
			_, err := quote.Compute(entry, hourly(day, 10, 14), rate)
			assert.ErrorIs(t, err, quote.ErrInvalidCommissionRate)
		}
	})

	t.Run("split invariant holds across the rate grid", func(t *testing.T) {
		prices := []int64{1, 7, 333, 999, 1000, 12345}
		for _, price := range prices {
			entry := listing.RateEntry{Active: true, UnitPrice: price, MinDuration: 1}
			for rate := 0; rate <= 100; rate++ {
				q, err := quote.Compute(entry, hourly(day, 9, 16), rate)
				require.NoError(t, err)
				assert.Equal(t, q.TotalPrice, q.CommissionAmount+q.PayoutAmount,
					"price=%d rate=%d", price, rate)
			}
		}
	})
}

func TestCompute_ModeAvailability(t *testing.T) {
	t.Run("inactive entry is rejected, never a garbage quote", func(t *testing.T) {
		entry := listing.RateEntry{Active: false, UnitPrice: 5000}
		q, err := quote.Compute(entry, stay(day, day.AddDate(0, 0, 4)), 15)
		assert.ErrorIs(t, err, quote.ErrModeUnavailable)
		assert.Zero(t, q)
	})

	t.Run("zero-priced active entry still quotes zero total", func(t *testing.T) {
		entry := listing.RateEntry{Active: true, UnitPrice: 0, MinDuration: 2}
		q, err := quote.Compute(entry, hourly(day, 10, 14), 15)
		require.NoError(t, err)
		assert.Equal(t, int64(0), q.TotalPrice)
		assert.Equal(t, int64(0), q.CommissionAmount)
	})
}

func TestComputeForListing(t *testing.T) {
	l, err := listing.NewListing(
		uuid.New(), "Test Boat", "TRY", "", "", 15,
		listing.RateCatalog{
			listing.ModeHourly: {Active: true, UnitPrice: 1000, MinDuration: 2},
			listing.ModeStay:   {Active: false, UnitPrice: 5000},
		},
	)
	require.NoError(t, err)

	t.Run("uses the listing commission rate", func(t *testing.T) {
		q, err := quote.ComputeForListing(l, hourly(day, 10, 14))
		require.NoError(t, err)
		assert.Equal(t, 15, q.CommissionRate)
		assert.Equal(t, int64(600), q.CommissionAmount)
	})

	t.Run("inactive catalog mode is unavailable", func(t *testing.T) {
		_, err := quote.ComputeForListing(l, stay(day, day.AddDate(0, 0, 4)))
		assert.ErrorIs(t, err, quote.ErrModeUnavailable)
	})

	t.Run("mode missing from the catalog is unavailable", func(t *testing.T) {
		_, err := quote.ComputeForListing(l, quote.ChargeRequest{Mode: listing.ModeDaily, Start: day})
		assert.ErrorIs(t, err, quote.ErrModeUnavailable)
	})
}
