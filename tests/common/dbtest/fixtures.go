//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func InsertListing(t *testing.T, db DBLike, l *listing.Listing) {
	t.Helper()

	hourly := l.Rates().Entry(listing.ModeHourly)
	daily := l.Rates().Entry(listing.ModeDaily)
	stay := l.Rates().Entry(listing.ModeStay)

	_, err := db.Exec(context.Background(), `
		INSERT INTO listings (
			id, name, currency, owner_name, owner_phone, commission_rate,
			is_hourly_active, price_per_hour, min_hours,
			is_daily_active, price_per_day,
			is_stay_active, price_per_night, min_stay_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		l.ID(), l.Name(), l.Currency(), l.OwnerName(), l.OwnerPhone(), l.CommissionRate(),
		hourly.Active, hourly.UnitPrice, hourly.MinDuration,
		daily.Active, daily.UnitPrice,
		stay.Active, stay.UnitPrice, stay.MinDuration,
	)
	require.NoError(t, err)
}

func InsertLead(t *testing.T, db DBLike, l *lead.Lead) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO leads (
			id, listing_id, customer_name, customer_phone,
			mode, start_at, end_at, guest_count, status, admin_note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID(), l.ListingID(), l.CustomerName(), l.CustomerPhone(),
		l.Mode().String(), l.Start(), l.End(), l.GuestCount(),
		l.Status().String(), l.AdminNote(),
	)
	require.NoError(t, err)
}

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		"TRUNCATE notification_jobs, leads, listings CASCADE")
	return err
}
