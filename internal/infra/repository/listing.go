package repository

import (
	"context"
	"time"

	"charterdesk/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `
	id, name, currency, owner_name, owner_phone, commission_rate,
	is_hourly_active, price_per_hour, min_hours,
	is_daily_active, price_per_day,
	is_stay_active, price_per_night, min_stay_days,
	created_at, updated_at`

type ListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	row := r.db.QueryRow(ctx, `
		SELECT`+listingColumns+`
		FROM listings
		WHERE id = $1`, id)

	l, err := scanListing(row)
	if err != nil {
		return nil, wrapPgErr("failed to find listing", err)
	}
	return l, nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*listing.Listing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+listingColumns+`
		FROM listings
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapPgErr("failed to list listings", err)
	}
	defer rows.Close()

	var listings []*listing.Listing
	for rows.Next() {
		l, scanErr := scanListing(rows)
		if scanErr != nil {
			return nil, wrapPgErr("failed to scan listing", scanErr)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate listings", err)
	}
	return listings, nil
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	hourly := l.Rates().Entry(listing.ModeHourly)
	daily := l.Rates().Entry(listing.ModeDaily)
	stay := l.Rates().Entry(listing.ModeStay)

	_, err := r.db.Exec(ctx, `
		INSERT INTO listings (
			id, name, currency, owner_name, owner_phone, commission_rate,
			is_hourly_active, price_per_hour, min_hours,
			is_daily_active, price_per_day,
			is_stay_active, price_per_night, min_stay_days
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11,
			$12, $13, $14
		)`,
		l.ID(), l.Name(), l.Currency(), l.OwnerName(), l.OwnerPhone(), l.CommissionRate(),
		hourly.Active, hourly.UnitPrice, hourly.MinDuration,
		daily.Active, daily.UnitPrice,
		stay.Active, stay.UnitPrice, stay.MinDuration,
	)
	if err != nil {
		return wrapPgErr("failed to create listing", err)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	hourly := l.Rates().Entry(listing.ModeHourly)
	daily := l.Rates().Entry(listing.ModeDaily)
	stay := l.Rates().Entry(listing.ModeStay)

	tag, err := r.db.Exec(ctx, `
		UPDATE listings SET
			name = $2, currency = $3, owner_name = $4, owner_phone = $5,
			commission_rate = $6,
			is_hourly_active = $7, price_per_hour = $8, min_hours = $9,
			is_daily_active = $10, price_per_day = $11,
			is_stay_active = $12, price_per_night = $13, min_stay_days = $14,
			updated_at = now()
		WHERE id = $1`,
		l.ID(), l.Name(), l.Currency(), l.OwnerName(), l.OwnerPhone(),
		l.CommissionRate(),
		hourly.Active, hourly.UnitPrice, hourly.MinDuration,
		daily.Active, daily.UnitPrice,
		stay.Active, stay.UnitPrice, stay.MinDuration,
	)
	if err != nil {
		return wrapPgErr("failed to update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("failed to update listing", pgx.ErrNoRows)
	}
	return nil
}

func scanListing(row pgx.Row) (*listing.Listing, error) {
	var (
		id                    uuid.UUID
		name, currency        string
		ownerName, ownerPhone string
		commissionRate        int
		hourlyActive          bool
		pricePerHour          int64
		minHours              int
		dailyActive           bool
		pricePerDay           int64
		stayActive            bool
		pricePerNight         int64
		minStayDays           int
		createdAt, updatedAt  time.Time
	)

	err := row.Scan(
		&id, &name, &currency, &ownerName, &ownerPhone, &commissionRate,
		&hourlyActive, &pricePerHour, &minHours,
		&dailyActive, &pricePerDay,
		&stayActive, &pricePerNight, &minStayDays,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rates := listing.RateCatalog{
		listing.ModeHourly: {Active: hourlyActive, UnitPrice: pricePerHour, MinDuration: minHours},
		listing.ModeDaily:  {Active: dailyActive, UnitPrice: pricePerDay},
		listing.ModeStay:   {Active: stayActive, UnitPrice: pricePerNight, MinDuration: minStayDays},
	}

	return listing.ReconstructListing(
		id, name, currency, ownerName, ownerPhone,
		commissionRate, rates,
		createdAt, updatedAt,
	), nil
}
