package repository

import (
	"context"
	"time"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"
	"charterdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadReadStore reads leads joined with their listing so the query
// layer can recompute the quote from the current catalog.
type LeadReadStore struct {
	db *pgxpool.Pool
}

func NewLeadReadStore(db *pgxpool.Pool) *LeadReadStore {
	return &LeadReadStore{db: db}
}

const leadRecordQuery = `
	SELECT
		ld.id, ld.listing_id, ld.customer_name, ld.customer_phone,
		ld.mode, ld.start_at, ld.end_at, ld.guest_count, ld.status, ld.admin_note,
		ld.created_at, ld.updated_at,
		li.id, li.name, li.currency, li.owner_name, li.owner_phone, li.commission_rate,
		li.is_hourly_active, li.price_per_hour, li.min_hours,
		li.is_daily_active, li.price_per_day,
		li.is_stay_active, li.price_per_night, li.min_stay_days,
		li.created_at, li.updated_at
	FROM leads ld
	JOIN listings li ON li.id = ld.listing_id`

func (s *LeadReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LeadRecord, error) {
	row := s.db.QueryRow(ctx, leadRecordQuery+`
	WHERE ld.id = $1`, id)

	rec, err := scanLeadRecord(row)
	if err != nil {
		return nil, wrapPgErr("failed to find lead record", err)
	}
	return rec, nil
}

func (s *LeadReadStore) FindAll(ctx context.Context, filter queries.LeadFilter) ([]*queries.LeadRecord, error) {
	query := leadRecordQuery
	args := make([]any, 0, 2)
	where := ""

	if filter.Status != nil {
		args = append(args, filter.Status.String())
		where = appendCond(where, "ld.status = $1")
	}
	if filter.ListingID != nil {
		args = append(args, *filter.ListingID)
		if len(args) == 1 {
			where = appendCond(where, "ld.listing_id = $1")
		} else {
			where = appendCond(where, "ld.listing_id = $2")
		}
	}
	query += where

	// Price sorts happen in the query layer after recomputation; SQL
	// only orders by recency.
	if filter.Sort == queries.LeadSortOldest {
		query += `
	ORDER BY ld.created_at ASC`
	} else {
		query += `
	ORDER BY ld.created_at DESC`
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgErr("failed to list lead records", err)
	}
	defer rows.Close()

	var recs []*queries.LeadRecord
	for rows.Next() {
		rec, scanErr := scanLeadRecord(rows)
		if scanErr != nil {
			return nil, wrapPgErr("failed to scan lead record", scanErr)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate lead records", err)
	}
	return recs, nil
}

func appendCond(where, cond string) string {
	if where == "" {
		return `
	WHERE ` + cond
	}
	return where + ` AND ` + cond
}

func scanLeadRecord(row pgx.Row) (*queries.LeadRecord, error) {
	var (
		leadID, leadListingID          uuid.UUID
		customerName, customerPhone    string
		modeRaw, statusRaw             string
		start                          time.Time
		end                            *time.Time
		guestCount                     int
		adminNote                      string
		leadCreatedAt, leadUpdatedAt   time.Time
		listingID                      uuid.UUID
		name, currency                 string
		ownerName, ownerPhone          string
		commissionRate                 int
		hourlyActive                   bool
		pricePerHour                   int64
		minHours                       int
		dailyActive                    bool
		pricePerDay                    int64
		stayActive                     bool
		pricePerNight                  int64
		minStayDays                    int
		listingCreatedAt, listingUpdatedAt time.Time
	)

	err := row.Scan(
		&leadID, &leadListingID, &customerName, &customerPhone,
		&modeRaw, &start, &end, &guestCount, &statusRaw, &adminNote,
		&leadCreatedAt, &leadUpdatedAt,
		&listingID, &name, &currency, &ownerName, &ownerPhone, &commissionRate,
		&hourlyActive, &pricePerHour, &minHours,
		&dailyActive, &pricePerDay,
		&stayActive, &pricePerNight, &minStayDays,
		&listingCreatedAt, &listingUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	mode, err := listing.ParseMode(modeRaw)
	if err != nil {
		return nil, err
	}

	rates := listing.RateCatalog{
		listing.ModeHourly: {Active: hourlyActive, UnitPrice: pricePerHour, MinDuration: minHours},
		listing.ModeDaily:  {Active: dailyActive, UnitPrice: pricePerDay},
		listing.ModeStay:   {Active: stayActive, UnitPrice: pricePerNight, MinDuration: minStayDays},
	}

	return &queries.LeadRecord{
		Lead: lead.ReconstructLead(
			leadID, leadListingID, customerName, customerPhone,
			mode, start, end, guestCount,
			lead.Status(statusRaw), adminNote,
			leadCreatedAt, leadUpdatedAt,
		),
		Listing: listing.ReconstructListing(
			listingID, name, currency, ownerName, ownerPhone,
			commissionRate, rates,
			listingCreatedAt, listingUpdatedAt,
		),
	}, nil
}
