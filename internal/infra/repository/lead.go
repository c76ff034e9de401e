package repository

import (
	"context"
	"time"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create runs on the caller's transaction so the lead and its
// notification job commit together.
func (r *LeadRepository) Create(ctx context.Context, tx DBTX, l *lead.Lead) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO leads (
			id, listing_id, customer_name, customer_phone,
			mode, start_at, end_at, guest_count, status, admin_note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID(), l.ListingID(), l.CustomerName(), l.CustomerPhone(),
		l.Mode().String(), l.Start(), l.End(), l.GuestCount(),
		l.Status().String(), l.AdminNote(),
	)
	if err != nil {
		return wrapPgErr("failed to create lead", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, listing_id, customer_name, customer_phone,
		       mode, start_at, end_at, guest_count, status, admin_note,
		       created_at, updated_at
		FROM leads
		WHERE id = $1`, id)

	l, err := scanLead(row)
	if err != nil {
		return nil, wrapPgErr("failed to find lead", err)
	}
	return l, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, l *lead.Lead) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leads
		SET status = $2, admin_note = $3, updated_at = now()
		WHERE id = $1`,
		l.ID(), l.Status().String(), l.AdminNote(),
	)
	if err != nil {
		return wrapPgErr("failed to update lead status", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("failed to update lead status", pgx.ErrNoRows)
	}
	return nil
}

func scanLead(row pgx.Row) (*lead.Lead, error) {
	var (
		id, listingID        uuid.UUID
		customerName         string
		customerPhone        string
		modeRaw, statusRaw   string
		start                time.Time
		end                  *time.Time
		guestCount           int
		adminNote            string
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&id, &listingID, &customerName, &customerPhone,
		&modeRaw, &start, &end, &guestCount, &statusRaw, &adminNote,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	mode, err := listing.ParseMode(modeRaw)
	if err != nil {
		return nil, err
	}

	return lead.ReconstructLead(
		id, listingID, customerName, customerPhone,
		mode, start, end, guestCount,
		lead.Status(statusRaw), adminNote,
		createdAt, updatedAt,
	), nil
}
