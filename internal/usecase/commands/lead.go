package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"
	"charterdesk/internal/domain/quote"
	"charterdesk/internal/infra"
	"charterdesk/internal/infra/mailer"
	"charterdesk/internal/infra/repository"
	"charterdesk/internal/pkg/clock"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreateLeadParams struct {
	ListingID     uuid.UUID
	CustomerName  string
	CustomerPhone string
	Mode          string
	Start         time.Time
	End           *time.Time
	GuestCount    int
}

type UpdateLeadStatusParams struct {
	LeadID uuid.UUID
	Status string
	Note   string
}

type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	Create(ctx context.Context, l *listing.Listing) error
	Update(ctx context.Context, l *listing.Listing) error
}

type LeadRepository interface {
	Create(ctx context.Context, tx repository.DBTX, l *lead.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error)
	UpdateStatus(ctx context.Context, l *lead.Lead) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx repository.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type LeadCommands interface {
	// CreateLead validates the charter request against the listing's
	// current catalog, computes the quote, and persists the lead in a
	// single transaction together with the outgoing notification job.
	CreateLead(ctx context.Context, params CreateLeadParams) (*queries.LeadView, error)
	UpdateLeadStatus(ctx context.Context, params UpdateLeadStatusParams) (*queries.LeadView, error)
}

type leadCommandsImpl struct {
	leadRepo     LeadRepository
	listingRepo  ListingRepository
	notification NotificationRepository
	leadQueries  queries.LeadQueries
	db           *pgxpool.Pool
	clock        clock.Clock
}

func NewLeadCommands(
	leadRepo LeadRepository,
	listingRepo ListingRepository,
	notification NotificationRepository,
	leadQueries queries.LeadQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
) LeadCommands {
	return &leadCommandsImpl{
		leadRepo:     leadRepo,
		listingRepo:  listingRepo,
		notification: notification,
		leadQueries:  leadQueries,
		db:           db,
		clock:        clock,
	}
}

func (c *leadCommandsImpl) CreateLead(ctx context.Context, params CreateLeadParams) (*queries.LeadView, error) {
	l, err := c.listingRepo.FindByID(ctx, params.ListingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !l.IsBookable() {
		return nil, errs.ErrNoActiveModes
	}

	mode, err := listing.ParseMode(params.Mode)
	if err != nil {
		return nil, errs.ErrModeUnavailable
	}

	computed, err := quote.ComputeForListing(l, quote.ChargeRequest{
		Mode:  mode,
		Start: params.Start,
		End:   params.End,
	})
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrModeUnavailable):
			return nil, errs.Mark(err, errs.ErrModeUnavailable)
		case errors.Is(err, quote.ErrInvalidRange):
			return nil, errs.Mark(err, errs.ErrInvalidRange)
		default:
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	leadEntity, err := lead.NewLead(
		l.ID(), params.CustomerName, params.CustomerPhone,
		mode, params.Start, params.End, params.GuestCount,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.persistLead(ctx, leadEntity, l, computed); err != nil {
		return nil, err
	}

	// Read-after-write so the response carries the joined view.
	return c.leadQueries.GetByID(ctx, leadEntity.ID())
}

func (c *leadCommandsImpl) persistLead(
	ctx context.Context,
	leadEntity *lead.Lead,
	l *listing.Listing,
	computed quote.Quote,
) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := c.leadRepo.Create(ctx, tx, leadEntity); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// The email snapshots the quote as computed at submission time;
	// the admin screens recompute instead. Queue failure aborts the
	// lead write, send failure later never does.
	payload, err := json.Marshal(mailer.NewLeadEmail(leadEntity, l, computed))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := c.notification.CreateJob(ctx, tx, "email", "lead_created", payload, c.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *leadCommandsImpl) UpdateLeadStatus(ctx context.Context, params UpdateLeadStatusParams) (*queries.LeadView, error) {
	leadEntity, err := c.leadRepo.FindByID(ctx, params.LeadID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrLeadNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := leadEntity.UpdateStatus(lead.Status(params.Status), params.Note); err != nil {
		return nil, errs.Mark(err, errs.ErrStatusTransition)
	}

	if err := c.leadRepo.UpdateStatus(ctx, leadEntity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.leadQueries.GetByID(ctx, leadEntity.ID())
}
