package commands

import (
	"context"
	"log/slog"

	"charterdesk/internal/domain/listing"
	"charterdesk/internal/infra"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type RateParams struct {
	Active      bool
	UnitPrice   int64
	MinDuration int
}

type SaveListingParams struct {
	Name           string
	Currency       string
	OwnerName      string
	OwnerPhone     string
	CommissionRate int
	Rates          map[string]RateParams
}

// ListingCache is invalidated after every write so the public catalog
// endpoints never serve a stale rate.
type ListingCache interface {
	Invalidate(ctx context.Context, ids ...uuid.UUID) error
}

type ListingCommands interface {
	CreateListing(ctx context.Context, params SaveListingParams) (*queries.ListingView, error)
	UpdateListing(ctx context.Context, id uuid.UUID, params SaveListingParams) (*queries.ListingView, error)
}

type listingCommandsImpl struct {
	repo    ListingRepository
	cache   ListingCache
	queries queries.ListingQueries
}

func NewListingCommands(repo ListingRepository, cache ListingCache, q queries.ListingQueries) ListingCommands {
	return &listingCommandsImpl{repo: repo, cache: cache, queries: q}
}

func (c *listingCommandsImpl) CreateListing(ctx context.Context, params SaveListingParams) (*queries.ListingView, error) {
	rates, err := buildCatalog(params.Rates)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	l, err := listing.NewListing(
		uuid.New(), params.Name, params.Currency,
		params.OwnerName, params.OwnerPhone,
		params.CommissionRate, rates,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.repo.Create(ctx, l); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.invalidate(ctx, l.ID())
	return c.queries.GetByID(ctx, l.ID(), "")
}

func (c *listingCommandsImpl) UpdateListing(ctx context.Context, id uuid.UUID, params SaveListingParams) (*queries.ListingView, error) {
	current, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	rates, err := buildCatalog(params.Rates)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// Full replace: the admin form always submits the complete catalog.
	updated, err := listing.NewListing(
		current.ID(), params.Name, params.Currency,
		params.OwnerName, params.OwnerPhone,
		params.CommissionRate, rates,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.repo.Update(ctx, updated); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.invalidate(ctx, id)
	return c.queries.GetByID(ctx, id, "")
}

func (c *listingCommandsImpl) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.cache.Invalidate(ctx, id); err != nil {
		slog.Warn("failed to invalidate listing cache", "listing_id", id, "error", err)
	}
}

func buildCatalog(params map[string]RateParams) (listing.RateCatalog, error) {
	rates := listing.RateCatalog{}
	for raw, p := range params {
		mode, err := listing.ParseMode(raw)
		if err != nil {
			return nil, err
		}
		rates[mode] = listing.RateEntry{
			Active:      p.Active,
			UnitPrice:   p.UnitPrice,
			MinDuration: p.MinDuration,
		}
	}
	return rates, nil
}
