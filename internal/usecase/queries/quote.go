package queries

import (
	"context"
	"errors"
	"time"

	"charterdesk/internal/domain/listing"
	"charterdesk/internal/domain/quote"
	"charterdesk/internal/infra"
	"charterdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

// PreviewParams is the live price breakdown request the booking form
// sends while the customer changes dates and hours. Nothing is
// persisted.
type PreviewParams struct {
	Mode  string
	Start time.Time
	End   *time.Time
}

type QuoteQueries interface {
	Preview(ctx context.Context, listingID uuid.UUID, params PreviewParams) (*QuoteView, error)
}

type quoteQueriesImpl struct {
	listings ListingReadStore
}

func NewQuoteQueries(listings ListingReadStore) QuoteQueries {
	return &quoteQueriesImpl{listings: listings}
}

func (q *quoteQueriesImpl) Preview(ctx context.Context, listingID uuid.UUID, params PreviewParams) (*QuoteView, error) {
	l, err := q.listings.FindByID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
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
		return nil, markQuoteErr(err)
	}

	view := QuoteToView(computed, l.Currency())
	return &view, nil
}

func markQuoteErr(err error) error {
	switch {
	case errors.Is(err, quote.ErrModeUnavailable):
		return errs.Mark(err, errs.ErrModeUnavailable)
	case errors.Is(err, quote.ErrInvalidRange):
		return errs.Mark(err, errs.ErrInvalidRange)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
