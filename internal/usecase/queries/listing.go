package queries

import (
	"context"

	"charterdesk/internal/domain/listing"
	"charterdesk/internal/infra"
	"charterdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

type ListingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	FindAll(ctx context.Context) ([]*listing.Listing, error)
}

type ListingQueries interface {
	// GetByID resolves the listing together with its bookable modes and
	// the mode to preselect; requested comes from the page's ?type=
	// query parameter and may be empty.
	GetByID(ctx context.Context, id uuid.UUID, requested string) (*ListingView, error)
	List(ctx context.Context) ([]*ListingView, error)
}

type listingQueriesImpl struct {
	store ListingReadStore
}

func NewListingQueries(store ListingReadStore) ListingQueries {
	return &listingQueriesImpl{store: store}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, requested string) (*ListingView, error) {
	l, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view := ListingToView(l)

	var req *listing.Mode
	if m, parseErr := listing.ParseMode(requested); parseErr == nil {
		req = &m
	}
	if def, defErr := l.Rates().DefaultMode(req); defErr == nil {
		view.DefaultMode = def.String()
	}

	return view, nil
}

func (q *listingQueriesImpl) List(ctx context.Context) ([]*ListingView, error) {
	ls, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*ListingView, len(ls))
	for i, l := range ls {
		views[i] = ListingToView(l)
	}
	return views, nil
}

// ListingToView maps the domain entity to its read model.
func ListingToView(l *listing.Listing) *ListingView {
	rates := make([]RateView, 0, 3)
	for _, mode := range []listing.Mode{listing.ModeHourly, listing.ModeDaily, listing.ModeStay} {
		entry := l.Rates().Entry(mode)
		rates = append(rates, RateView{
			Mode:        mode.String(),
			UnitLabel:   mode.UnitLabel(),
			Active:      entry.Active,
			UnitPrice:   entry.UnitPrice,
			MinDuration: entry.MinimumFor(mode),
		})
	}

	bookable := l.Rates().ActiveModes()
	modes := make([]string, len(bookable))
	for i, m := range bookable {
		modes[i] = m.String()
	}

	return &ListingView{
		ID:             l.ID(),
		Name:           l.Name(),
		Currency:       l.Currency(),
		OwnerName:      l.OwnerName(),
		OwnerPhone:     l.OwnerPhone(),
		CommissionRate: l.CommissionRate(),
		Rates:          rates,
		BookableModes:  modes,
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
}
