package queries

import (
	"context"
	"sort"

	"charterdesk/internal/domain/quote"
	"charterdesk/internal/infra"
	"charterdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

type LeadReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LeadRecord, error)
	FindAll(ctx context.Context, filter LeadFilter) ([]*LeadRecord, error)
}

type LeadQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LeadView, error)
	List(ctx context.Context, filter LeadFilter) ([]*LeadView, error)
}

type leadQueriesImpl struct {
	store LeadReadStore
}

func NewLeadQueries(store LeadReadStore) LeadQueries {
	return &leadQueriesImpl{store: store}
}

func (q *leadQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LeadView, error) {
	rec, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrLeadNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return recordToView(rec), nil
}

func (q *leadQueriesImpl) List(ctx context.Context, filter LeadFilter) ([]*LeadView, error) {
	recs, err := q.store.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*LeadView, len(recs))
	for i, rec := range recs {
		views[i] = recordToView(rec)
	}

	// Price ordering happens here, not in SQL: the total is derived
	// from the current catalog, never stored with the lead.
	switch filter.Sort {
	case LeadSortPriceAsc:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Quote.TotalPrice < views[j].Quote.TotalPrice
		})
	case LeadSortPriceDesc:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Quote.TotalPrice > views[j].Quote.TotalPrice
		})
	}

	return views, nil
}

func recordToView(rec *LeadRecord) *LeadView {
	l := rec.Lead
	q := quote.ComputeReport(rec.Listing, l.Mode(), l.Start(), l.End())

	return &LeadView{
		ID:            l.ID(),
		ListingID:     l.ListingID(),
		ListingName:   rec.Listing.Name(),
		CustomerName:  l.CustomerName(),
		CustomerPhone: l.CustomerPhone(),
		Mode:          l.Mode().String(),
		Start:         l.Start(),
		End:           l.End(),
		GuestCount:    l.GuestCount(),
		Status:        l.Status().String(),
		AdminNote:     l.AdminNote(),
		Quote:         QuoteToView(q, rec.Listing.Currency()),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}
}

// QuoteToView maps a computed quote to its read model.
func QuoteToView(q quote.Quote, currency string) QuoteView {
	return QuoteView{
		Mode:             q.Mode.String(),
		UnitLabel:        q.UnitLabel,
		UnitPrice:        q.UnitPrice,
		Quantity:         q.Quantity,
		TotalPrice:       q.TotalPrice,
		CommissionRate:   q.CommissionRate,
		CommissionAmount: q.CommissionAmount,
		PayoutAmount:     q.PayoutAmount,
		Currency:         currency,
	}
}
