//go:build unit || e2e

package builder

import (
	"time"

	"charterdesk/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ID             uuid.UUID
	Name           string
	Currency       string
	OwnerName      string
	OwnerPhone     string
	CommissionRate int
	Rates          listing.RateCatalog
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewListingBuilder() *ListingBuilder {
	now := time.Now()
	return &ListingBuilder{
		ID:             uuid.New(),
		Name:           "Blue Voyage Gulet",
		Currency:       "TRY",
		OwnerName:      "Captain Kemal",
		OwnerPhone:     "+90 555 000 0000",
		CommissionRate: 15,
		Rates: listing.RateCatalog{
			listing.ModeHourly: {Active: true, UnitPrice: 1000, MinDuration: 2},
			listing.ModeDaily:  {Active: true, UnitPrice: 8000},
			listing.ModeStay:   {Active: true, UnitPrice: 5000, MinDuration: 3},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) WithRate(mode listing.Mode, entry listing.RateEntry) *ListingBuilder {
	rates := listing.RateCatalog{}
	for m, e := range b.Rates {
		rates[m] = e
	}
	rates[mode] = entry
	b.Rates = rates
	return b
}

func (b *ListingBuilder) WithOnlyModes(modes ...listing.Mode) *ListingBuilder {
	rates := listing.RateCatalog{}
	for _, m := range modes {
		rates[m] = b.Rates[m]
	}
	b.Rates = rates
	return b
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.NewListing(b.ID, b.Name, b.Currency, b.OwnerName, b.OwnerPhone, b.CommissionRate, b.Rates)
}

func (b *ListingBuilder) BuildReconstructed() *listing.Listing {
	return listing.ReconstructListing(
		b.ID, b.Name, b.Currency, b.OwnerName, b.OwnerPhone,
		b.CommissionRate, b.Rates, b.CreatedAt, b.UpdatedAt,
	)
}
