//go:build unit || e2e

package builder

import (
	"time"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"

	"github.com/google/uuid"
)

type LeadBuilder struct {
	ID            uuid.UUID
	ListingID     uuid.UUID
	CustomerName  string
	CustomerPhone string
	Mode          listing.Mode
	Start         time.Time
	End           *time.Time
	GuestCount    int
	Status        lead.Status
	AdminNote     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewLeadBuilder() *LeadBuilder {
	now := time.Now()
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	return &LeadBuilder{
		ID:            uuid.New(),
		ListingID:     uuid.New(),
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+90 532 111 2233",
		Mode:          listing.ModeHourly,
		Start:         start,
		End:           &end,
		GuestCount:    4,
		Status:        lead.StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *LeadBuilder) With(mutate func(*LeadBuilder)) *LeadBuilder {
	mutate(b)
	return b
}

func (b *LeadBuilder) WithStay(checkin, checkout time.Time) *LeadBuilder {
	b.Mode = listing.ModeStay
	b.Start = checkin
	b.End = &checkout
	return b
}

func (b *LeadBuilder) WithDaily(date time.Time) *LeadBuilder {
	b.Mode = listing.ModeDaily
	b.Start = date
	b.End = nil
	return b
}

func (b *LeadBuilder) BuildDomain() (*lead.Lead, error) {
	return lead.NewLead(b.ListingID, b.CustomerName, b.CustomerPhone, b.Mode, b.Start, b.End, b.GuestCount)
}

func (b *LeadBuilder) BuildReconstructed() *lead.Lead {
	return lead.ReconstructLead(
		b.ID, b.ListingID, b.CustomerName, b.CustomerPhone,
		b.Mode, b.Start, b.End, b.GuestCount,
		b.Status, b.AdminNote, b.CreatedAt, b.UpdatedAt,
	)
}
