package queries

import (
	"time"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"

	"github.com/google/uuid"
)

// Read models (DTO for the read side)

type RateView struct {
	Mode        string `json:"mode"`
	UnitLabel   string `json:"unit_label"`
	Active      bool   `json:"active"`
	UnitPrice   int64  `json:"unit_price"`
	MinDuration int    `json:"min_duration"`
}

type ListingView struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Currency       string     `json:"currency"`
	OwnerName      string     `json:"owner_name,omitempty"`
	OwnerPhone     string     `json:"owner_phone,omitempty"`
	CommissionRate int        `json:"commission_rate"`
	Rates          []RateView `json:"rates"`
	BookableModes  []string   `json:"bookable_modes"`
	DefaultMode    string     `json:"default_mode,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type QuoteView struct {
	Mode             string `json:"mode"`
	UnitLabel        string `json:"unit_label"`
	UnitPrice        int64  `json:"unit_price"`
	Quantity         int    `json:"quantity"`
	TotalPrice       int64  `json:"total_price"`
	CommissionRate   int    `json:"commission_rate"`
	CommissionAmount int64  `json:"commission_amount"`
	PayoutAmount     int64  `json:"payout_amount"`
	Currency         string `json:"currency"`
}

type LeadView struct {
	ID            uuid.UUID  `json:"id"`
	ListingID     uuid.UUID  `json:"listing_id"`
	ListingName   string     `json:"listing_name"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Mode          string     `json:"mode"`
	Start         time.Time  `json:"start"`
	End           *time.Time `json:"end,omitempty"`
	GuestCount    int        `json:"guest_count"`
	Status        string     `json:"status"`
	AdminNote     string     `json:"admin_note,omitempty"`
	Quote         QuoteView  `json:"quote"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LeadRecord is what the read store returns for a lead: the persisted
// lead joined with its listing, reconstructed so the quote can be
// recomputed against the current catalog.
type LeadRecord struct {
	Lead    *lead.Lead
	Listing *listing.Listing
}

// LeadSort orders an admin lead list. Price sorts operate on the
// recomputed total, so they always reflect today's catalog.
type LeadSort string

const (
	LeadSortNewest    LeadSort = "newest"
	LeadSortOldest    LeadSort = "oldest"
	LeadSortPriceAsc  LeadSort = "price_asc"
	LeadSortPriceDesc LeadSort = "price_desc"
)

type LeadFilter struct {
	Status    *lead.Status
	ListingID *uuid.UUID
	Sort      LeadSort
}
