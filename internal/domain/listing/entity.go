package listing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyListingName      = errors.New("listing name cannot be empty")
	ErrListingNameTooLong    = errors.New("listing name is too long (max 255 characters)")
	ErrEmptyCurrency         = errors.New("currency code cannot be empty")
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
)

const (
	MaxListingNameLength = 255
	DefaultCurrency      = "TRY"
)

// Listing is a charter boat offered on the marketplace. The rate
// catalog is owned by the listing and read-only to the pricing engine.
type Listing struct {
	id             uuid.UUID
	name           string
	currency       string
	ownerName      string
	ownerPhone     string
	commissionRate int
	rates          RateCatalog
	createdAt      time.Time
	updatedAt      time.Time
}

func NewListing(
	id uuid.UUID,
	name string,
	currency string,
	ownerName, ownerPhone string,
	commissionRate int,
	rates RateCatalog,
) (*Listing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyListingName
	}
	if len(name) > MaxListingNameLength {
		return nil, ErrListingNameTooLong
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	if commissionRate < 0 || commissionRate > 100 {
		return nil, ErrInvalidCommissionRate
	}

	if rates == nil {
		rates = RateCatalog{}
	}
	if err := rates.validate(); err != nil {
		return nil, err
	}

	return &Listing{
		id:             id,
		name:           name,
		currency:       currency,
		ownerName:      strings.TrimSpace(ownerName),
		ownerPhone:     strings.TrimSpace(ownerPhone),
		commissionRate: commissionRate,
		rates:          rates,
	}, nil
}

func ReconstructListing(
	id uuid.UUID,
	name, currency, ownerName, ownerPhone string,
	commissionRate int,
	rates RateCatalog,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:             id,
		name:           name,
		currency:       currency,
		ownerName:      ownerName,
		ownerPhone:     ownerPhone,
		commissionRate: commissionRate,
		rates:          rates,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// IsBookable reports whether the listing can accept leads at all.
func (l *Listing) IsBookable() bool {
	return len(l.rates.ActiveModes()) > 0
}

func (l *Listing) ID() uuid.UUID       { return l.id }
func (l *Listing) Name() string        { return l.name }
func (l *Listing) Currency() string    { return l.currency }
func (l *Listing) OwnerName() string   { return l.ownerName }
func (l *Listing) OwnerPhone() string  { return l.ownerPhone }
func (l *Listing) CommissionRate() int { return l.commissionRate }
func (l *Listing) Rates() RateCatalog  { return l.rates }
func (l *Listing) CreatedAt() time.Time { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time { return l.updatedAt }
