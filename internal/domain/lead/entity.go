package lead

import (
	"errors"
	"strings"
	"time"

	"charterdesk/internal/domain/listing"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerName  = errors.New("customer name cannot be empty")
	ErrEmptyCustomerPhone = errors.New("customer phone cannot be empty")
	ErrInvalidGuestCount  = errors.New("guest count must be positive")
	ErrInvalidStatus      = errors.New("invalid lead status")
	ErrStatusTransition   = errors.New("status transition not allowed")
)

// Lead is a customer's request to book, independent of payment. The
// quote is not persisted with it; reporting recomputes it from the
// listing's current catalog.
type Lead struct {
	id            uuid.UUID
	listingID     uuid.UUID
	customerName  string
	customerPhone string
	mode          listing.Mode
	start         time.Time
	end           *time.Time
	guestCount    int
	status        Status
	adminNote     string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewLead builds a fresh lead in the "new" state. Range validity is
// the quote calculator's concern; callers create a lead only together
// with a successfully computed quote.
func NewLead(
	listingID uuid.UUID,
	customerName, customerPhone string,
	mode listing.Mode,
	start time.Time,
	end *time.Time,
	guestCount int,
) (*Lead, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	customerPhone = strings.TrimSpace(customerPhone)
	if customerPhone == "" {
		return nil, ErrEmptyCustomerPhone
	}
	if guestCount <= 0 {
		guestCount = 1
	}
	if !mode.IsValid() {
		return nil, listing.ErrUnknownMode
	}

	return &Lead{
		id:            uuid.New(),
		listingID:     listingID,
		customerName:  customerName,
		customerPhone: customerPhone,
		mode:          mode,
		start:         start,
		end:           end,
		guestCount:    guestCount,
		status:        StatusNew,
	}, nil
}

func ReconstructLead(
	id, listingID uuid.UUID,
	customerName, customerPhone string,
	mode listing.Mode,
	start time.Time,
	end *time.Time,
	guestCount int,
	status Status,
	adminNote string,
	createdAt, updatedAt time.Time,
) *Lead {
	return &Lead{
		id:            id,
		listingID:     listingID,
		customerName:  customerName,
		customerPhone: customerPhone,
		mode:          mode,
		start:         start,
		end:           end,
		guestCount:    guestCount,
		status:        status,
		adminNote:     adminNote,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// UpdateStatus applies an admin status change, enforcing the lifecycle
// new -> contacted -> confirmed/cancelled -> completed.
func (l *Lead) UpdateStatus(next Status, note string) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if next != l.status && !l.status.CanTransitionTo(next) {
		return ErrStatusTransition
	}
	l.status = next
	l.adminNote = strings.TrimSpace(note)
	return nil
}

func (l *Lead) ID() uuid.UUID         { return l.id }
func (l *Lead) ListingID() uuid.UUID  { return l.listingID }
func (l *Lead) CustomerName() string  { return l.customerName }
func (l *Lead) CustomerPhone() string { return l.customerPhone }
func (l *Lead) Mode() listing.Mode    { return l.mode }
func (l *Lead) Start() time.Time      { return l.start }
func (l *Lead) End() *time.Time       { return l.end }
func (l *Lead) GuestCount() int       { return l.guestCount }
func (l *Lead) Status() Status        { return l.status }
func (l *Lead) AdminNote() string     { return l.adminNote }
func (l *Lead) CreatedAt() time.Time  { return l.createdAt }
func (l *Lead) UpdatedAt() time.Time  { return l.updatedAt }
