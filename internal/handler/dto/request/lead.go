package request

import (
	"time"

	"charterdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerPhone string     `json:"customer_phone" binding:"required"`
	Mode          string     `json:"mode" binding:"required"`
	Start         time.Time  `json:"start" binding:"required"`
	End           *time.Time `json:"end,omitempty"`
	GuestCount    int        `json:"guest_count,omitempty"`
}

func (r CreateLeadRequest) ToParams(listingID uuid.UUID) commands.CreateLeadParams {
	return commands.CreateLeadParams{
		ListingID:     listingID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Mode:          r.Mode,
		Start:         r.Start,
		End:           r.End,
		GuestCount:    r.GuestCount,
	}
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note,omitempty"`
}
