package request

import (
	"charterdesk/internal/usecase/commands"
)

type RateRequest struct {
	Active      bool  `json:"active"`
	UnitPrice   int64 `json:"unit_price"`
	MinDuration int   `json:"min_duration,omitempty"`
}

// SaveListingRequest is shared by create and update; the admin form
// always submits the complete rate card.
type SaveListingRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Currency       string                 `json:"currency,omitempty"`
	OwnerName      string                 `json:"owner_name,omitempty"`
	OwnerPhone     string                 `json:"owner_phone,omitempty"`
	CommissionRate int                    `json:"commission_rate" binding:"min=0,max=100"`
	Rates          map[string]RateRequest `json:"rates"`
}

func (r SaveListingRequest) ToParams() commands.SaveListingParams {
	rates := make(map[string]commands.RateParams, len(r.Rates))
	for mode, rate := range r.Rates {
		rates[mode] = commands.RateParams{
			Active:      rate.Active,
			UnitPrice:   rate.UnitPrice,
			MinDuration: rate.MinDuration,
		}
	}

	return commands.SaveListingParams{
		Name:           r.Name,
		Currency:       r.Currency,
		OwnerName:      r.OwnerName,
		OwnerPhone:     r.OwnerPhone,
		CommissionRate: r.CommissionRate,
		Rates:          rates,
	}
}
