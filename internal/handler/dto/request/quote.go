package request

import (
	"time"

	"charterdesk/internal/usecase/queries"
)

// QuoteRequest is the live price preview the booking form sends while
// the customer adjusts dates.
type QuoteRequest struct {
	Mode  string     `json:"mode" binding:"required"`
	Start time.Time  `json:"start" binding:"required"`
	End   *time.Time `json:"end,omitempty"`
}

func (r QuoteRequest) ToParams() queries.PreviewParams {
	return queries.PreviewParams{
		Mode:  r.Mode,
		Start: r.Start,
		End:   r.End,
	}
}
