package response

import (
	"log/slog"
	"time"

	"charterdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LeadResponse struct {
	ID            uuid.UUID     `json:"id"`
	ListingID     uuid.UUID     `json:"listingId"`
	ListingName   string        `json:"listingName"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	Mode          string        `json:"mode"`
	Start         time.Time     `json:"start"`
	End           *time.Time    `json:"end,omitempty"`
	GuestCount    int           `json:"guestCount"`
	Status        string        `json:"status"`
	AdminNote     string        `json:"adminNote,omitempty"`
	Quote         QuoteResponse `json:"quote"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func FromLeadView(v *queries.LeadView) *LeadResponse {
	var resp LeadResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Error("failed to map lead view", "error", err)
	}
	return &resp
}

func FromLeadViews(views []*queries.LeadView) []*LeadResponse {
	resps := make([]*LeadResponse, len(views))
	for i, v := range views {
		resps[i] = FromLeadView(v)
	}
	return resps
}
