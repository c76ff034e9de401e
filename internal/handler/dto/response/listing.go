package response

import (
	"log/slog"
	"time"

	"charterdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RateResponse struct {
	Mode        string `json:"mode"`
	UnitLabel   string `json:"unitLabel"`
	Active      bool   `json:"active"`
	UnitPrice   int64  `json:"unitPrice"`
	MinDuration int    `json:"minDuration"`
}

type ListingResponse struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Currency       string         `json:"currency"`
	OwnerName      string         `json:"ownerName,omitempty"`
	OwnerPhone     string         `json:"ownerPhone,omitempty"`
	CommissionRate int            `json:"commissionRate"`
	Rates          []RateResponse `json:"rates"`
	BookableModes  []string       `json:"bookableModes"`
	DefaultMode    string         `json:"defaultMode,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	var resp ListingResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Error("failed to map listing view", "error", err)
	}
	return &resp
}

func FromListingViews(views []*queries.ListingView) []*ListingResponse {
	resps := make([]*ListingResponse, len(views))
	for i, v := range views {
		resps[i] = FromListingView(v)
	}
	return resps
}
