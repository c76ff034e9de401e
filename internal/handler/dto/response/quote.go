package response

import (
	"log/slog"

	"charterdesk/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type QuoteResponse struct {
	Mode             string `json:"mode"`
	UnitLabel        string `json:"unitLabel"`
	UnitPrice        int64  `json:"unitPrice"`
	Quantity         int    `json:"quantity"`
	TotalPrice       int64  `json:"totalPrice"`
	CommissionRate   int    `json:"commissionRate"`
	CommissionAmount int64  `json:"commissionAmount"`
	PayoutAmount     int64  `json:"payoutAmount"`
	Currency         string `json:"currency"`
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	var resp QuoteResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Error("failed to map quote view", "error", err)
	}
	return &resp
}
