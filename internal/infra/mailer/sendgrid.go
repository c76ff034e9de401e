package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charterdesk/internal/domain/lead"
	"charterdesk/internal/domain/listing"
	"charterdesk/internal/domain/quote"
	"charterdesk/internal/pkg/config"
	"charterdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// LeadEmail is the notification payload queued when a lead is created.
// It snapshots the quote as quoted to the customer at submission time.
type LeadEmail struct {
	LeadID           uuid.UUID  `json:"lead_id"`
	ListingName      string     `json:"listing_name"`
	OwnerName        string     `json:"owner_name"`
	OwnerPhone       string     `json:"owner_phone"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	Mode             string     `json:"mode"`
	UnitLabel        string     `json:"unit_label"`
	Start            time.Time  `json:"start"`
	End              *time.Time `json:"end,omitempty"`
	GuestCount       int        `json:"guest_count"`
	UnitPrice        int64      `json:"unit_price"`
	Quantity         int        `json:"quantity"`
	TotalPrice       int64      `json:"total_price"`
	CommissionRate   int        `json:"commission_rate"`
	CommissionAmount int64      `json:"commission_amount"`
	PayoutAmount     int64      `json:"payout_amount"`
	Currency         string     `json:"currency"`
}

func NewLeadEmail(l *lead.Lead, li *listing.Listing, q quote.Quote) LeadEmail {
	return LeadEmail{
		LeadID:           l.ID(),
		ListingName:      li.Name(),
		OwnerName:        li.OwnerName(),
		OwnerPhone:       li.OwnerPhone(),
		CustomerName:     l.CustomerName(),
		CustomerPhone:    l.CustomerPhone(),
		Mode:             q.Mode.String(),
		UnitLabel:        q.UnitLabel,
		Start:            l.Start(),
		End:              l.End(),
		GuestCount:       l.GuestCount(),
		UnitPrice:        q.UnitPrice,
		Quantity:         q.Quantity,
		TotalPrice:       q.TotalPrice,
		CommissionRate:   q.CommissionRate,
		CommissionAmount: q.CommissionAmount,
		PayoutAmount:     q.PayoutAmount,
		Currency:         li.Currency(),
	}
}

type Mailer interface {
	SendLeadCreated(ctx context.Context, email LeadEmail) error
}

type SendGridMailer struct {
	client *sendgrid.Client
	cfg    config.MailConfig
}

func NewSendGridMailer(cfg config.MailConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridKey),
		cfg:    cfg,
	}
}

func (m *SendGridMailer) SendLeadCreated(_ context.Context, email LeadEmail) error {
	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	to := mail.NewEmail(m.cfg.ToName, m.cfg.ToEmail)
	subject := fmt.Sprintf("New charter lead: %s (%s)", email.ListingName, email.CustomerName)

	plain := leadEmailBody(email)
	html := "<pre>" + plain + "</pre>"

	resp, err := m.client.Send(mail.NewSingleEmail(from, subject, to, plain, html))
	if err != nil {
		return errs.Wrap(err, "failed to send lead email")
	}
	if resp.StatusCode >= 400 {
		return errs.New(fmt.Sprintf("sendgrid rejected lead email: status %d", resp.StatusCode))
	}
	return nil
}

func leadEmailBody(e LeadEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Listing:     %s\n", e.ListingName)
	fmt.Fprintf(&b, "Owner:       %s (%s)\n", e.OwnerName, e.OwnerPhone)
	fmt.Fprintf(&b, "Customer:    %s (%s)\n", e.CustomerName, e.CustomerPhone)
	fmt.Fprintf(&b, "Guests:      %d\n", e.GuestCount)
	fmt.Fprintf(&b, "Charter:     %s\n", e.Mode)
	fmt.Fprintf(&b, "Start:       %s\n", e.Start.Format(time.RFC3339))
	if e.End != nil {
		fmt.Fprintf(&b, "End:         %s\n", e.End.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Price:       %d %s x %d %s(s) = %d %s\n",
		e.UnitPrice, e.Currency, e.Quantity, e.UnitLabel, e.TotalPrice, e.Currency)
	fmt.Fprintf(&b, "Commission:  %d%% = %d %s\n", e.CommissionRate, e.CommissionAmount, e.Currency)
	fmt.Fprintf(&b, "Owner payout: %d %s\n", e.PayoutAmount, e.Currency)
	return b.String()
}

// LogMailer replaces SendGrid in environments without an API key.
type LogMailer struct{}

func (LogMailer) SendLeadCreated(_ context.Context, email LeadEmail) error {
	slog.Info("lead email (no sendgrid key configured)",
		"lead_id", email.LeadID,
		"listing", email.ListingName,
		"total_price", email.TotalPrice,
	)
	return nil
}
