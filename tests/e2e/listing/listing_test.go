//go:build e2e

package listing_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"charterdesk/internal/handler/dto/request"
	"charterdesk/internal/handler/dto/response"
	"charterdesk/tests/common/authtest"
	"charterdesk/tests/common/builder"
	"charterdesk/tests/common/dbtest"
	"charterdesk/tests/common/httptest"
	"charterdesk/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	listingsURL      = "/api/listings"
	adminListingsURL = "/api/admin/listings"
	quoteURL         = "/api/listings/%s/quote"
)

type ListingSuite struct {
	e2e.SharedSuite
}

func TestListingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ListingSuite))
}

func saveListingRequest() request.SaveListingRequest {
	return request.SaveListingRequest{
		Name:           "Blue Voyage Gulet",
		Currency:       "TRY",
		OwnerName:      "Captain Kemal",
		OwnerPhone:     "+90 555 000 0000",
		CommissionRate: 15,
		Rates: map[string]request.RateRequest{
			"hourly": {Active: true, UnitPrice: 1000, MinDuration: 2},
			"daily":  {Active: true, UnitPrice: 8000},
			"stay":   {Active: true, UnitPrice: 5000, MinDuration: 3},
		},
	}
}

// =============================================================================
// TestListingAdministration - catalog CRUD through the back office
// =============================================================================

func (s *ListingSuite) TestListingAdministration() {
	s.Run("Normal case: admin creates a listing and it appears publicly", func() {
		t := s.T()
		token := authtest.LoginAdmin(t, s.Router, e2e.TestAdminEmail, e2e.TestAdminPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminListingsURL, saveListingRequest(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ListingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEqual(t, uuid.Nil, created.ID)
		require.Equal(t, "Blue Voyage Gulet", created.Name)
		require.Len(t, created.Rates, 3)
		require.ElementsMatch(t, []string{"daily", "hourly", "stay"}, created.BookableModes)

		pw := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+created.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, pw.Code)

		var fetched response.ListingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, pw.Body, &fetched))
		require.Equal(t, "daily", fetched.DefaultMode)

		diff := cmp.Diff(created, fetched,
			cmpopts.IgnoreFields(response.ListingResponse{}, "CreatedAt", "UpdatedAt"))
		require.Empty(t, diff, "public view should match the created listing")
	})

	s.Run("Normal case: ?type= preselects a bookable mode", func() {
		t := s.T()
		l := builder.NewListingBuilder().BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+l.ID().String()+"?type=stay", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var fetched response.ListingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		require.Equal(t, "stay", fetched.DefaultMode)
	})

	s.Run("Normal case: updates replace the rate card and bust the cache", func() {
		t := s.T()
		token := authtest.LoginAdmin(t, s.Router, e2e.TestAdminEmail, e2e.TestAdminPassword)

		l := builder.NewListingBuilder().BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		// Warm the cache with the original price.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+l.ID().String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		update := saveListingRequest()
		update.Name = "Renamed Gulet"
		update.Rates["hourly"] = request.RateRequest{Active: true, UnitPrice: 2500, MinDuration: 2}

		uw := httptest.PerformRequest(t, s.Router, http.MethodPut, adminListingsURL+"/"+l.ID().String(), update, token)
		require.Equal(t, http.StatusOK, uw.Code, uw.Body.String())

		fw := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+l.ID().String(), nil, "")
		require.Equal(t, http.StatusOK, fw.Code)

		var fetched response.ListingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, fw.Body, &fetched))
		require.Equal(t, "Renamed Gulet", fetched.Name)
		for _, rate := range fetched.Rates {
			if rate.Mode == "hourly" {
				require.Equal(t, int64(2500), rate.UnitPrice)
			}
		}
	})

	s.Run("Normal case: the public index lists every listing", func() {
		t := s.T()
		dbtest.InsertListing(t, s.DB, builder.NewListingBuilder().BuildReconstructed())
		dbtest.InsertListing(t, s.DB, builder.NewListingBuilder().BuildReconstructed())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var listings []response.ListingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listings))
		require.Len(t, listings, 2)
	})

	s.Run("Error case: creation without a token is rejected", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminListingsURL, saveListingRequest(), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: unknown rate mode is rejected", func() {
		t := s.T()
		token := authtest.LoginAdmin(t, s.Router, e2e.TestAdminEmail, e2e.TestAdminPassword)

		bad := saveListingRequest()
		bad.Rates["weekend"] = request.RateRequest{Active: true, UnitPrice: 100}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminListingsURL, bad, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Domain validation failed")
	})

	s.Run("Error case: updating an unknown listing returns 404", func() {
		t := s.T()
		token := authtest.LoginAdmin(t, s.Router, e2e.TestAdminEmail, e2e.TestAdminPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, adminListingsURL+"/"+uuid.NewString(), saveListingRequest(), token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Listing not found")
	})
}

// =============================================================================
// TestQuotePreview - the live price breakdown endpoint
// =============================================================================

func (s *ListingSuite) TestQuotePreview() {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	s.Run("Normal case: hourly quote returns the full breakdown", func() {
		t := s.T()
		l := builder.NewListingBuilder().BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		end := start.Add(4 * time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(quoteURL, l.ID()),
			request.QuoteRequest{Mode: "hourly", Start: start, End: &end}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote response.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.Equal(t, 4, quote.Quantity)
		require.Equal(t, int64(4000), quote.TotalPrice)
		require.Equal(t, int64(600), quote.CommissionAmount)
		require.Equal(t, int64(3400), quote.PayoutAmount)
		require.Equal(t, "TRY", quote.Currency)
	})

	s.Run("Normal case: a stay below the minimum bills the minimum nights", func() {
		t := s.T()
		l := builder.NewListingBuilder().BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		checkout := start.Add(24 * time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(quoteURL, l.ID()),
			request.QuoteRequest{Mode: "stay", Start: start, End: &checkout}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote response.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.Equal(t, 3, quote.Quantity)
		require.Equal(t, int64(15000), quote.TotalPrice)
	})

	s.Run("Normal case: daily quotes bill exactly one day", func() {
		t := s.T()
		l := builder.NewListingBuilder().BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(quoteURL, l.ID()),
			request.QuoteRequest{Mode: "daily", Start: start}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote response.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.Equal(t, 1, quote.Quantity)
		require.Equal(t, int64(8000), quote.TotalPrice)
	})

	s.Run("Error case: unknown listing returns 404", func() {
		t := s.T()
		end := start.Add(2 * time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(quoteURL, uuid.New()),
			request.QuoteRequest{Mode: "hourly", Start: start, End: &end}, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Listing not found")
	})

	s.Run("Error case: inactive mode returns 422", func() {
		t := s.T()
		l := builder.NewListingBuilder().
			WithOnlyModes().
			BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		end := start.Add(2 * time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(quoteURL, l.ID()),
			request.QuoteRequest{Mode: "hourly", Start: start, End: &end}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not available")
	})

	s.Run("Error case: inverted range returns 400", func() {
		t := s.T()
		l := builder.NewListingBuilder().BuildReconstructed()
		dbtest.InsertListing(t, s.DB, l)

		end := start.Add(-time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(quoteURL, l.ID()),
			request.QuoteRequest{Mode: "hourly", Start: start, End: &end}, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid charter date range")
	})
}
