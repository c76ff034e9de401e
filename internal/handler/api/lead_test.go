//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"charterdesk/internal/handler/api"
	reqdto "charterdesk/internal/handler/dto/request"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/queries"
	"charterdesk/tests/common/httptest"
	"charterdesk/tests/common/testutil"
	commandsmock "charterdesk/tests/mock/commands"
	queriesmock "charterdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LeadHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockLeadCommands
	mockQueries  *queriesmock.MockLeadQueries
	handler      *api.LeadHandler
}

func (s *LeadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockLeadCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockLeadQueries(s.mockCtrl)
	s.handler = api.NewLeadHandler(s.mockCommands, s.mockQueries)

	adminMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("admin_email", "admin@example.com")
		c.Next()
	}

	s.router.POST("/listings/:id/leads", s.handler.Create)
	s.router.GET("/admin/leads", adminMiddleware, s.handler.List)
	s.router.GET("/admin/leads/:id", adminMiddleware, s.handler.Get)
	s.router.PATCH("/admin/leads/:id", adminMiddleware, s.handler.UpdateStatus)
}

func (s *LeadHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLeadHandlerSuite(t *testing.T) {
	suite.Run(t, new(LeadHandlerTestSuite))
}

func sampleLeadView() *queries.LeadView {
	now := time.Now()
	end := now.Add(4 * time.Hour)
	return &queries.LeadView{
		ID:            uuid.New(),
		ListingID:     uuid.New(),
		ListingName:   "Blue Voyage Gulet",
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+90 532 111 2233",
		Mode:          "hourly",
		Start:         now,
		End:           &end,
		GuestCount:    4,
		Status:        "new",
		Quote: queries.QuoteView{
			Mode:             "hourly",
			UnitLabel:        "hour",
			UnitPrice:        1000,
			Quantity:         4,
			TotalPrice:       4000,
			CommissionRate:   15,
			CommissionAmount: 600,
			PayoutAmount:     3400,
			Currency:         "TRY",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func sampleCreateLeadRequest() reqdto.CreateLeadRequest {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	return reqdto.CreateLeadRequest{
		CustomerName:  "Ayşe Yılmaz",
		CustomerPhone: "+90 532 111 2233",
		Mode:          "hourly",
		Start:         start,
		End:           &end,
		GuestCount:    4,
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *LeadHandlerTestSuite) TestCreate() {
	reqBody := sampleCreateLeadRequest()
	returnView := sampleLeadView()
	url := "/listings/" + returnView.ListingID.String() + "/leads"

	s.Run("success: returns 201 with the captured quote", func() {
		s.mockCommands.EXPECT().CreateLead(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID.String(), body["id"])
		quote, ok := body["quote"].(map[string]any)
		s.Require().True(ok)
		s.EqualValues(4000, quote["totalPrice"])
	})

	s.Run("error: 400 on missing required fields", func() {
		for _, field := range []string{"customer_name", "customer_phone", "mode", "start"} {
			s.Run("missing "+field, func() {
				body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 400 for malformed listing id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/listings/xyz/leads", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid listing ID")
	})

	s.Run("error mapping from the command layer", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "unknown listing", err: errs.ErrListingNotFound, expectCode: http.StatusNotFound},
			{name: "no bookable mode", err: errs.ErrNoActiveModes, expectCode: http.StatusUnprocessableEntity},
			{name: "mode not offered", err: errs.ErrModeUnavailable, expectCode: http.StatusUnprocessableEntity},
			{name: "bad date range", err: errs.ErrInvalidRange, expectCode: http.StatusBadRequest},
			{name: "domain validation", err: errs.ErrDomainValidation, expectCode: http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateLead(gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *LeadHandlerTestSuite) TestList() {
	url := "/admin/leads"

	s.Run("success: returns 200 with default sort", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.LeadFilter) ([]*queries.LeadView, error) {
				s.Equal(queries.LeadSortNewest, filter.Sort)
				s.Nil(filter.Status)
				s.Nil(filter.ListingID)
				return []*queries.LeadView{sampleLeadView()}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: forwards status and sort filters", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.LeadFilter) ([]*queries.LeadView, error) {
				s.Require().NotNil(filter.Status)
				s.Equal("contacted", string(*filter.Status))
				s.Equal(queries.LeadSortPriceDesc, filter.Sort)
				return nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=contacted&sort=price_desc", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on bad filters", func() {
		cases := []struct {
			name  string
			query string
		}{
			{name: "unknown status", query: "?status=archived"},
			{name: "malformed listing_id", query: "?listing_id=abc"},
			{name: "unknown sort", query: "?sort=cheapest"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+tc.query, nil, "bearer-token")
				s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *LeadHandlerTestSuite) TestGet() {
	returnView := sampleLeadView()

	s.Run("success: returns 200 with the recomputed quote", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/leads/"+returnView.ID.String(), nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID.String(), body["id"])
	})

	s.Run("error: 404 for unknown lead", func() {
		unknown := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), unknown).
			Return(nil, errs.ErrLeadNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/leads/"+unknown.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Lead not found")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/leads/xyz", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid lead ID")
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *LeadHandlerTestSuite) TestUpdateStatus() {
	returnView := sampleLeadView()
	returnView.Status = "contacted"
	url := "/admin/leads/" + returnView.ID.String()
	reqBody := reqdto.UpdateLeadStatusRequest{Status: "contacted", Note: "called back"}

	s.Run("success: returns 200 with the new status", func() {
		s.mockCommands.EXPECT().UpdateLeadStatus(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("contacted", body["status"])
		s.Equal("called back", body["adminNote"])
	})

	s.Run("error: 400 on missing status", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("status", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 on an illegal transition", func() {
		s.mockCommands.EXPECT().UpdateLeadStatus(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrStatusTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Status transition not allowed")
	})

	s.Run("error: 404 for unknown lead", func() {
		s.mockCommands.EXPECT().UpdateLeadStatus(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrLeadNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Lead not found")
	})
}
