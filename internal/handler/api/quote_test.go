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
	queriesmock "charterdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuoteHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockQuoteQueries
	handler     *api.QuoteHandler
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockQuoteQueries(s.mockCtrl)
	s.handler = api.NewQuoteHandler(s.mockQueries)

	s.router.POST("/listings/:id/quote", s.handler.Preview)
}

func (s *QuoteHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) TestPreview() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/quote"

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	reqBody := reqdto.QuoteRequest{Mode: "hourly", Start: start, End: &end}

	returnView := &queries.QuoteView{
		Mode:             "hourly",
		UnitLabel:        "hour",
		UnitPrice:        1000,
		Quantity:         4,
		TotalPrice:       4000,
		CommissionRate:   15,
		CommissionAmount: 600,
		PayoutAmount:     3400,
		Currency:         "TRY",
	}

	s.Run("success: returns 200 with the price breakdown", func() {
		s.mockQueries.EXPECT().Preview(gomock.Any(), listingID, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.EqualValues(4000, body["totalPrice"])
		s.EqualValues(600, body["commissionAmount"])
		s.EqualValues(3400, body["payoutAmount"])
	})

	s.Run("error: 400 on missing required fields", func() {
		for _, field := range []string{"mode", "start"} {
			s.Run("missing "+field, func() {
				body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 400 for malformed listing id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/listings/xyz/quote", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid listing ID")
	})

	s.Run("error mapping from the query layer", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "unknown listing", err: errs.ErrListingNotFound, expectCode: http.StatusNotFound},
			{name: "mode not offered", err: errs.ErrModeUnavailable, expectCode: http.StatusUnprocessableEntity},
			{name: "bad date range", err: errs.ErrInvalidRange, expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().Preview(gomock.Any(), listingID, gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})
}
