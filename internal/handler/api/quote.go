package api

import (
	"errors"
	"net/http"

	reqdto "charterdesk/internal/handler/dto/request"
	resdto "charterdesk/internal/handler/dto/response"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuoteHandler struct {
	quoteQueries queries.QuoteQueries
}

func NewQuoteHandler(q queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{quoteQueries: q}
}

// @Summary Quote a charter
// @Description Compute the price breakdown for a charter request without persisting anything
// @Tags listings
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body reqdto.QuoteRequest true "Charter request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings/{id}/quote [post]
func (h *QuoteHandler) Preview(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.quoteQueries.Preview(c.Request.Context(), listingID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		case errors.Is(err, errs.ErrModeUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Charter mode is not available for this listing",
			})
		case errors.Is(err, errs.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid charter date range",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}
