package api

import (
	"errors"
	"net/http"

	reqdto "charterdesk/internal/handler/dto/request"
	resdto "charterdesk/internal/handler/dto/response"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/commands"
	"charterdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	listingQueries  queries.ListingQueries
	listingCommands commands.ListingCommands
}

func NewListingHandler(q queries.ListingQueries, cmd commands.ListingCommands) *ListingHandler {
	return &ListingHandler{
		listingQueries:  q,
		listingCommands: cmd,
	}
}

// @Summary List listings
// @Description List the charter catalog
// @Tags listings
// @Produce json
// @Success 200 {array} resdto.ListingResponse
// @Router /listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	views, err := h.listingQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}

// @Summary Get listing
// @Description Get a listing with its bookable modes; ?type= preselects a charter mode
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param type query string false "Requested charter mode"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), id, c.Query("type"))
	if err != nil {
		if errors.Is(err, errs.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Create listing
// @Description Create a listing with its rate card
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SaveListingRequest true "Listing"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	var req reqdto.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.listingCommands.CreateListing(c.Request.Context(), req.ToParams())
	if err != nil {
		h.writeListingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromListingView(view))
}

// @Summary Update listing
// @Description Replace a listing's details and rate card
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.SaveListingRequest true "Listing"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	var req reqdto.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.listingCommands.UpdateListing(c.Request.Context(), id, req.ToParams())
	if err != nil {
		h.writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

func (h *ListingHandler) writeListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Listing not found",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
