package api

import (
	"errors"
	"net/http"

	"charterdesk/internal/domain/lead"
	reqdto "charterdesk/internal/handler/dto/request"
	resdto "charterdesk/internal/handler/dto/response"
	"charterdesk/internal/pkg/errs"
	"charterdesk/internal/usecase/commands"
	"charterdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeadHandler struct {
	leadCommands commands.LeadCommands
	leadQueries  queries.LeadQueries
}

func NewLeadHandler(cmd commands.LeadCommands, q queries.LeadQueries) *LeadHandler {
	return &LeadHandler{
		leadCommands: cmd,
		leadQueries:  q,
	}
}

// @Summary Create lead
// @Description Submit a booking request for a listing
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body reqdto.CreateLeadRequest true "Lead request"
// @Success 201 {object} resdto.LeadResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings/{id}/leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	var req reqdto.CreateLeadRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.leadCommands.CreateLead(c.Request.Context(), req.ToParams(listingID))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		case errors.Is(err, errs.ErrNoActiveModes):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Listing has no bookable charter mode",
			})
		case errors.Is(err, errs.ErrModeUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Charter mode is not available for this listing",
			})
		case errors.Is(err, errs.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid charter date range",
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
		return
	}
	c.JSON(http.StatusCreated, resdto.FromLeadView(view))
}

// @Summary List leads
// @Description List leads with optional status/listing filters; totals are recomputed from the current catalog
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Lead status filter"
// @Param listing_id query string false "Listing filter"
// @Param sort query string false "newest | oldest | price_asc | price_desc"
// @Success 200 {array} resdto.LeadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	filter, err := parseLeadFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	views, err := h.leadQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromLeadViews(views))
}

// @Summary Get lead
// @Description Get a lead with its recomputed quote
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} resdto.LeadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lead ID format",
		})
		return
	}

	view, err := h.leadQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lead not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromLeadView(view))
}

// @Summary Update lead status
// @Description Move a lead through its lifecycle and attach an admin note
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body reqdto.UpdateLeadStatusRequest true "Status change"
// @Success 200 {object} resdto.LeadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/leads/{id} [patch]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lead ID format",
		})
		return
	}

	var req reqdto.UpdateLeadStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.leadCommands.UpdateLeadStatus(c.Request.Context(), commands.UpdateLeadStatusParams{
		LeadID: id,
		Status: req.Status,
		Note:   req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lead not found",
			})
		case errors.Is(err, errs.ErrStatusTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Status transition not allowed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromLeadView(view))
}

func parseLeadFilter(c *gin.Context) (queries.LeadFilter, error) {
	var filter queries.LeadFilter

	if raw := c.Query("status"); raw != "" {
		status := lead.Status(raw)
		if !status.IsValid() {
			return filter, errors.New("invalid status filter")
		}
		filter.Status = &status
	}

	if raw := c.Query("listing_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid listing_id filter")
		}
		filter.ListingID = &id
	}

	switch sort := queries.LeadSort(c.DefaultQuery("sort", string(queries.LeadSortNewest))); sort {
	case queries.LeadSortNewest, queries.LeadSortOldest, queries.LeadSortPriceAsc, queries.LeadSortPriceDesc:
		filter.Sort = sort
	default:
		return filter, errors.New("invalid sort")
	}

	return filter, nil
}
