package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	raffleapp "github.com/raffle/backend/internal/application/raffle"
)

// DistributionHandler handles stock allocation API endpoints
type DistributionHandler struct {
	BaseHandler
	distributionService *raffleapp.DistributionService
}

// NewDistributionHandler creates a new DistributionHandler
func NewDistributionHandler(distributionService *raffleapp.DistributionService) *DistributionHandler {
	return &DistributionHandler{
		distributionService: distributionService,
	}
}

// DistributeAuto godoc
// @Summary      Auto-distribute one unit
// @Description  Hand the member one unit of the first stock ledger entry, in attachment order, that still has stock remaining.
// @Tags         distributions
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.AutoDistributionRequest true "Target member"
// @Success      201 {object} dto.Response{data=raffle.DistributionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/distributions/auto [post]
func (h *DistributionHandler) DistributeAuto(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.AutoDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	d, err := h.distributionService.DistributeAuto(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, d)
}

// DistributeManual godoc
// @Summary      Manually distribute items
// @Description  Assign explicit item quantities to one member. The batch commits all-or-nothing.
// @Tags         distributions
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.ManualDistributionRequest true "Allocation entries"
// @Success      201 {object} dto.Response{data=[]raffle.DistributionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/distributions [post]
func (h *DistributionHandler) DistributeManual(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.ManualDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	distributions, err := h.distributionService.DistributeManual(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, distributions)
}

// GetByID godoc
// @Summary      Get distribution by ID
// @Description  Retrieve a single allocation record
// @Tags         distributions
// @Produce      json
// @Param        id path string true "Distribution ID" format(uuid)
// @Success      200 {object} dto.Response{data=raffle.DistributionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /distributions/{id} [get]
func (h *DistributionHandler) GetByID(c *gin.Context) {
	distributionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid distribution ID format")
		return
	}

	d, err := h.distributionService.Get(c.Request.Context(), distributionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// List godoc
// @Summary      List distributions
// @Description  Retrieve a paginated list of allocation records, optionally filtered by raffle, member or item
// @Tags         distributions
// @Produce      json
// @Param        raffle_id query string false "Raffle ID filter" format(uuid)
// @Param        member_id query string false "Member ID filter" format(uuid)
// @Param        item_id query string false "Item ID filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]raffle.DistributionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /distributions [get]
func (h *DistributionHandler) List(c *gin.Context) {
	var filter raffleapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.distributionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByRaffle godoc
// @Summary      List distributions of a raffle
// @Description  Retrieve a paginated list of allocation records for one raffle
// @Tags         distributions
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        member_id query string false "Member ID filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]raffle.DistributionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/distributions [get]
func (h *DistributionHandler) ListByRaffle(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var filter raffleapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.RaffleID = raffleID.String()

	result, err := h.distributionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
