package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	raffleapp "github.com/raffle/backend/internal/application/raffle"
)

// RaffleHandler handles raffle lifecycle API endpoints
type RaffleHandler struct {
	BaseHandler
	raffleService *raffleapp.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService *raffleapp.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		raffleService: raffleService,
	}
}

// Create godoc
// @Summary      Create a new raffle
// @Description  Create a raffle in pending status. Members and items may be attached in the same call.
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        request body raffle.CreateRaffleRequest true "Raffle creation request"
// @Success      201 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles [post]
func (h *RaffleHandler) Create(c *gin.Context) {
	var req raffleapp.CreateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, r)
}

// GetByID godoc
// @Summary      Get raffle by ID
// @Description  Retrieve a raffle with its full roster and stock ledger
// @Tags         raffles
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id} [get]
func (h *RaffleHandler) GetByID(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	r, err := h.raffleService.Get(c.Request.Context(), raffleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// List godoc
// @Summary      List raffles
// @Description  Retrieve a paginated list of raffles without roster or ledger detail
// @Tags         raffles
// @Produce      json
// @Param        search query string false "Search by name or description"
// @Param        status query string false "Status filter" Enums(pending, ongoing, completed)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]raffle.RaffleListResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles [get]
func (h *RaffleHandler) List(c *gin.Context) {
	var filter raffleapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.raffleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a raffle
// @Description  Update the raffle's name, description and date
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.UpdateRaffleRequest true "Raffle update request"
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id} [put]
func (h *RaffleHandler) Update(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.UpdateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.Update(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// Delete godoc
// @Summary      Delete a raffle
// @Description  Delete a raffle. Raffles with recorded distributions cannot be deleted.
// @Tags         raffles
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id} [delete]
func (h *RaffleHandler) Delete(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	if err := h.raffleService.Delete(c.Request.Context(), raffleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ChangeStatus godoc
// @Summary      Change raffle status
// @Description  Advance the raffle lifecycle. Allowed transitions are pending to ongoing and ongoing to completed.
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.ChangeStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/status [patch]
func (h *RaffleHandler) ChangeStatus(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.ChangeStatus(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// AttachMembers godoc
// @Summary      Attach members to a raffle
// @Description  Add members to the raffle roster. Members already on the roster are rejected.
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.AttachMembersRequest true "Members to attach"
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/members [post]
func (h *RaffleHandler) AttachMembers(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.AttachMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.AttachMembers(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// SyncMembers godoc
// @Summary      Replace the raffle roster
// @Description  Replace the full roster with the given member set. Members holding distributions cannot be removed.
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.SyncMembersRequest true "Full member set"
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/members [put]
func (h *RaffleHandler) SyncMembers(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.SyncMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.SyncMembers(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// AttachItems godoc
// @Summary      Attach items to a raffle
// @Description  Stage items on the stock ledger. Items already on the ledger are rejected.
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.AttachItemsRequest true "Items to attach"
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/items [post]
func (h *RaffleHandler) AttachItems(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.AttachItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.AttachItems(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}

// SyncItems godoc
// @Summary      Replace the stock ledger
// @Description  Replace the full stock ledger with the given item set. Items with recorded distributions cannot be removed.
// @Tags         raffles
// @Accept       json
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        request body raffle.SyncItemsRequest true "Full item set"
// @Success      200 {object} dto.Response{data=raffle.RaffleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/items [put]
func (h *RaffleHandler) SyncItems(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	var req raffleapp.SyncItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.raffleService.SyncItems(c.Request.Context(), raffleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, r)
}
