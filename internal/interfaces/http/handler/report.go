package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	raffleapp "github.com/raffle/backend/internal/application/raffle"
)

// ReportHandler handles raffle reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *raffleapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *raffleapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary godoc
// @Summary      Get raffle summary
// @Description  Per-raffle stock and distribution overview
// @Tags         reports
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Success      200 {object} dto.Response{data=raffle.RaffleSummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), raffleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// MemberWinnings godoc
// @Summary      Get a member's winnings
// @Description  Everything one member won in a raffle, resolved to item identity
// @Tags         reports
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        memberId path string true "Member ID" format(uuid)
// @Success      200 {object} dto.Response{data=raffle.MemberWinningsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/members/{memberId}/winnings [get]
func (h *ReportHandler) MemberWinnings(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	winnings, err := h.reportService.MemberWinnings(c.Request.Context(), raffleID, memberID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, winnings)
}

// ItemWinners godoc
// @Summary      Get an item's winners
// @Description  Who won a given item in a raffle, resolved to member identity
// @Tags         reports
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=raffle.ItemWinnersResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/items/{itemId}/winners [get]
func (h *ReportHandler) ItemWinners(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	winners, err := h.reportService.ItemWinners(c.Request.Context(), raffleID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, winners)
}

// Report godoc
// @Summary      Get the full raffle report
// @Description  Winnings grouped by member across the full roster
// @Tags         reports
// @Produce      json
// @Param        id path string true "Raffle ID" format(uuid)
// @Success      200 {object} dto.Response{data=raffle.RaffleReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /raffles/{id}/report [get]
func (h *ReportHandler) Report(c *gin.Context) {
	raffleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid raffle ID format")
		return
	}

	report, err := h.reportService.Report(c.Request.Context(), raffleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
