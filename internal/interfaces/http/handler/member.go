package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/raffle/backend/internal/application/catalog"
)

// MemberHandler handles guild member API endpoints
type MemberHandler struct {
	BaseHandler
	memberService *catalogapp.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *catalogapp.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Create godoc
// @Summary      Register a guild member
// @Description  Register a new guild member. Member names are unique.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateMemberRequest true "Member registration request"
// @Success      201 {object} dto.Response{data=catalog.MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req catalogapp.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, member)
}

// GetByID godoc
// @Summary      Get member by ID
// @Description  Retrieve a guild member by their ID
// @Tags         members
// @Produce      json
// @Param        id path string true "Member ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /members/{id} [get]
func (h *MemberHandler) GetByID(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	member, err := h.memberService.Get(c.Request.Context(), memberID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// List godoc
// @Summary      List members
// @Description  Retrieve a paginated list of guild members
// @Tags         members
// @Produce      json
// @Param        search query string false "Search by name, class or role"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalog.MemberResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.memberService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a member
// @Description  Update a guild member's profile
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path string true "Member ID" format(uuid)
// @Param        request body catalog.UpdateMemberRequest true "Member update request"
// @Success      200 {object} dto.Response{data=catalog.MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid member ID format")
		return
	}

	var req catalogapp.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), memberID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}
