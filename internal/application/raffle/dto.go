package raffle

import (
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
)

// ============================================================================
// Request DTOs
// ============================================================================

// StockAttachmentRequest stages one item on the stock ledger
type StockAttachmentRequest struct {
	ItemID          uuid.UUID `json:"item_id" binding:"required"`
	InitialQuantity int       `json:"initial_quantity" binding:"required,min=1"`
}

// CreateRaffleRequest represents a request to create a new raffle.
// Members and items may be attached in the same call.
type CreateRaffleRequest struct {
	Name        string                   `json:"name" binding:"required,min=1,max=150"`
	Description string                   `json:"description" binding:"max=2000"`
	Date        time.Time                `json:"date" binding:"required"`
	MemberIDs   []uuid.UUID              `json:"member_ids"`
	Items       []StockAttachmentRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateRaffleRequest updates the raffle's descriptive fields
type UpdateRaffleRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=150"`
	Description string    `json:"description" binding:"max=2000"`
	Date        time.Time `json:"date" binding:"required"`
}

// ChangeStatusRequest advances the raffle lifecycle
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending ongoing completed"`
}

// AttachMembersRequest adds members to the roster
type AttachMembersRequest struct {
	MemberIDs []uuid.UUID `json:"member_ids" binding:"required,min=1"`
}

// SyncMembersRequest replaces the full roster
type SyncMembersRequest struct {
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// AttachItemsRequest stages items on the stock ledger
type AttachItemsRequest struct {
	Items []StockAttachmentRequest `json:"items" binding:"required,min=1,dive"`
}

// SyncItemsRequest replaces the full stock ledger
type SyncItemsRequest struct {
	Items []StockAttachmentRequest `json:"items" binding:"omitempty,dive"`
}

// AutoDistributionRequest asks the engine to pick an item for the member
type AutoDistributionRequest struct {
	MemberID uuid.UUID `json:"member_id" binding:"required"`
}

// ManualDistributionEntry is one explicit item/quantity assignment
type ManualDistributionEntry struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// ManualDistributionRequest assigns items to one member, all-or-nothing
type ManualDistributionRequest struct {
	MemberID uuid.UUID                 `json:"member_id" binding:"required"`
	Entries  []ManualDistributionEntry `json:"entries" binding:"required,min=1,dive"`
}

// ListFilter represents filter options for raffle and distribution lists.
// The ID fields only apply to distribution queries.
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending ongoing completed"`
	RaffleID string `form:"raffle_id" binding:"omitempty,uuid"`
	MemberID string `form:"member_id" binding:"omitempty,uuid"`
	ItemID   string `form:"item_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSharedFilter converts the list filter to the repository filter form
func (f ListFilter) ToSharedFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.RaffleID != "" {
		filter.Filters["raffle_id"] = f.RaffleID
	}
	if f.MemberID != "" {
		filter.Filters["member_id"] = f.MemberID
	}
	if f.ItemID != "" {
		filter.Filters["item_id"] = f.ItemID
	}
	return filter
}

// ============================================================================
// Response DTOs
// ============================================================================

// RosterEntryResponse represents one roster membership
type RosterEntryResponse struct {
	MemberID uuid.UUID `json:"member_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// StockEntryResponse represents one stock ledger entry
type StockEntryResponse struct {
	ItemID            uuid.UUID `json:"item_id"`
	Position          int64     `json:"position"`
	InitialQuantity   int       `json:"initial_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
}

// RaffleResponse represents a raffle in API responses
type RaffleResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
	Status      string                `json:"status"`
	Roster      []RosterEntryResponse `json:"roster"`
	Stock       []StockEntryResponse  `json:"stock"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Version     int                   `json:"version"`
}

// RaffleListResponse represents a raffle list row (roster/ledger not loaded)
type RaffleListResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// DistributionResponse represents an allocation record in API responses
type DistributionResponse struct {
	ID        uuid.UUID `json:"id"`
	RaffleID  uuid.UUID `json:"raffle_id"`
	MemberID  uuid.UUID `json:"member_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ToRaffleResponse converts a domain Raffle to RaffleResponse
func ToRaffleResponse(r *raffle.Raffle) RaffleResponse {
	roster := make([]RosterEntryResponse, 0, len(r.Roster))
	for i := range r.Roster {
		roster = append(roster, RosterEntryResponse{
			MemberID: r.Roster[i].MemberID,
			JoinedAt: r.Roster[i].CreatedAt,
		})
	}
	stock := make([]StockEntryResponse, 0, len(r.Stock))
	for i := range r.Stock {
		stock = append(stock, StockEntryResponse{
			ItemID:            r.Stock[i].ItemID,
			Position:          r.Stock[i].Position,
			InitialQuantity:   r.Stock[i].InitialQuantity,
			RemainingQuantity: r.Stock[i].RemainingQuantity,
		})
	}
	return RaffleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Status:      string(r.Status),
		Roster:      roster,
		Stock:       stock,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}

// ToRaffleListResponse converts a domain Raffle to RaffleListResponse
func ToRaffleListResponse(r *raffle.Raffle) RaffleListResponse {
	return RaffleListResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

// ToDistributionResponse converts a domain Distribution to DistributionResponse
func ToDistributionResponse(d *raffle.Distribution) DistributionResponse {
	return DistributionResponse{
		ID:        d.ID,
		RaffleID:  d.RaffleID,
		MemberID:  d.MemberID,
		ItemID:    d.ItemID,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
	}
}

// ============================================================================
// Reporting DTOs
// ============================================================================

// StockSummaryRow is the per-item stock view in the raffle summary
type StockSummaryRow struct {
	ItemID            uuid.UUID `json:"item_id"`
	ItemName          string    `json:"item_name"`
	Rarity            string    `json:"rarity"`
	InitialQuantity   int       `json:"initial_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Distributed       int       `json:"distributed"`
}

// RaffleSummaryResponse is the per-raffle reporting view
type RaffleSummaryResponse struct {
	RaffleID      uuid.UUID         `json:"raffle_id"`
	Name          string            `json:"name"`
	Status        string            `json:"status"`
	RosterSize    int               `json:"roster_size"`
	ItemCount     int               `json:"item_count"`
	Stock         []StockSummaryRow `json:"stock"`
	Distributions int               `json:"distributions"`
}

// WinningRow is one allocation resolved to item identity
type WinningRow struct {
	DistributionID uuid.UUID `json:"distribution_id"`
	ItemID         uuid.UUID `json:"item_id"`
	ItemName       string    `json:"item_name"`
	Rarity         string    `json:"rarity"`
	Quantity       int       `json:"quantity"`
	WonAt          time.Time `json:"won_at"`
}

// MemberWinningsResponse lists everything one member won in a raffle
type MemberWinningsResponse struct {
	RaffleID   uuid.UUID    `json:"raffle_id"`
	MemberID   uuid.UUID    `json:"member_id"`
	MemberName string       `json:"member_name"`
	Winnings   []WinningRow `json:"winnings"`
	TotalUnits int          `json:"total_units"`
}

// WinnerRow is one allocation resolved to member identity
type WinnerRow struct {
	DistributionID uuid.UUID `json:"distribution_id"`
	MemberID       uuid.UUID `json:"member_id"`
	MemberName     string    `json:"member_name"`
	Quantity       int       `json:"quantity"`
	WonAt          time.Time `json:"won_at"`
}

// ItemWinnersResponse lists who won a given item in a raffle
type ItemWinnersResponse struct {
	RaffleID   uuid.UUID   `json:"raffle_id"`
	ItemID     uuid.UUID   `json:"item_id"`
	ItemName   string      `json:"item_name"`
	Winners    []WinnerRow `json:"winners"`
	TotalUnits int         `json:"total_units"`
}

// RaffleReportResponse groups winnings across the full roster
type RaffleReportResponse struct {
	RaffleID uuid.UUID                `json:"raffle_id"`
	Name     string                   `json:"name"`
	Members  []MemberWinningsResponse `json:"members"`
}
