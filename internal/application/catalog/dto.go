package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ============================================================================
// Category DTOs
// ============================================================================

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ============================================================================
// Member DTOs
// ============================================================================

// CreateMemberRequest represents a request to register a guild member
type CreateMemberRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Class string          `json:"class" binding:"required,min=1,max=50"`
	Role  string          `json:"role" binding:"required,min=1,max=50"`
	Level int             `json:"level" binding:"required,min=1"`
	Power decimal.Decimal `json:"power"`
}

// UpdateMemberRequest represents a request to update a member's profile
type UpdateMemberRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Class string          `json:"class" binding:"required,min=1,max=50"`
	Role  string          `json:"role" binding:"required,min=1,max=50"`
	Level int             `json:"level" binding:"required,min=1"`
	Power decimal.Decimal `json:"power"`
}

// MemberResponse represents a member in API responses
type MemberResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Class     string          `json:"class"`
	Role      string          `json:"role"`
	Level     int             `json:"level"`
	Power     decimal.Decimal `json:"power"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToMemberResponse converts a domain Member to MemberResponse
func ToMemberResponse(m *catalog.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Class:     m.Class,
		Role:      m.Role,
		Level:     m.Level,
		Power:     m.Power,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Version:   m.Version,
	}
}

// ============================================================================
// Item DTOs
// ============================================================================

// CreateItemRequest represents a request to create a new item
type CreateItemRequest struct {
	Name       string    `json:"name" binding:"required,min=1,max=100"`
	Rarity     string    `json:"rarity" binding:"required,oneof=common uncommon rare epic legendary"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Tradeable  bool      `json:"tradeable"`
}

// UpdateItemRequest represents a request to update an item
type UpdateItemRequest struct {
	Name       string    `json:"name" binding:"required,min=1,max=100"`
	Rarity     string    `json:"rarity" binding:"required,oneof=common uncommon rare epic legendary"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Tradeable  bool      `json:"tradeable"`
}

// ItemImageURLRequest represents a request for a presigned item image upload URL
type ItemImageURLRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// ItemImageURLResponse carries the presigned upload URL for item artwork
type ItemImageURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Rarity     string    `json:"rarity"`
	CategoryID uuid.UUID `json:"category_id"`
	Tradeable  bool      `json:"tradeable"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:         i.ID,
		Name:       i.Name,
		Rarity:     string(i.Rarity),
		CategoryID: i.CategoryID,
		Tradeable:  i.Tradeable,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
		Version:    i.Version,
	}
}

// ListFilter represents common filter options for catalog list endpoints
type ListFilter struct {
	Search   string `form:"search"`
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
	return filter
}
