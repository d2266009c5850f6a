package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/shared"
)

// ObjectStorageService abstracts the S3-compatible object store used for
// item artwork. URLs are presigned; clients upload and download directly.
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

const (
	// DefaultUploadURLExpiry is how long a presigned upload URL stays valid
	DefaultUploadURLExpiry = 15 * time.Minute
	// DefaultDownloadURLExpiry is how long a presigned download URL stays valid
	DefaultDownloadURLExpiry = time.Hour
)

// ItemService handles item business operations
type ItemService struct {
	itemRepo       catalog.ItemRepository
	categoryRepo   catalog.CategoryRepository
	storage        ObjectStorageService
	eventPublisher shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, categoryRepo catalog.CategoryRepository) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// SetObjectStorage sets the object storage used for item artwork
func (s *ItemService) SetObjectStorage(storage ObjectStorageService) {
	s.storage = storage
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Item category not found")
		}
		return nil, err
	}

	rarity := catalog.Rarity(req.Rarity)
	exists, err := s.itemRepo.ExistsByIdentity(ctx, req.Name, rarity, req.CategoryID, req.Tradeable)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			"Item with this name, rarity, category and tradeable flag already exists")
	}

	item, err := catalog.NewItem(req.Name, rarity, req.CategoryID, req.Tradeable)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	resp := s.toResponse(ctx, item)
	return &resp, nil
}

// Get returns an item by ID
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, item)
	return &resp, nil
}

// List returns items matching the filter
func (s *ItemService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[ItemResponse], error) {
	f := filter.ToSharedFilter()

	items, err := s.itemRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, s.toResponse(ctx, &items[i]))
	}

	result := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates an item's attributes
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Item category not found")
		}
		return nil, err
	}

	if err := item.Update(req.Name, catalog.Rarity(req.Rarity), req.CategoryID, req.Tradeable); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	resp := s.toResponse(ctx, item)
	return &resp, nil
}

// GenerateImageUploadURL issues a presigned upload URL for item artwork and
// records the storage key on the item.
func (s *ItemService) GenerateImageUploadURL(ctx context.Context, id uuid.UUID, req ItemImageURLRequest) (*ItemImageURLResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Object storage is not configured")
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("items/%s/%s%s", item.ID, uuid.NewString(), path.Ext(req.FileName))
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, DefaultUploadURLExpiry)
	if err != nil {
		return nil, err
	}

	item.SetImageKey(storageKey)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	return &ItemImageURLResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *ItemService) toResponse(ctx context.Context, item *catalog.Item) ItemResponse {
	resp := ToItemResponse(item)
	if s.storage != nil && item.ImageKey != "" {
		if url, _, err := s.storage.GenerateDownloadURL(ctx, item.ImageKey, DefaultDownloadURLExpiry); err == nil {
			resp.ImageURL = url
		}
	}
	return resp
}

func (s *ItemService) publishEvents(ctx context.Context, item *catalog.Item) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, item.GetDomainEvents()...)
	item.ClearDomainEvents()
}
