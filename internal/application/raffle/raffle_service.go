package raffle

import (
	"context"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
)

// RaffleService handles raffle lifecycle, roster, and stock ledger operations
type RaffleService struct {
	txScope        TransactionScope
	raffleRepo     raffle.RaffleRepository
	memberRepo     catalog.MemberRepository
	itemRepo       catalog.ItemRepository
	eventPublisher shared.EventPublisher
}

// NewRaffleService creates a new RaffleService
func NewRaffleService(
	txScope TransactionScope,
	raffleRepo raffle.RaffleRepository,
	memberRepo catalog.MemberRepository,
	itemRepo catalog.ItemRepository,
) *RaffleService {
	return &RaffleService{
		txScope:    txScope,
		raffleRepo: raffleRepo,
		memberRepo: memberRepo,
		itemRepo:   itemRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RaffleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new raffle, optionally attaching members and items
func (s *RaffleService) Create(ctx context.Context, req CreateRaffleRequest) (*RaffleResponse, error) {
	exists, err := s.raffleRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Raffle with this name already exists")
	}

	if err := s.ensureMembersExist(ctx, req.MemberIDs); err != nil {
		return nil, err
	}
	attachments, err := s.toAttachments(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	r, err := raffle.NewRaffle(req.Name, req.Description, req.Date)
	if err != nil {
		return nil, err
	}
	if len(req.MemberIDs) > 0 {
		if err := r.AttachMembers(req.MemberIDs); err != nil {
			return nil, err
		}
	}
	if len(attachments) > 0 {
		if err := r.AttachItems(attachments); err != nil {
			return nil, err
		}
	}

	if err := s.raffleRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

// Get returns a raffle with its roster and stock ledger
func (s *RaffleService) Get(ctx context.Context, id uuid.UUID) (*RaffleResponse, error) {
	r, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRaffleResponse(r)
	return &resp, nil
}

// List returns raffles matching the filter
func (s *RaffleService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[RaffleListResponse], error) {
	f := filter.ToSharedFilter()

	raffles, err := s.raffleRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.raffleRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]RaffleListResponse, 0, len(raffles))
	for i := range raffles {
		items = append(items, ToRaffleListResponse(&raffles[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates the raffle's descriptive fields
func (s *RaffleService) Update(ctx context.Context, id uuid.UUID, req UpdateRaffleRequest) (*RaffleResponse, error) {
	r, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Name != req.Name {
		exists, err := s.raffleRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Raffle with this name already exists")
		}
	}

	if err := r.Update(req.Name, req.Description, req.Date); err != nil {
		return nil, err
	}

	if err := s.raffleRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

// Delete deletes a raffle. Roster, ledger, and distributions cascade.
func (s *RaffleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.raffleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.raffleRepo.Delete(ctx, id)
}

// ChangeStatus advances the raffle lifecycle
func (s *RaffleService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*RaffleResponse, error) {
	r, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.ChangeStatus(raffle.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.raffleRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

// AttachMembers adds members to the roster
func (s *RaffleService) AttachMembers(ctx context.Context, id uuid.UUID, req AttachMembersRequest) (*RaffleResponse, error) {
	if err := s.ensureMembersExist(ctx, req.MemberIDs); err != nil {
		return nil, err
	}

	r, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.AttachMembers(req.MemberIDs); err != nil {
		return nil, err
	}

	if err := s.raffleRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

// AttachItems stages items on the stock ledger
func (s *RaffleService) AttachItems(ctx context.Context, id uuid.UUID, req AttachItemsRequest) (*RaffleResponse, error) {
	attachments, err := s.toAttachments(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	r, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.AttachItems(attachments); err != nil {
		return nil, err
	}

	if err := s.raffleRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

// SyncMembers replaces the full roster. The sync is blocked when it would
// remove a member who already holds distributions in this raffle.
func (s *RaffleService) SyncMembers(ctx context.Context, id uuid.UUID, req SyncMembersRequest) (*RaffleResponse, error) {
	if err := s.ensureMembersExist(ctx, req.MemberIDs); err != nil {
		return nil, err
	}

	var r *raffle.Raffle
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		r, err = repos.RaffleRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		removed := r.RemovedMembers(req.MemberIDs)
		if len(removed) > 0 {
			has, err := repos.DistributionRepo().ExistsForMembers(ctx, id, removed)
			if err != nil {
				return err
			}
			if has {
				return shared.NewDomainError("HAS_DISTRIBUTIONS",
					"Cannot remove members who already have distributions in this raffle")
			}
		}

		if err := r.SyncMembers(req.MemberIDs); err != nil {
			return err
		}
		return repos.RaffleRepo().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

// SyncItems replaces the full stock ledger. Since every entry's quantities
// are reset, the sync is blocked as soon as the raffle has any distribution
// records; replacing the basis of immutable allocation records would orphan
// them.
func (s *RaffleService) SyncItems(ctx context.Context, id uuid.UUID, req SyncItemsRequest) (*RaffleResponse, error) {
	attachments, err := s.toAttachments(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var r *raffle.Raffle
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		r, err = repos.RaffleRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		has, err := repos.DistributionRepo().ExistsForRaffle(ctx, id)
		if err != nil {
			return err
		}
		if has {
			return shared.NewDomainError("HAS_DISTRIBUTIONS",
				"Cannot replace the stock ledger of a raffle that already has distributions")
		}

		if err := r.SyncItems(attachments); err != nil {
			return err
		}
		return repos.RaffleRepo().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	resp := ToRaffleResponse(r)
	return &resp, nil
}

func (s *RaffleService) ensureMembersExist(ctx context.Context, memberIDs []uuid.UUID) error {
	if len(memberIDs) == 0 {
		return nil
	}
	members, err := s.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return err
	}
	if len(members) != len(uniqueIDs(memberIDs)) {
		return shared.NewDomainError("INVALID_MEMBER", "One or more members do not exist")
	}
	return nil
}

func (s *RaffleService) toAttachments(ctx context.Context, items []StockAttachmentRequest) ([]raffle.StockAttachment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ItemID)
	}
	found, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(uniqueIDs(ids)) {
		return nil, shared.NewDomainError("INVALID_ITEM", "One or more items do not exist")
	}

	attachments := make([]raffle.StockAttachment, 0, len(items))
	for _, it := range items {
		attachments = append(attachments, raffle.StockAttachment{
			ItemID:          it.ItemID,
			InitialQuantity: it.InitialQuantity,
		})
	}
	return attachments, nil
}

func (s *RaffleService) publishEvents(ctx context.Context, r *raffle.Raffle) {
	if s.eventPublisher == nil || r == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, r.GetDomainEvents()...)
	r.ClearDomainEvents()
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
