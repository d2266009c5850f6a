package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/shared"
)

// MemberService handles guild member business operations
type MemberService struct {
	memberRepo     catalog.MemberRepository
	eventPublisher shared.EventPublisher
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo catalog.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MemberService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new guild member
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*MemberResponse, error) {
	exists, err := s.memberRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Member with this name already exists")
	}

	member, err := catalog.NewMember(req.Name, req.Class, req.Role, req.Level, req.Power)
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, member)

	resp := ToMemberResponse(member)
	return &resp, nil
}

// Get returns a member by ID
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMemberResponse(member)
	return &resp, nil
}

// List returns members matching the filter
func (s *MemberService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[MemberResponse], error) {
	f := filter.ToSharedFilter()

	members, err := s.memberRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.memberRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, ToMemberResponse(&members[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a member's profile
func (s *MemberService) Update(ctx context.Context, id uuid.UUID, req UpdateMemberRequest) (*MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if member.Name != req.Name {
		exists, err := s.memberRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Member with this name already exists")
		}
	}

	if err := member.Update(req.Name, req.Class, req.Role, req.Level, req.Power); err != nil {
		return nil, err
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, member)

	resp := ToMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) publishEvents(ctx context.Context, member *catalog.Member) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, member.GetDomainEvents()...)
	member.ClearDomainEvents()
}
