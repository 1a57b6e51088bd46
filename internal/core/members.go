package core

import (
	"context"

	"jamaah/pkg/domain"
)

// ListMembers returns members newest first.
func (s *Service) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return run(ctx, s, "members.list", func(ctx context.Context) ([]domain.Member, error) {
		return s.store.Members().List(ctx)
	})
}

// GetMember returns one member.
func (s *Service) GetMember(ctx context.Context, id string) (domain.Member, error) {
	return run(ctx, s, "members.get", func(ctx context.Context) (domain.Member, error) {
		return s.store.Members().Get(ctx, id)
	})
}

// CreateMember registers a member; status defaults to pending.
func (s *Service) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	if m.Status == "" {
		m.Status = domain.MemberPending
	}
	return run(ctx, s, "members.create", func(ctx context.Context) (domain.Member, error) {
		return create(ctx, s, s.store.Members(), m)
	})
}

// UpdateMember merges patch into the member.
func (s *Service) UpdateMember(ctx context.Context, id string, patch domain.MemberPatch) (domain.Member, error) {
	return run(ctx, s, "members.update", func(ctx context.Context) (domain.Member, error) {
		return update(ctx, s, s.store.Members(), id, patch, patch.Apply)
	})
}

// DeleteMember removes the member. Contents referencing it are left alone.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	_, err := run(ctx, s, "members.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Members().Delete(ctx, id)
	})
	return err
}

// ApproveMember sets the member active.
func (s *Service) ApproveMember(ctx context.Context, id string) (domain.Member, error) {
	return s.setMemberStatus(ctx, "members.approve", id, domain.MemberActive)
}

// RejectMember sets the member rejected.
func (s *Service) RejectMember(ctx context.Context, id string) (domain.Member, error) {
	return s.setMemberStatus(ctx, "members.reject", id, domain.MemberRejected)
}

func (s *Service) setMemberStatus(ctx context.Context, op, id string, status domain.MemberStatus) (domain.Member, error) {
	return run(ctx, s, op, func(ctx context.Context) (domain.Member, error) {
		return s.store.Members().Update(ctx, id, setter(func(m *domain.Member) { m.Status = status }))
	})
}

// SearchMembers filters members by name or email, ignoring case.
// An empty term returns everything.
func (s *Service) SearchMembers(ctx context.Context, term string) ([]domain.Member, error) {
	return run(ctx, s, "members.search", func(ctx context.Context) ([]domain.Member, error) {
		members, err := s.store.Members().List(ctx)
		if err != nil {
			return nil, err
		}
		return filter(members, term, func(m domain.Member) []string {
			return []string{m.Name, m.Email}
		}), nil
	})
}
