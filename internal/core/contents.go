package core

import (
	"context"

	"jamaah/pkg/domain"
)

// ListContents returns contents newest first with member names resolved
// per the store's policy.
func (s *Service) ListContents(ctx context.Context) ([]domain.Content, error) {
	return run(ctx, s, "contents.list", func(ctx context.Context) ([]domain.Content, error) {
		return s.store.Contents().List(ctx)
	})
}

// GetContent returns one content.
func (s *Service) GetContent(ctx context.Context, id string) (domain.Content, error) {
	return run(ctx, s, "contents.get", func(ctx context.Context) (domain.Content, error) {
		return s.store.Contents().Get(ctx, id)
	})
}

// CreateContent stores a submission; status defaults to pending.
func (s *Service) CreateContent(ctx context.Context, c domain.Content) (domain.Content, error) {
	if c.Status == "" {
		c.Status = domain.ContentPending
	}
	return run(ctx, s, "contents.create", func(ctx context.Context) (domain.Content, error) {
		return create(ctx, s, s.store.Contents(), c)
	})
}

// UpdateContent merges patch into the content.
func (s *Service) UpdateContent(ctx context.Context, id string, patch domain.ContentPatch) (domain.Content, error) {
	return run(ctx, s, "contents.update", func(ctx context.Context) (domain.Content, error) {
		return update(ctx, s, s.store.Contents(), id, patch, patch.Apply)
	})
}

// DeleteContent removes the content if present.
func (s *Service) DeleteContent(ctx context.Context, id string) error {
	_, err := run(ctx, s, "contents.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Contents().Delete(ctx, id)
	})
	return err
}

// ApproveContent marks the content approved.
func (s *Service) ApproveContent(ctx context.Context, id string) (domain.Content, error) {
	return s.setContentStatus(ctx, "contents.approve", id, domain.ContentApproved)
}

// RejectContent marks the content rejected.
func (s *Service) RejectContent(ctx context.Context, id string) (domain.Content, error) {
	return s.setContentStatus(ctx, "contents.reject", id, domain.ContentRejected)
}

func (s *Service) setContentStatus(ctx context.Context, op, id string, status domain.ContentStatus) (domain.Content, error) {
	return run(ctx, s, op, func(ctx context.Context) (domain.Content, error) {
		return s.store.Contents().Update(ctx, id, setter(func(c *domain.Content) { c.Status = status }))
	})
}

// TakeDownContent removes published content. Unlike DeleteContent it fails
// with ErrNotFound when the id is unknown.
func (s *Service) TakeDownContent(ctx context.Context, id string) (domain.Content, error) {
	return run(ctx, s, "contents.takedown", func(ctx context.Context) (domain.Content, error) {
		c, err := s.store.Contents().Get(ctx, id)
		if err != nil {
			return domain.Content{}, err
		}
		if err := s.store.Contents().Delete(ctx, id); err != nil {
			return domain.Content{}, err
		}
		return c, nil
	})
}

// SearchContents filters contents by title or member name,
// ignoring case.
func (s *Service) SearchContents(ctx context.Context, term string) ([]domain.Content, error) {
	return run(ctx, s, "contents.search", func(ctx context.Context) ([]domain.Content, error) {
		contents, err := s.store.Contents().List(ctx)
		if err != nil {
			return nil, err
		}
		return filter(contents, term, func(c domain.Content) []string {
			return []string{c.Title, c.MemberName}
		}), nil
	})
}
