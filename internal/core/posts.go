package core

import (
	"context"

	"jamaah/pkg/domain"
)

// ListMasjidPosts returns posts newest first.
func (s *Service) ListMasjidPosts(ctx context.Context) ([]domain.MasjidPost, error) {
	return run(ctx, s, "masjid_posts.list", func(ctx context.Context) ([]domain.MasjidPost, error) {
		return s.store.MasjidPosts().List(ctx)
	})
}

// GetMasjidPost returns one post.
func (s *Service) GetMasjidPost(ctx context.Context, id string) (domain.MasjidPost, error) {
	return run(ctx, s, "masjid_posts.get", func(ctx context.Context) (domain.MasjidPost, error) {
		return s.store.MasjidPosts().Get(ctx, id)
	})
}

// CreateMasjidPost stores a post.
func (s *Service) CreateMasjidPost(ctx context.Context, p domain.MasjidPost) (domain.MasjidPost, error) {
	return run(ctx, s, "masjid_posts.create", func(ctx context.Context) (domain.MasjidPost, error) {
		return create(ctx, s, s.store.MasjidPosts(), p)
	})
}

// UpdateMasjidPost merges patch into the post.
func (s *Service) UpdateMasjidPost(ctx context.Context, id string, patch domain.MasjidPostPatch) (domain.MasjidPost, error) {
	return run(ctx, s, "masjid_posts.update", func(ctx context.Context) (domain.MasjidPost, error) {
		return update(ctx, s, s.store.MasjidPosts(), id, patch, patch.Apply)
	})
}

// DeleteMasjidPost removes the post if present.
func (s *Service) DeleteMasjidPost(ctx context.Context, id string) error {
	_, err := run(ctx, s, "masjid_posts.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.MasjidPosts().Delete(ctx, id)
	})
	return err
}

// ListSchedules returns schedules soonest first.
func (s *Service) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	return run(ctx, s, "schedules.list", func(ctx context.Context) ([]domain.Schedule, error) {
		return s.store.Schedules().List(ctx)
	})
}

// GetSchedule returns one schedule.
func (s *Service) GetSchedule(ctx context.Context, id string) (domain.Schedule, error) {
	return run(ctx, s, "schedules.get", func(ctx context.Context) (domain.Schedule, error) {
		return s.store.Schedules().Get(ctx, id)
	})
}

// CreateSchedule stores a schedule.
func (s *Service) CreateSchedule(ctx context.Context, sch domain.Schedule) (domain.Schedule, error) {
	return run(ctx, s, "schedules.create", func(ctx context.Context) (domain.Schedule, error) {
		return create(ctx, s, s.store.Schedules(), sch)
	})
}

// UpdateSchedule merges patch into the schedule.
func (s *Service) UpdateSchedule(ctx context.Context, id string, patch domain.SchedulePatch) (domain.Schedule, error) {
	return run(ctx, s, "schedules.update", func(ctx context.Context) (domain.Schedule, error) {
		return update(ctx, s, s.store.Schedules(), id, patch, patch.Apply)
	})
}

// DeleteSchedule removes the schedule if present.
func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	_, err := run(ctx, s, "schedules.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Schedules().Delete(ctx, id)
	})
	return err
}
