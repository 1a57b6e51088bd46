package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jamaah/pkg/domain"
)

// MemberStats summarises the member collection.
type MemberStats struct {
	TotalMembers   int `json:"total_members"`
	PendingMembers int `json:"pending_members"`
}

// ContentStats summarises the moderation queue.
type ContentStats struct {
	PendingContents int `json:"pending_contents"`
}

// DonationStats summarises fundraising.
type DonationStats struct {
	ActiveDonations int `json:"active_donations"`
}

// Dashboard combines the three summaries.
type Dashboard struct {
	MemberStats
	ContentStats
	DonationStats
}

// MemberStats counts all members and those awaiting review.
func (s *Service) MemberStats(ctx context.Context) (MemberStats, error) {
	return run(ctx, s, "stats.members", s.memberStats)
}

// ContentStats counts pending contents.
func (s *Service) ContentStats(ctx context.Context) (ContentStats, error) {
	return run(ctx, s, "stats.contents", s.contentStats)
}

// DonationStats counts active campaigns.
func (s *Service) DonationStats(ctx context.Context) (DonationStats, error) {
	return run(ctx, s, "stats.donations", s.donationStats)
}

// DashboardStats computes the three summaries concurrently. The first failure
// cancels the others.
func (s *Service) DashboardStats(ctx context.Context) (Dashboard, error) {
	return run(ctx, s, "stats.dashboard", func(ctx context.Context) (Dashboard, error) {
		var d Dashboard
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			d.MemberStats, err = s.memberStats(gctx)
			return err
		})
		g.Go(func() (err error) {
			d.ContentStats, err = s.contentStats(gctx)
			return err
		})
		g.Go(func() (err error) {
			d.DonationStats, err = s.donationStats(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return Dashboard{}, err
		}
		return d, nil
	})
}

func (s *Service) memberStats(ctx context.Context) (MemberStats, error) {
	members, err := s.store.Members().List(ctx)
	if err != nil {
		return MemberStats{}, err
	}
	return MemberStats{
		TotalMembers:   len(members),
		PendingMembers: count(members, func(m domain.Member) bool { return m.Status == domain.MemberPending }),
	}, nil
}

func (s *Service) contentStats(ctx context.Context) (ContentStats, error) {
	contents, err := s.store.Contents().List(ctx)
	if err != nil {
		return ContentStats{}, err
	}
	return ContentStats{
		PendingContents: count(contents, func(c domain.Content) bool { return c.Status == domain.ContentPending }),
	}, nil
}

func (s *Service) donationStats(ctx context.Context) (DonationStats, error) {
	donations, err := s.store.Donations().List(ctx)
	if err != nil {
		return DonationStats{}, err
	}
	return DonationStats{
		ActiveDonations: count(donations, func(d domain.Donation) bool { return d.Status == domain.DonationActive }),
	}, nil
}

func count[T any](items []T, match func(T) bool) int {
	n := 0
	for _, item := range items {
		if match(item) {
			n++
		}
	}
	return n
}
