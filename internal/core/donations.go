package core

import (
	"context"

	"jamaah/pkg/domain"
)

// ListDonations returns campaigns newest first.
func (s *Service) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	return run(ctx, s, "donations.list", func(ctx context.Context) ([]domain.Donation, error) {
		return s.store.Donations().List(ctx)
	})
}

// GetDonation returns one campaign.
func (s *Service) GetDonation(ctx context.Context, id string) (domain.Donation, error) {
	return run(ctx, s, "donations.get", func(ctx context.Context) (domain.Donation, error) {
		return s.store.Donations().Get(ctx, id)
	})
}

// CreateDonation stores a campaign; status defaults to pending. Collected
// may exceed target.
func (s *Service) CreateDonation(ctx context.Context, d domain.Donation) (domain.Donation, error) {
	if d.Status == "" {
		d.Status = domain.DonationPending
	}
	return run(ctx, s, "donations.create", func(ctx context.Context) (domain.Donation, error) {
		return create(ctx, s, s.store.Donations(), d)
	})
}

// UpdateDonation merges patch into the campaign.
func (s *Service) UpdateDonation(ctx context.Context, id string, patch domain.DonationPatch) (domain.Donation, error) {
	return run(ctx, s, "donations.update", func(ctx context.Context) (domain.Donation, error) {
		return update(ctx, s, s.store.Donations(), id, patch, patch.Apply)
	})
}

// DeleteDonation removes the campaign if present.
func (s *Service) DeleteDonation(ctx context.Context, id string) error {
	_, err := run(ctx, s, "donations.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Donations().Delete(ctx, id)
	})
	return err
}

// ApproveDonation activates the campaign, from pending or inactive.
func (s *Service) ApproveDonation(ctx context.Context, id string) (domain.Donation, error) {
	return s.setDonationStatus(ctx, "donations.approve", id, domain.DonationActive)
}

// DeactivateDonation sets the campaign inactive.
func (s *Service) DeactivateDonation(ctx context.Context, id string) (domain.Donation, error) {
	return s.setDonationStatus(ctx, "donations.deactivate", id, domain.DonationInactive)
}

func (s *Service) setDonationStatus(ctx context.Context, op, id string, status domain.DonationStatus) (domain.Donation, error) {
	return run(ctx, s, op, func(ctx context.Context) (domain.Donation, error) {
		return s.store.Donations().Update(ctx, id, setter(func(d *domain.Donation) { d.Status = status }))
	})
}
