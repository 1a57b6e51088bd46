package core

import (
	"context"
	"testing"

	"jamaah/pkg/domain"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t)
	snap, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.Driver != domain.DriverKV || snap.ExportedAt.IsZero() {
		t.Fatalf("unexpected snapshot header %+v", snap)
	}
	counts := snap.Counts()
	if counts[domain.KindMember] != 4 || counts[domain.KindDonation] != 3 {
		t.Fatalf("unexpected counts %v", counts)
	}

	dst := newTestService(t, WithSeeding(false))
	report, err := dst.Import(ctx, snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted() != 18 {
		t.Fatalf("expected 18 inserted, got %v", report)
	}
	m, err := dst.GetMember(ctx, "m2")
	if err != nil {
		t.Fatalf("get imported member: %v", err)
	}
	orig, _ := src.GetMember(ctx, "m2")
	if !m.CreatedAt.Equal(orig.CreatedAt) || !m.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Fatalf("timestamps not preserved: %+v vs %+v", m, orig)
	}

	again, err := dst.Import(ctx, snap)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if again.Inserted() != 0 || again[domain.KindContent].Skipped != 4 {
		t.Fatalf("expected everything skipped, got %v", again)
	}
}

func TestImportDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	snap := domain.Snapshot{Members: []domain.Member{{
		Base: domain.Base{ID: "m1"}, Name: "Imposter", Email: "x@email.com", Phone: "1", Status: domain.MemberActive,
	}}}
	report, err := svc.Import(ctx, snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report[domain.KindMember].Skipped != 1 {
		t.Fatalf("expected skip, got %v", report)
	}
	m, _ := svc.GetMember(ctx, "m1")
	if m.Name != "Ahmad Fauzi" {
		t.Fatalf("existing member overwritten: %+v", m)
	}
}

func TestImportValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, WithSeeding(false))
	snap := domain.Snapshot{
		Members:   []domain.Member{{Base: domain.Base{ID: "m7"}, Name: "Ali", Email: "ali@email.com", Phone: "1", Status: domain.MemberActive}},
		Donations: []domain.Donation{{Title: "No id", Status: domain.DonationActive}},
	}
	_, err := svc.Import(ctx, snap)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.GetMember(ctx, "m7"); !domain.IsNotFound(err) {
		t.Fatalf("nothing should have been written, got %v", err)
	}
}
