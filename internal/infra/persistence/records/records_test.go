package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"jamaah/pkg/domain"
)

func TestMutateBumpsWhenClockStalls(t *testing.T) {
	fixed := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	clock := domain.ClockFunc(func() time.Time { return fixed })
	m := domain.Member{Base: domain.Base{ID: "m1", CreatedAt: fixed, UpdatedAt: fixed}, Status: domain.MemberPending}
	next, err := Mutate(m, func(rec *domain.Member) error {
		rec.Status = domain.MemberActive
		return nil
	}, clock)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if !next.UpdatedAt.Equal(fixed.Add(time.Microsecond)) {
		t.Fatalf("expected one microsecond bump, got %v", next.UpdatedAt)
	}
	if m.Status != domain.MemberPending {
		t.Fatalf("original must stay untouched")
	}
	again, _ := Mutate(next, nil, clock)
	if !again.UpdatedAt.After(next.UpdatedAt) {
		t.Fatalf("expected strict increase")
	}
}

func TestMutatePropagatesMutatorError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Mutate(domain.Article{}, func(*domain.Article) error { return boom }, domain.SystemClock)
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}
}

func TestStampAssignsIDAndTimes(t *testing.T) {
	fixed := time.Date(2026, 1, 19, 10, 0, 0, 123456789, time.UTC)
	clock := domain.ClockFunc(func() time.Time { return fixed })
	var d domain.Donation
	Stamp(&d, domain.NewIDGenerator(clock), clock)
	if d.ID == "" || d.ID[0] != 'd' {
		t.Fatalf("unexpected id %q", d.ID)
	}
	if !d.CreatedAt.Equal(d.UpdatedAt) || d.CreatedAt.Nanosecond() != 123456000 {
		t.Fatalf("unexpected timestamps %+v", d.Base)
	}
}

func TestMemberNameHooks(t *testing.T) {
	ctx := context.Background()
	dir := func(context.Context) (map[string]string, error) {
		return map[string]string{"m1": "Ahmad Fauzi"}, nil
	}

	denorm := MemberNames(domain.MemberNamesDenormalized, dir)
	c := domain.Content{MemberID: "m1"}
	if err := denorm.Write(ctx, &c); err != nil || c.MemberName != "Ahmad Fauzi" {
		t.Fatalf("denormalized write: %q %v", c.MemberName, err)
	}
	orphan := domain.Content{MemberID: "m9", MemberName: "Tamu"}
	_ = denorm.Write(ctx, &orphan)
	if orphan.MemberName != "Tamu" {
		t.Fatalf("expected caller name kept, got %q", orphan.MemberName)
	}

	join := MemberNames(domain.MemberNamesJoin, dir)
	stored := domain.Content{MemberID: "m1", MemberName: "stale"}
	_ = join.Write(ctx, &stored)
	if stored.MemberName != "" {
		t.Fatalf("join must not store names")
	}
	items := []domain.Content{{MemberID: "m1"}, {MemberID: "m9"}}
	if err := join.Read(ctx, items); err != nil {
		t.Fatalf("read: %v", err)
	}
	if items[0].MemberName != "Ahmad Fauzi" || items[1].MemberName != domain.UnknownMemberName {
		t.Fatalf("unexpected names %+v", items)
	}
}

func TestCodecRoundTripsList(t *testing.T) {
	ts := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	in := []domain.Schedule{{Base: domain.Base{ID: "s1", CreatedAt: ts, UpdatedAt: ts}, Name: "Kajian", Date: "2026-01-16"}}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out []domain.Schedule
	if err := Decode(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Kajian" || !out[0].CreatedAt.Equal(ts) {
		t.Fatalf("unexpected %+v", out)
	}
	if err := Decode([]byte("nope"), &out); err == nil {
		t.Fatalf("expected decode error")
	}
}
