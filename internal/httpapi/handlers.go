package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"jamaah/internal/core"
	"jamaah/internal/format"
	"jamaah/pkg/domain"
)

type handlers struct {
	svc *core.Service
}

func (h *handlers) dashboard(c *fiber.Ctx) error {
	stats, err := h.svc.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return Success(c, "Statistik dashboard", stats)
}

// ignoreQuery adapts a plain list to the searchable list signature.
func ignoreQuery[T any](list func(context.Context) ([]T, error)) func(context.Context, string) ([]T, error) {
	return func(ctx context.Context, _ string) ([]T, error) { return list(ctx) }
}

func (h *handlers) mountMembers(g fiber.Router) {
	resource[domain.Member, domain.MemberPatch]{
		label:  "anggota",
		list:   h.svc.SearchMembers,
		get:    h.svc.GetMember,
		create: h.svc.CreateMember,
		update: h.svc.UpdateMember,
		delete: h.svc.DeleteMember,
		actions: map[string]func(context.Context, string) (domain.Member, error){
			"approve": h.svc.ApproveMember,
			"reject":  h.svc.RejectMember,
		},
	}.mount(g)
}

func (h *handlers) mountContents(g fiber.Router) {
	resource[domain.Content, domain.ContentPatch]{
		label:  "konten",
		list:   h.svc.SearchContents,
		get:    h.svc.GetContent,
		create: h.svc.CreateContent,
		update: h.svc.UpdateContent,
		delete: h.svc.DeleteContent,
		actions: map[string]func(context.Context, string) (domain.Content, error){
			"approve":  h.svc.ApproveContent,
			"reject":   h.svc.RejectContent,
			"takedown": h.svc.TakeDownContent,
		},
	}.mount(g)
}

func (h *handlers) mountMasjidPosts(g fiber.Router) {
	resource[domain.MasjidPost, domain.MasjidPostPatch]{
		label:  "postingan",
		list:   ignoreQuery(h.svc.ListMasjidPosts),
		get:    h.svc.GetMasjidPost,
		create: h.svc.CreateMasjidPost,
		update: h.svc.UpdateMasjidPost,
		delete: h.svc.DeleteMasjidPost,
	}.mount(g)
}

func (h *handlers) mountSchedules(g fiber.Router) {
	resource[domain.Schedule, domain.SchedulePatch]{
		label:  "jadwal",
		list:   ignoreQuery(h.svc.ListSchedules),
		get:    h.svc.GetSchedule,
		create: h.svc.CreateSchedule,
		update: h.svc.UpdateSchedule,
		delete: h.svc.DeleteSchedule,
	}.mount(g)
}

func (h *handlers) mountArticles(g fiber.Router) {
	resource[domain.Article, domain.ArticlePatch]{
		label:  "artikel",
		list:   ignoreQuery(h.svc.ListArticles),
		get:    h.svc.GetArticle,
		create: h.svc.CreateArticle,
		update: h.svc.UpdateArticle,
		delete: h.svc.DeleteArticle,
		actions: map[string]func(context.Context, string) (domain.Article, error){
			"toggle": h.svc.ToggleArticleStatus,
		},
	}.mount(g)
}

func (h *handlers) mountDonations(g fiber.Router) {
	resource[domain.Donation, domain.DonationPatch]{
		label:  "donasi",
		list:   ignoreQuery(h.svc.ListDonations),
		get:    h.svc.GetDonation,
		create: h.svc.CreateDonation,
		update: h.svc.UpdateDonation,
		delete: h.svc.DeleteDonation,
		actions: map[string]func(context.Context, string) (domain.Donation, error){
			"approve":    h.svc.ApproveDonation,
			"deactivate": h.svc.DeactivateDonation,
		},
		present: presentDonation,
	}.mount(g)
}

// donationView adds the display fields the donation screen shows.
type donationView struct {
	domain.Donation
	Progress       float64 `json:"progress"`
	ProgressLabel  string  `json:"progress_label"`
	CollectedLabel string  `json:"collected_label"`
	TargetLabel    string  `json:"target_label"`
}

func presentDonation(d domain.Donation) any {
	p := d.Progress()
	return donationView{
		Donation:       d,
		Progress:       p,
		ProgressLabel:  format.Percent(p),
		CollectedLabel: format.Rupiah(d.CollectedAmount),
		TargetLabel:    format.Rupiah(d.TargetAmount),
	}
}
