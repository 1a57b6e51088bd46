package seed

import (
	"time"

	"jamaah/pkg/domain"
)

func day(s string) domain.Base {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return domain.Base{CreatedAt: t, UpdatedAt: t}
}

func withID(id string, b domain.Base) domain.Base {
	b.ID = id
	return b
}

// Dataset returns a fresh copy of the demonstration records.
func Dataset() domain.Snapshot {
	return domain.Snapshot{
		Members: []domain.Member{
			{Base: withID("m1", day("2026-01-19")), Name: "Ahmad Fauzi", Email: "ahmad.fauzi@email.com", Phone: "081234567890", Status: domain.MemberPending},
			{Base: withID("m2", day("2026-01-18")), Name: "Siti Nurhaliza", Email: "siti.nur@email.com", Phone: "081234567891", Status: domain.MemberActive},
			{Base: withID("m3", day("2026-01-19")), Name: "Muhammad Rizki", Email: "m.rizki@email.com", Phone: "081234567892", Status: domain.MemberPending},
			{Base: withID("m4", day("2026-01-17")), Name: "Fatimah Azzahra", Email: "fatimah.az@email.com", Phone: "081234567893", Status: domain.MemberActive},
		},
		Contents: []domain.Content{
			{Base: withID("c1", day("2026-01-19")), Title: "Kajian Islam: Akhlak Mulia", MemberID: "m1", MemberName: "Ahmad Fauzi", Type: domain.ContentPost, Status: domain.ContentPending, Description: "Kajian tentang akhlak dalam Islam"},
			{Base: withID("c2", day("2026-01-18")), Title: "Foto Kegiatan Masjid", MemberID: "m2", MemberName: "Siti Nurhaliza", Type: domain.ContentImage, Status: domain.ContentApproved},
			{Base: withID("c3", day("2026-01-19")), Title: "Video Ceramah Ustadz", MemberID: "m3", MemberName: "Muhammad Rizki", Type: domain.ContentVideo, Status: domain.ContentPending},
			{Base: withID("c4", day("2026-01-17")), Title: "Artikel Fiqih Shalat", MemberID: "m4", MemberName: "Fatimah Azzahra", Type: domain.ContentPost, Status: domain.ContentApproved},
		},
		MasjidPosts: []domain.MasjidPost{
			{Base: withID("p1", day("2026-01-19")), Title: "Pengumuman Shalat Jumat", Content: "Shalat Jumat akan dilaksanakan pukul 12.00 WIB", Type: domain.PostAnnouncement},
			{Base: withID("p2", day("2026-01-18")), Title: "Kegiatan Kajian Ramadhan", Content: "Kajian Ramadhan setiap hari pukul 16.00 WIB", Type: domain.PostEvent},
		},
		Schedules: []domain.Schedule{
			{Base: withID("s1", day("2026-01-16")), Name: "Kajian Rutin Mingguan", Date: "2026-01-24", Time: "19:00", Location: "Masjid Al-Ikhlas"},
			{Base: withID("s2", day("2026-01-16")), Name: "Pelatihan Tahsin Quran", Date: "2026-01-25", Time: "16:00", Location: "Ruang Serbaguna Masjid"},
		},
		Articles: []domain.Article{
			{Base: withID("a1", day("2026-01-19")), Title: "Pentingnya Menjaga Shalat Lima Waktu", Category: "Ibadah", Status: domain.ArticlePublished,
				Content: "Shalat merupakan tiang agama Islam. Artikel ini membahas pentingnya menjaga shalat lima waktu dalam kehidupan sehari-hari seorang muslim."},
			{Base: withID("a2", day("2026-01-18")), Title: "Adab Berbicara dalam Islam", Category: "Akhlak", Status: domain.ArticlePublished,
				Content: "Islam mengajarkan berbagai adab dalam berbicara. Pelajari bagaimana cara berbicara yang baik sesuai tuntunan Islam."},
			{Base: withID("a3", day("2026-01-17")), Title: "Mengenal Rukun Islam", Category: "Aqidah", Status: domain.ArticleDraft,
				Content: "Lima rukun Islam yang harus diketahui oleh setiap muslim. Draft artikel untuk review."},
		},
		Donations: []domain.Donation{
			{Base: withID("d1", day("2026-01-15")), Title: "Pembangunan Masjid Al-Ikhlas", Description: "Program pembangunan masjid di desa terpencil", TargetAmount: 500000000, CollectedAmount: 125000000, Status: domain.DonationActive},
			{Base: withID("d2", day("2026-01-18")), Title: "Bantuan untuk Korban Bencana", Description: "Bantuan untuk korban bencana alam", TargetAmount: 100000000, CollectedAmount: 75000000, Status: domain.DonationActive},
			{Base: withID("d3", day("2026-01-19")), Title: "Program Beasiswa Anak Yatim", Description: "Beasiswa pendidikan untuk anak yatim", TargetAmount: 50000000, CollectedAmount: 10000000, Status: domain.DonationPending},
		},
	}
}
