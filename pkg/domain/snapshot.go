package domain

import "time"

// Snapshot is a full copy of every collection, used for export and import.
type Snapshot struct {
	ExportedAt  time.Time    `json:"exported_at"`
	Driver      Driver       `json:"driver,omitempty"`
	Members     []Member     `json:"members"`
	Contents    []Content    `json:"contents"`
	MasjidPosts []MasjidPost `json:"masjid_posts"`
	Schedules   []Schedule   `json:"schedules"`
	Articles    []Article    `json:"articles"`
	Donations   []Donation   `json:"donations"`
}

// Counts returns the number of records per kind.
func (s Snapshot) Counts() map[Kind]int {
	return map[Kind]int{
		KindMember:     len(s.Members),
		KindContent:    len(s.Contents),
		KindMasjidPost: len(s.MasjidPosts),
		KindSchedule:   len(s.Schedules),
		KindArticle:    len(s.Articles),
		KindDonation:   len(s.Donations),
	}
}
