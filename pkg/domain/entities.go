// Package domain defines the entity shapes, store contract, and error
// taxonomy shared by every jamaah storage backend.
package domain

import "time"

// Kind identifies one of the six entity collections.
type Kind string

// Supported entity kinds. The string value doubles as the key prefix used by
// the key-value adapter (`member:m1`).
const (
	KindMember     Kind = "member"
	KindContent    Kind = "content"
	KindMasjidPost Kind = "masjid_post"
	KindSchedule   Kind = "schedule"
	KindArticle    Kind = "article"
	KindDonation   Kind = "donation"
)

// Kinds lists every kind in dependency order: members precede contents
// because contents reference them.
var Kinds = []Kind{KindMember, KindContent, KindMasjidPost, KindSchedule, KindArticle, KindDonation}

// Collection returns the plural bucket/table name for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindMember:
		return "members"
	case KindContent:
		return "contents"
	case KindMasjidPost:
		return "masjid_posts"
	case KindSchedule:
		return "schedules"
	case KindArticle:
		return "articles"
	case KindDonation:
		return "donations"
	default:
		return string(k) + "s"
	}
}

// KeyPrefix returns the composite-key prefix (`member:`) for the kind.
func (k Kind) KeyPrefix() string { return string(k) + ":" }

// IDPrefix returns the single letter prepended to generated ids.
func (k Kind) IDPrefix() string {
	switch k {
	case KindMasjidPost:
		return "p"
	case KindSchedule:
		return "s"
	default:
		return string(k)[:1]
	}
}

// ParseKind resolves a kind from its singular, plural, or hyphenated form.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == string(k) || s == k.Collection() {
			return k, true
		}
	}
	switch s {
	case "masjid-post", "masjid-posts", "posts", "post":
		return KindMasjidPost, true
	}
	return "", false
}

// Base carries the fields every entity shares. ID and CreatedAt are immutable
// once assigned; UpdatedAt is refreshed on every mutation.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta exposes the shared fields for generic storage code.
func (b *Base) Meta() *Base { return b }

// Record is the constraint satisfied by pointers to every entity type.
type Record[T any] interface {
	*T
	Meta() *Base
	Kind() Kind
}

// MemberStatus enumerates the member review states.
type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberActive   MemberStatus = "active"
	MemberRejected MemberStatus = "rejected"
)

// Member is a registered community member awaiting or past review.
type Member struct {
	Base
	Name   string       `json:"name" validate:"required"`
	Email  string       `json:"email" validate:"required,email"`
	Phone  string       `json:"phone" validate:"required"`
	Status MemberStatus `json:"status" validate:"oneof=pending active rejected"`
}

// Kind implements Record.
func (Member) Kind() Kind { return KindMember }

// ContentType enumerates the media kinds a member can submit.
type ContentType string

const (
	ContentPost  ContentType = "post"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
)

// ContentStatus enumerates content moderation states.
type ContentStatus string

const (
	ContentPending  ContentStatus = "pending"
	ContentApproved ContentStatus = "approved"
	ContentRejected ContentStatus = "rejected"
)

// UnknownMemberName is shown when a content's member cannot be resolved.
const UnknownMemberName = "Unknown"

// Content is member-submitted material under moderation. MemberName is a
// display convenience; MemberID is the authoritative reference.
type Content struct {
	Base
	Title       string        `json:"title" validate:"required"`
	MemberID    string        `json:"member_id" validate:"required"`
	MemberName  string        `json:"member_name,omitempty"`
	Type        ContentType   `json:"type" validate:"oneof=post image video"`
	Status      ContentStatus `json:"status" validate:"oneof=pending approved rejected"`
	ContentURL  string        `json:"content_url,omitempty" validate:"omitempty,url"`
	Description string        `json:"description,omitempty"`
}

// Kind implements Record.
func (Content) Kind() Kind { return KindContent }

// PostType distinguishes announcements from events.
type PostType string

const (
	PostAnnouncement PostType = "announcement"
	PostEvent        PostType = "event"
)

// MasjidPost is a free-form announcement or event notice.
type MasjidPost struct {
	Base
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Type    PostType `json:"type" validate:"oneof=announcement event"`
}

// Kind implements Record.
func (MasjidPost) Kind() Kind { return KindMasjidPost }

// Schedule is an activity on the masjid calendar. Date is `YYYY-MM-DD` and
// Time is `HH:MM`, both local to the masjid.
type Schedule struct {
	Base
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Kind implements Record.
func (Schedule) Kind() Kind { return KindSchedule }

// ArticleStatus is either draft or published.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
)

// Toggled returns the opposite publication state.
func (s ArticleStatus) Toggled() ArticleStatus {
	if s == ArticlePublished {
		return ArticleDraft
	}
	return ArticlePublished
}

// Article is an editorial piece.
type Article struct {
	Base
	Title    string        `json:"title" validate:"required"`
	Category string        `json:"category" validate:"required"`
	Content  string        `json:"content" validate:"required"`
	Status   ArticleStatus `json:"status" validate:"oneof=draft published"`
}

// Kind implements Record.
func (Article) Kind() Kind { return KindArticle }

// DonationStatus enumerates fundraising campaign states.
type DonationStatus string

const (
	DonationPending  DonationStatus = "pending"
	DonationActive   DonationStatus = "active"
	DonationInactive DonationStatus = "inactive"
)

// Donation is a fundraising campaign. Amounts are whole rupiah. Collected may
// exceed Target; only the displayed progress is clamped.
type Donation struct {
	Base
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description,omitempty"`
	TargetAmount    int64          `json:"target_amount" validate:"gte=0"`
	CollectedAmount int64          `json:"collected_amount" validate:"gte=0"`
	Status          DonationStatus `json:"status" validate:"oneof=pending active inactive"`
}

// Kind implements Record.
func (Donation) Kind() Kind { return KindDonation }

// Progress returns the collected share of the target as a percentage clamped
// to 100. A non-positive target reads as complete once anything is collected.
func (d Donation) Progress() float64 {
	if d.TargetAmount <= 0 {
		if d.CollectedAmount > 0 {
			return 100
		}
		return 0
	}
	p := float64(d.CollectedAmount) / float64(d.TargetAmount) * 100
	if p > 100 {
		return 100
	}
	return p
}
