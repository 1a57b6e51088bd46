package domain

// Patches carry partial updates: nil fields are left untouched.

// MemberPatch updates a Member.
type MemberPatch struct {
	Name   *string       `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string       `json:"phone,omitempty" validate:"omitempty,min=1"`
	Status *MemberStatus `json:"status,omitempty" validate:"omitempty,oneof=pending active rejected"`
}

// Apply merges the patch into m.
func (p MemberPatch) Apply(m *Member) {
	set(&m.Name, p.Name)
	set(&m.Email, p.Email)
	set(&m.Phone, p.Phone)
	set(&m.Status, p.Status)
}

// ContentPatch updates a Content.
type ContentPatch struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	MemberID    *string        `json:"member_id,omitempty" validate:"omitempty,min=1"`
	Type        *ContentType   `json:"type,omitempty" validate:"omitempty,oneof=post image video"`
	Status      *ContentStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	ContentURL  *string        `json:"content_url,omitempty" validate:"omitempty,url"`
	Description *string        `json:"description,omitempty"`
}

// Apply merges the patch into c.
func (p ContentPatch) Apply(c *Content) {
	set(&c.Title, p.Title)
	set(&c.MemberID, p.MemberID)
	set(&c.Type, p.Type)
	set(&c.Status, p.Status)
	set(&c.ContentURL, p.ContentURL)
	set(&c.Description, p.Description)
}

// MasjidPostPatch updates a MasjidPost.
type MasjidPostPatch struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Content *string   `json:"content,omitempty" validate:"omitempty,min=1"`
	Type    *PostType `json:"type,omitempty" validate:"omitempty,oneof=announcement event"`
}

// Apply merges the patch into p.
func (p MasjidPostPatch) Apply(post *MasjidPost) {
	set(&post.Title, p.Title)
	set(&post.Content, p.Content)
	set(&post.Type, p.Type)
}

// SchedulePatch updates a Schedule.
type SchedulePatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Location    *string `json:"location,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into s.
func (p SchedulePatch) Apply(s *Schedule) {
	set(&s.Name, p.Name)
	set(&s.Date, p.Date)
	set(&s.Time, p.Time)
	set(&s.Location, p.Location)
	set(&s.Description, p.Description)
}

// ArticlePatch updates an Article.
type ArticlePatch struct {
	Title    *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	Category *string        `json:"category,omitempty" validate:"omitempty,min=1"`
	Content  *string        `json:"content,omitempty" validate:"omitempty,min=1"`
	Status   *ArticleStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}

// Apply merges the patch into a.
func (p ArticlePatch) Apply(a *Article) {
	set(&a.Title, p.Title)
	set(&a.Category, p.Category)
	set(&a.Content, p.Content)
	set(&a.Status, p.Status)
}

// DonationPatch updates a Donation. CollectedAmount is not bounded by
// TargetAmount.
type DonationPatch struct {
	Title           *string         `json:"title,omitempty" validate:"omitempty,min=1"`
	Description     *string         `json:"description,omitempty"`
	TargetAmount    *int64          `json:"target_amount,omitempty" validate:"omitempty,gte=0"`
	CollectedAmount *int64          `json:"collected_amount,omitempty" validate:"omitempty,gte=0"`
	Status          *DonationStatus `json:"status,omitempty" validate:"omitempty,oneof=pending active inactive"`
}

// Apply merges the patch into d.
func (p DonationPatch) Apply(d *Donation) {
	set(&d.Title, p.Title)
	set(&d.Description, p.Description)
	set(&d.TargetAmount, p.TargetAmount)
	set(&d.CollectedAmount, p.CollectedAmount)
	set(&d.Status, p.Status)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v; handy when building patches.
func Ptr[T any](v T) *T { return &v }
