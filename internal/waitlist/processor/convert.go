package processor

import (
	"fmt"
	"time"

	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/queue"

	"github.com/google/uuid"
)

// EntryView is the admin representation of an entry. Vendor-only fields are
// omitted for consumers.
type EntryView struct {
	ID                  uuid.UUID     `json:"id"`
	Role                string        `json:"role"`
	FullName            string        `json:"full_name"`
	Email               string        `json:"email"`
	Phone               *string       `json:"phone"`
	Answers             queue.Answers `json:"answers"`
	ReferralCode        string        `json:"referral_code"`
	ReferredBy          *string       `json:"referred_by"`
	ReferralPoints      int           `json:"referral_points"`
	ReferralsCount      int           `json:"referrals_count"`
	VendorPriorityScore *int          `json:"vendor_priority_score,omitempty"`
	VendorQueueOverride *int          `json:"vendor_queue_override,omitempty"`
	CertificateURL      *string       `json:"certificate_url,omitempty"`
	ReviewStatus        string        `json:"review_status"`
	AdminNotes          *string       `json:"admin_notes"`
	ReviewedAt          *time.Time    `json:"reviewed_at"`
	ReviewedBy          *string       `json:"reviewed_by"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// toEntry converts a stored row into its role-specific variant
func toEntry(row store.WaitlistEntry) (queue.Entry, error) {
	role, err := queue.ParseRole(row.Role)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", row.ID, err)
	}
	status, err := queue.ParseReviewStatus(row.ReviewStatus)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", row.ID, err)
	}

	base := queue.Base{
		ID:             row.ID,
		FullName:       row.FullName,
		Email:          row.Email,
		Phone:          row.Phone,
		Answers:        row.Answers,
		ReferralCode:   row.ReferralCode,
		ReferredBy:     row.ReferredBy,
		ReferralPoints: row.ReferralPoints,
		ReferralsCount: row.ReferralsCount,
		Review: queue.Review{
			Status:     status,
			Notes:      row.AdminNotes,
			ReviewedAt: row.ReviewedAt,
			ReviewedBy: row.ReviewedBy,
		},
		CreatedAt: row.CreatedAt,
	}

	if role == queue.RoleVendor {
		return &queue.VendorEntry{
			Base:           base,
			PriorityScore:  row.VendorPriorityScore,
			QueueOverride:  row.VendorQueueOverride,
			CertificateURL: row.CertificateURL,
		}, nil
	}
	return &queue.ConsumerEntry{Base: base}, nil
}

func toRankKeys(rows []store.RankKeyRow) []queue.RankKey {
	keys := make([]queue.RankKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, queue.RankKey{
			ID:             row.ID,
			Role:           queue.Role(row.Role),
			ReferralPoints: row.ReferralPoints,
			PriorityScore:  row.VendorPriorityScore,
			QueueOverride:  row.VendorQueueOverride,
			CreatedAt:      row.CreatedAt,
		})
	}
	return keys
}

func newEntryView(e queue.Entry, updatedAt time.Time) EntryView {
	base := e.Common()
	answers := base.Answers
	if answers == nil {
		answers = queue.Answers{}
	}

	view := EntryView{
		ID:             base.ID,
		Role:           string(e.Role()),
		FullName:       base.FullName,
		Email:          base.Email,
		Phone:          base.Phone,
		Answers:        answers,
		ReferralCode:   base.ReferralCode,
		ReferredBy:     base.ReferredBy,
		ReferralPoints: base.ReferralPoints,
		ReferralsCount: base.ReferralsCount,
		ReviewStatus:   string(base.Review.Status),
		AdminNotes:     base.Review.Notes,
		ReviewedAt:     base.Review.ReviewedAt,
		ReviewedBy:     base.Review.ReviewedBy,
		CreatedAt:      base.CreatedAt,
		UpdatedAt:      updatedAt,
	}

	if v, ok := e.(*queue.VendorEntry); ok {
		score := v.PriorityScore
		view.VendorPriorityScore = &score
		view.VendorQueueOverride = v.QueueOverride
		view.CertificateURL = v.CertificateURL
	}
	return view
}

func rowToView(row store.WaitlistEntry) (EntryView, error) {
	entry, err := toEntry(row)
	if err != nil {
		return EntryView{}, err
	}
	return newEntryView(entry, row.UpdatedAt), nil
}
