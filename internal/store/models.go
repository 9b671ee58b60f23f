package store

import (
	"time"

	"waitlist-service/internal/waitlist/queue"

	"github.com/google/uuid"
)

// WaitlistEntry is one row of waitlist_entries. VendorQueueOverride stays nil
// when the column has not been migrated yet.
type WaitlistEntry struct {
	ID                  uuid.UUID     `db:"id"`
	Role                string        `db:"role"`
	FullName            string        `db:"full_name"`
	Email               string        `db:"email"`
	Phone               *string       `db:"phone"`
	Answers             queue.Answers `db:"answers"`
	ReferralCode        string        `db:"referral_code"`
	ReferredBy          *string       `db:"referred_by"`
	ReferralPoints      int           `db:"referral_points"`
	ReferralsCount      int           `db:"referrals_count"`
	VendorPriorityScore int           `db:"vendor_priority_score"`
	VendorQueueOverride *int          `db:"vendor_queue_override"`
	CertificateURL      *string       `db:"certificate_url"`
	ReviewStatus        string        `db:"review_status"`
	AdminNotes          *string       `db:"admin_notes"`
	ReviewedAt          *time.Time    `db:"reviewed_at"`
	ReviewedBy          *string       `db:"reviewed_by"`
	ConsentedAt         time.Time     `db:"consented_at"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
}

// RankKeyRow carries only the columns the queue ordering needs.
type RankKeyRow struct {
	ID                  uuid.UUID `db:"id"`
	Role                string    `db:"role"`
	ReferralPoints      int       `db:"referral_points"`
	VendorPriorityScore int       `db:"vendor_priority_score"`
	VendorQueueOverride *int      `db:"vendor_queue_override"`
	CreatedAt           time.Time `db:"created_at"`
}

// EmailOTP is a hashed one-time verification code.
type EmailOTP struct {
	ID         uuid.UUID  `db:"id"`
	Email      string     `db:"email"`
	CodeHash   string     `db:"code_hash"`
	Attempts   int        `db:"attempts"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}
