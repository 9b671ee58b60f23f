package queue

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies which queue an entry belongs to.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleVendor   Role = "vendor"
)

// ReferralReward is the number of points credited to a referrer per signup.
const ReferralReward = 10

var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleConsumer:
		return RoleConsumer, nil
	case RoleVendor:
		return RoleVendor, nil
	default:
		return "", ErrInvalidRole
	}
}

// Review holds the admin-controlled review metadata shared by both roles.
type Review struct {
	Status     ReviewStatus
	Notes      *string
	ReviewedAt *time.Time
	ReviewedBy *string
}

// Base is the part of an entry common to consumers and vendors.
type Base struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	Phone          *string
	Answers        Answers
	ReferralCode   string
	ReferredBy     *string
	ReferralPoints int
	ReferralsCount int
	Review         Review
	CreatedAt      time.Time
}

// RankKey is the subset of an entry the queue comparators look at.
// Fields that do not apply to a role are left zero.
type RankKey struct {
	ID             uuid.UUID
	Role           Role
	ReferralPoints int
	PriorityScore  int
	QueueOverride  *int
	CreatedAt      time.Time
}

// RankKey lets bare keys be ranked directly.
func (k RankKey) RankKey() RankKey { return k }

// Rankable is implemented by anything that can be placed in a queue.
type Rankable interface {
	RankKey() RankKey
}

// Entry is either a *ConsumerEntry or a *VendorEntry.
type Entry interface {
	Rankable
	Role() Role
	Common() *Base
}

// ConsumerEntry is a consumer signup. It has no vendor-only fields, so vendor
// mutations cannot be expressed against it.
type ConsumerEntry struct {
	Base
}

func (e *ConsumerEntry) Role() Role    { return RoleConsumer }
func (e *ConsumerEntry) Common() *Base { return &e.Base }

func (e *ConsumerEntry) RankKey() RankKey {
	return RankKey{
		ID:             e.ID,
		Role:           RoleConsumer,
		ReferralPoints: e.ReferralPoints,
		CreatedAt:      e.CreatedAt,
	}
}

// VendorEntry is a vendor application.
type VendorEntry struct {
	Base
	// PriorityScore is a snapshot taken at signup and never recomputed.
	PriorityScore  int
	QueueOverride  *int
	CertificateURL *string
}

func (e *VendorEntry) Role() Role    { return RoleVendor }
func (e *VendorEntry) Common() *Base { return &e.Base }

func (e *VendorEntry) RankKey() RankKey {
	return RankKey{
		ID:            e.ID,
		Role:          RoleVendor,
		PriorityScore: e.PriorityScore,
		QueueOverride: e.QueueOverride,
		CreatedAt:     e.CreatedAt,
	}
}

// Score returns the role-appropriate score shown to the entrant: referral
// points for consumers, priority score for vendors.
func Score(e Entry) int {
	switch v := e.(type) {
	case *VendorEntry:
		return v.PriorityScore
	case *ConsumerEntry:
		return v.ReferralPoints
	default:
		return 0
	}
}
