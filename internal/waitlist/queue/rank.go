package queue

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// CompareConsumers orders consumers by referral points (high first), then by
// signup time (early first).
func CompareConsumers(a, b RankKey) int {
	if c := cmp.Compare(b.ReferralPoints, a.ReferralPoints); c != 0 {
		return c
	}
	return compareTail(a, b)
}

// CompareVendors orders vendors with a manual override ahead of those
// without, overrides ascending, then priority score (high first), then signup
// time (early first).
func CompareVendors(a, b RankKey) int {
	switch {
	case a.QueueOverride != nil && b.QueueOverride == nil:
		return -1
	case a.QueueOverride == nil && b.QueueOverride != nil:
		return 1
	case a.QueueOverride != nil && b.QueueOverride != nil:
		if c := cmp.Compare(*a.QueueOverride, *b.QueueOverride); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(b.PriorityScore, a.PriorityScore); c != 0 {
		return c
	}
	return compareTail(a, b)
}

// compareTail breaks remaining ties by created_at and finally by id so the
// order is total even for identical timestamps.
func compareTail(a, b RankKey) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

// Comparator returns the ordering used for role.
func Comparator(role Role) func(a, b RankKey) int {
	if role == RoleVendor {
		return CompareVendors
	}
	return CompareConsumers
}

// Rank returns the entries of the given role in queue order. Entries of other
// roles are dropped; the input slice is not modified.
func Rank[T Rankable](entries []T, role Role) []T {
	ranked := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.RankKey().Role == role {
			ranked = append(ranked, e)
		}
	}
	compare := Comparator(role)
	slices.SortStableFunc(ranked, func(a, b T) int {
		return compare(a.RankKey(), b.RankKey())
	})
	return ranked
}

// Position returns the 1-based position of id in the role's queue. The second
// result is false when the role has no entries or id is not among them.
func Position[T Rankable](entries []T, role Role, id uuid.UUID) (int, bool) {
	for i, e := range Rank(entries, role) {
		if e.RankKey().ID == id {
			return i + 1, true
		}
	}
	return 0, false
}
