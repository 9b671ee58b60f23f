package queue

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ReviewStatus is the admin-controlled lifecycle tag on an entry. Any status
// may move to any other.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusReviewed ReviewStatus = "reviewed"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

var (
	ErrInvalidReviewStatus  = errors.New("invalid review status")
	ErrInvalidQueueOverride = errors.New("vendor queue override must be a whole number")
)

// ParseReviewStatus accepts exactly one of the four literal statuses.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch ReviewStatus(s) {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected:
		return ReviewStatus(s), nil
	default:
		return "", ErrInvalidReviewStatus
	}
}

// Optional distinguishes "leave unchanged" (Set == false) from "set to
// Value", where a nil Value clears the field.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional that sets the field to v.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

// Clear returns an Optional that sets the field to null.
func Clear[T any]() Optional[T] { return Optional[T]{Set: true} }

// Update is an admin change to an entry's review fields.
type Update struct {
	Status   *ReviewStatus
	Notes    Optional[string]
	Override Optional[int]
}

// ParseOverride decodes a raw JSON override. An absent field leaves the
// override untouched; null or "" clears it; a number or numeric string sets
// it. The column is an integer, so fractional numbers are rejected along with
// anything else.
func ParseOverride(raw json.RawMessage) (Optional[int], error) {
	raw = json.RawMessage(bytes.TrimSpace(raw))
	if len(raw) == 0 {
		return Optional[int]{}, nil
	}
	if bytes.Equal(raw, []byte("null")) {
		return Clear[int](), nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return Optional[int]{}, ErrInvalidQueueOverride
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return Clear[int](), nil
		}
	} else {
		text = string(raw)
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) ||
		n > math.MaxInt32 || n < math.MinInt32 {
		return Optional[int]{}, ErrInvalidQueueOverride
	}
	return Some(int(n)), nil
}

// ApplyResult reports what Apply did beyond the plain field writes.
type ApplyResult struct {
	// OverrideIgnored is true when an override was supplied for a consumer.
	OverrideIgnored bool
}

// Apply writes u onto e. Moving to a non-pending status stamps reviewed_by
// and, when the status actually changes (or was never stamped), reviewed_at;
// moving to pending clears reviewed_at and keeps the last reviewed_by.
// Applying the same update twice yields the same state.
func (u Update) Apply(e Entry, actor string, now time.Time) ApplyResult {
	var res ApplyResult
	base := e.Common()

	if u.Status != nil {
		next := *u.Status
		if next == StatusPending {
			base.Review.ReviewedAt = nil
		} else {
			if base.Review.Status != next || base.Review.ReviewedAt == nil {
				stamp := now.UTC()
				base.Review.ReviewedAt = &stamp
			}
			reviewer := actor
			base.Review.ReviewedBy = &reviewer
		}
		base.Review.Status = next
	}

	if u.Notes.Set {
		if u.Notes.Value == nil || strings.TrimSpace(*u.Notes.Value) == "" {
			base.Review.Notes = nil
		} else {
			notes := *u.Notes.Value
			base.Review.Notes = &notes
		}
	}

	if u.Override.Set {
		switch v := e.(type) {
		case *VendorEntry:
			if u.Override.Value == nil {
				v.QueueOverride = nil
			} else {
				override := *u.Override.Value
				v.QueueOverride = &override
			}
		default:
			res.OverrideIgnored = true
		}
	}

	return res
}
