package processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"waitlist-service/internal/observability"
	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/queue"
	"waitlist-service/internal/waitlist/utils"

	"github.com/google/uuid"
)

// StatusLookup identifies an entry by referral code or by id
type StatusLookup struct {
	Code string
	ID   string
}

// StatusResponse is what an entrant sees about their place in line
type StatusResponse struct {
	ID           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	ReviewStatus string    `json:"review_status"`
	Position     *int      `json:"position"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
	ReferralCode string    `json:"referral_code"`
	ReferralLink string    `json:"referral_link,omitempty"`
}

// GetStatus resolves one entry and computes its position in its role's queue
func (p *WaitlistProcessor) GetStatus(ctx context.Context, lookup StatusLookup) (StatusResponse, error) {
	code := utils.NormalizeReferralCode(lookup.Code)
	rawID := strings.TrimSpace(lookup.ID)

	var row store.WaitlistEntry
	var err error
	switch {
	case code != "":
		row, err = p.store.GetEntryByReferralCode(ctx, code)
	case rawID != "":
		id, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			return StatusResponse{}, ErrInvalidEntryID
		}
		row, err = p.store.GetEntryByID(ctx, id)
	default:
		return StatusResponse{}, ErrMissingLookupKey
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, ErrEntryNotFound
		}
		p.logger.Error(ctx, "failed to get waitlist entry", err)
		return StatusResponse{}, err
	}

	return p.statusFor(ctx, row)
}

func (p *WaitlistProcessor) statusFor(ctx context.Context, row store.WaitlistEntry) (StatusResponse, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "entry_id", Value: row.ID.String()})

	entry, err := toEntry(row)
	if err != nil {
		p.logger.Error(ctx, "failed to convert waitlist entry", err)
		return StatusResponse{}, err
	}

	rows, degraded, err := p.store.ListRankKeys(ctx, string(entry.Role()))
	if err != nil {
		p.logger.Error(ctx, "failed to list rank keys", err)
		return StatusResponse{}, err
	}
	if degraded {
		p.metrics.DegradedQuery()
	}

	var position *int
	if pos, ok := queue.Position(toRankKeys(rows), entry.Role(), row.ID); ok {
		position = &pos
	}

	base := entry.Common()
	return StatusResponse{
		ID:           base.ID,
		Role:         string(entry.Role()),
		ReviewStatus: string(base.Review.Status),
		Position:     position,
		Score:        queue.Score(entry),
		CreatedAt:    base.CreatedAt,
		ReferralCode: base.ReferralCode,
		ReferralLink: utils.BuildReferralLink(p.opts.WebAppURI, base.ReferralCode),
	}, nil
}
