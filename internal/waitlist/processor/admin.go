package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"waitlist-service/internal/observability"
	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/queue"

	"github.com/google/uuid"
)

// ListEntriesRequest represents admin listing filters and pagination
type ListEntriesRequest struct {
	Role       string
	Status     string
	Query      string
	MaxCommute *float64
	HasSocial  *bool
	Compliance string
	Page       int
	Limit      int
}

// ListEntriesResponse represents the paginated response
type ListEntriesResponse struct {
	Entries    []EntryView `json:"entries"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	// Degraded is set when the manual override could not be read and vendors
	// are in automatic order only.
	Degraded bool `json:"degraded"`
}

// UpdateEntryRequest is an admin review change. The raw fields distinguish
// an omitted value from an explicit null.
type UpdateEntryRequest struct {
	ReviewStatus        *string
	AdminNotes          json.RawMessage
	VendorQueueOverride json.RawMessage
}

// ListEntries returns one page of entries for the admin console
func (p *WaitlistProcessor) ListEntries(ctx context.Context, req ListEntriesRequest) (ListEntriesResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultPageSize
	}
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}

	filter, err := buildFilter(req)
	if err != nil {
		return ListEntriesResponse{}, err
	}
	filter.Limit = req.Limit
	filter.Offset = (req.Page - 1) * req.Limit

	page, err := p.store.ListEntries(ctx, filter)
	if err != nil {
		p.logger.Error(ctx, "failed to list waitlist entries", err)
		return ListEntriesResponse{}, err
	}
	if page.Degraded {
		p.metrics.DegradedQuery()
	}

	entries := make([]EntryView, 0, len(page.Entries))
	for _, row := range page.Entries {
		view, err := rowToView(row)
		if err != nil {
			p.logger.Error(ctx, "failed to convert waitlist entry", err)
			return ListEntriesResponse{}, err
		}
		entries = append(entries, view)
	}

	totalPages := page.Total / req.Limit
	if page.Total%req.Limit > 0 {
		totalPages++
	}

	return ListEntriesResponse{
		Entries:    entries,
		Total:      page.Total,
		Page:       req.Page,
		PageSize:   req.Limit,
		TotalPages: totalPages,
		Degraded:   page.Degraded,
	}, nil
}

// GetEntry returns a single entry by id
func (p *WaitlistProcessor) GetEntry(ctx context.Context, id uuid.UUID) (EntryView, error) {
	row, err := p.store.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return EntryView{}, ErrEntryNotFound
		}
		p.logger.Error(ctx, "failed to get waitlist entry", err)
		return EntryView{}, err
	}
	return rowToView(row)
}

// UpdateEntry applies an admin review change on behalf of actor
func (p *WaitlistProcessor) UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateEntryRequest, actor string) (EntryView, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "entry_id", Value: id.String()},
		observability.Field{Key: "actor", Value: actor},
	)

	update, err := parseUpdate(req)
	if err != nil {
		return EntryView{}, err
	}

	row, err := p.store.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return EntryView{}, ErrEntryNotFound
		}
		p.logger.Error(ctx, "failed to get waitlist entry", err)
		return EntryView{}, err
	}
	entry, err := toEntry(row)
	if err != nil {
		p.logger.Error(ctx, "failed to convert waitlist entry", err)
		return EntryView{}, err
	}

	result := update.Apply(entry, actor, p.now())
	if result.OverrideIgnored {
		p.logger.Info(ctx, "queue override ignored for consumer entry")
	}

	base := entry.Common()
	params := store.UpdateEntryReviewParams{
		ID:           id,
		ReviewStatus: string(base.Review.Status),
		AdminNotes:   base.Review.Notes,
		ReviewedAt:   base.Review.ReviewedAt,
		ReviewedBy:   base.Review.ReviewedBy,
	}
	if vendor, ok := entry.(*queue.VendorEntry); ok && update.Override.Set {
		params.SetOverride = true
		params.VendorQueueOverride = vendor.QueueOverride
	}

	updated, err := p.store.UpdateEntryReview(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return EntryView{}, ErrEntryNotFound
		case errors.Is(err, store.ErrColumnUnavailable):
			return EntryView{}, ErrOverrideUnavailable
		}
		p.logger.Error(ctx, "failed to update waitlist entry", err)
		return EntryView{}, err
	}

	return rowToView(updated)
}

// ExportEntries streams every entry matching role to fn, oldest first. The
// bool result reports that the override column could not be read.
func (p *WaitlistProcessor) ExportEntries(ctx context.Context, role string, fn func(EntryView) error) (bool, error) {
	filter, err := buildFilter(ListEntriesRequest{Role: role})
	if err != nil {
		return false, err
	}

	degraded, err := p.store.StreamEntries(ctx, filter, func(row store.WaitlistEntry) error {
		view, err := rowToView(row)
		if err != nil {
			return err
		}
		return fn(view)
	})
	if degraded {
		p.metrics.DegradedQuery()
	}
	if err != nil {
		p.logger.Error(ctx, "failed to export waitlist entries", err)
		return degraded, err
	}
	return degraded, nil
}

func buildFilter(req ListEntriesRequest) (store.EntryFilter, error) {
	var filter store.EntryFilter

	if role := strings.TrimSpace(req.Role); role != "" {
		parsed, err := queue.ParseRole(role)
		if err != nil {
			return store.EntryFilter{}, fmt.Errorf("%w: unknown role %q", ErrInvalidFilter, role)
		}
		r := string(parsed)
		filter.Role = &r
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		parsed, err := queue.ParseReviewStatus(status)
		if err != nil {
			return store.EntryFilter{}, fmt.Errorf("%w: unknown review status %q", ErrInvalidFilter, status)
		}
		s := string(parsed)
		filter.Status = &s
	}
	if req.MaxCommute != nil && *req.MaxCommute < 0 {
		return store.EntryFilter{}, fmt.Errorf("%w: max_commute must not be negative", ErrInvalidFilter)
	}

	filter.Query = strings.TrimSpace(req.Query)
	filter.MaxCommute = req.MaxCommute
	filter.HasSocial = req.HasSocial
	filter.Compliance = strings.TrimSpace(req.Compliance)
	return filter, nil
}

func parseUpdate(req UpdateEntryRequest) (queue.Update, error) {
	var update queue.Update

	if req.ReviewStatus != nil {
		status, err := queue.ParseReviewStatus(*req.ReviewStatus)
		if err != nil {
			return queue.Update{}, err
		}
		update.Status = &status
	}

	notes, err := parseNotes(req.AdminNotes)
	if err != nil {
		return queue.Update{}, err
	}
	update.Notes = notes

	override, err := queue.ParseOverride(req.VendorQueueOverride)
	if err != nil {
		return queue.Update{}, err
	}
	update.Override = override

	return update, nil
}

func parseNotes(raw json.RawMessage) (queue.Optional[string], error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return queue.Optional[string]{}, nil
	}
	if bytes.Equal(raw, []byte("null")) {
		return queue.Clear[string](), nil
	}
	var notes string
	if err := json.Unmarshal(raw, &notes); err != nil {
		return queue.Optional[string]{}, ErrInvalidNotes
	}
	return queue.Some(notes), nil
}
