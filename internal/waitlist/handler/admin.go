package handler

import (
	"crypto/subtle"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"waitlist-service/internal/apierrors"
	"waitlist-service/internal/observability"
	"waitlist-service/internal/waitlist/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// exportColumns is the CSV header of the admin export
var exportColumns = []string{
	"id", "role", "full_name", "email", "phone", "review_status",
	"referral_code", "referred_by", "referral_points", "referrals_count",
	"vendor_priority_score", "vendor_queue_override", "admin_notes",
	"reviewed_at", "reviewed_by", "certificate_url", "created_at", "answers",
}

// HandleAdminAuth rejects requests without the shared admin secret and
// stores the acting admin's name for later handlers.
func (h *Handler) HandleAdminAuth(c *gin.Context) {
	ctx := c.Request.Context()

	provided := c.GetHeader(adminSecretHeader)
	if h.cfg.AdminSecret == "" || provided == "" ||
		subtle.ConstantTimeCompare([]byte(provided), []byte(h.cfg.AdminSecret)) != 1 {
		h.logger.Warn(ctx, "rejected admin request with missing or wrong secret")
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin secret required"))
		return
	}

	actor := strings.TrimSpace(c.GetHeader(h.cfg.ActorHeader))
	if actor == "" {
		actor = defaultActor
	}
	c.Set(actorContextKey, actor)

	ctx = observability.WithFields(ctx, observability.Field{Key: "admin_actor", Value: actor})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// HandleListEntries handles GET /api/admin/entries
func (h *Handler) HandleListEntries(c *gin.Context) {
	ctx := c.Request.Context()

	req := processor.ListEntriesRequest{
		Role:       c.Query("role"),
		Status:     c.Query("status"),
		Query:      c.Query("q"),
		Compliance: c.Query("compliance"),
	}

	var err error
	if req.Page, err = queryInt(c, "page"); err != nil {
		apierrors.RespondWithAdminError(c, err)
		return
	}
	if req.Limit, err = queryInt(c, "limit"); err != nil {
		apierrors.RespondWithAdminError(c, err)
		return
	}
	if raw := c.Query("max_commute"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apierrors.RespondWithAdminError(c, apierrors.BadRequest(apierrors.CodeInvalidFilter, "max_commute must be a number"))
			return
		}
		req.MaxCommute = &v
	}
	if raw := c.Query("has_social"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.RespondWithAdminError(c, apierrors.BadRequest(apierrors.CodeInvalidFilter, "has_social must be true or false"))
			return
		}
		req.HasSocial = &v
	}

	response, err := h.processor.ListEntries(ctx, req)
	if err != nil {
		apierrors.RespondWithAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierrors.BadRequest(apierrors.CodeInvalidFilter, key+" must be a non-negative integer")
	}
	return v, nil
}

// HandleGetEntry handles GET /api/admin/entries/:id
func (h *Handler) HandleGetEntry(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithAdminError(c, processor.ErrInvalidEntryID)
		return
	}

	entry, err := h.processor.GetEntry(ctx, id)
	if err != nil {
		apierrors.RespondWithAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateEntryRequest represents the HTTP request for reviewing an entry.
// A field left out of the body is not touched; an explicit null clears it.
type UpdateEntryRequest struct {
	ReviewStatus        *string         `json:"review_status,omitempty"`
	AdminNotes          json.RawMessage `json:"admin_notes,omitempty"`
	VendorQueueOverride json.RawMessage `json:"vendor_queue_override,omitempty"`
}

// HandleUpdateEntry handles PATCH /api/admin/entries/:id
func (h *Handler) HandleUpdateEntry(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithAdminError(c, processor.ErrInvalidEntryID)
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	entry, err := h.processor.UpdateEntry(ctx, id, processor.UpdateEntryRequest{
		ReviewStatus:        req.ReviewStatus,
		AdminNotes:          req.AdminNotes,
		VendorQueueOverride: req.VendorQueueOverride,
	}, c.GetString(actorContextKey))
	if err != nil {
		apierrors.RespondWithAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// HandleExportEntries handles GET /api/admin/entries/export as a streamed CSV
func (h *Handler) HandleExportEntries(c *gin.Context) {
	ctx := c.Request.Context()
	role := strings.TrimSpace(c.Query("role"))

	label := "all"
	if role != "" {
		label = strings.ToLower(role)
	}
	filename := fmt.Sprintf("waitlist-%s-%s.csv", label, h.now().UTC().Format("2006-01-02"))

	w := csv.NewWriter(c.Writer)
	started := false
	start := func() error {
		started = true
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Status(http.StatusOK)
		return w.Write(exportColumns)
	}

	rows := 0
	degraded, err := h.processor.ExportEntries(ctx, role, func(entry processor.EntryView) error {
		if !started {
			if err := start(); err != nil {
				return err
			}
		}
		record, err := exportRecord(entry)
		if err != nil {
			return err
		}
		rows++
		if err := w.Write(record); err != nil {
			return err
		}
		if rows%100 == 0 {
			w.Flush()
			return w.Error()
		}
		return nil
	})
	if err != nil {
		if !started {
			apierrors.RespondWithAdminError(c, err)
			return
		}
		// Headers are gone; cut the stream short so the client sees a failure.
		h.logger.Error(ctx, "waitlist export aborted mid-stream", err)
		w.Flush()
		c.Abort()
		return
	}

	if !started {
		if err := start(); err != nil {
			h.logger.Error(ctx, "failed to write export header", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.logger.Error(ctx, "failed to flush waitlist export", err)
		return
	}

	h.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "rows", Value: rows},
		observability.Field{Key: "degraded", Value: degraded},
	), "exported waitlist entries")
}

func exportRecord(e processor.EntryView) ([]string, error) {
	answers, err := json.Marshal(e.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	return []string{
		e.ID.String(),
		e.Role,
		e.FullName,
		e.Email,
		stringOrEmpty(e.Phone),
		e.ReviewStatus,
		e.ReferralCode,
		stringOrEmpty(e.ReferredBy),
		strconv.Itoa(e.ReferralPoints),
		strconv.Itoa(e.ReferralsCount),
		intOrEmpty(e.VendorPriorityScore),
		intOrEmpty(e.VendorQueueOverride),
		stringOrEmpty(e.AdminNotes),
		timeOrEmpty(e.ReviewedAt),
		stringOrEmpty(e.ReviewedBy),
		stringOrEmpty(e.CertificateURL),
		e.CreatedAt.UTC().Format(time.RFC3339),
		string(answers),
	}, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
