package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"waitlist-service/internal/observability"
	"waitlist-service/internal/waitlist/queue"

	"github.com/google/uuid"
)

// CreateEntryParams represents parameters for creating a waitlist entry
type CreateEntryParams struct {
	Role                string
	FullName            string
	Email               string
	Phone               *string
	Answers             queue.Answers
	ReferralCode        string
	ReferredBy          *string
	VendorPriorityScore int
	CertificateURL      *string
}

// UpdateEntryReviewParams is the full set of admin-controlled fields written
// back after a review transition.
type UpdateEntryReviewParams struct {
	ID           uuid.UUID
	ReviewStatus string
	AdminNotes   *string
	ReviewedAt   *time.Time
	ReviewedBy   *string
	// SetOverride writes VendorQueueOverride; when false the column is not
	// touched, so the update also works before it is migrated.
	SetOverride         bool
	VendorQueueOverride *int
}

// EntryFilter narrows admin listings and exports.
type EntryFilter struct {
	Role       *string
	Status     *string
	Query      string
	MaxCommute *float64
	HasSocial  *bool
	Compliance string
	Limit      int
	Offset     int
}

// EntryPage is one page of an admin listing.
type EntryPage struct {
	Entries  []WaitlistEntry
	Total    int
	Degraded bool
}

// entryBaseColumns lists every column present since the first migration.
const entryBaseColumns = `id, role, full_name, email, phone, answers, referral_code, referred_by, referral_points, referrals_count, vendor_priority_score, certificate_url, review_status, admin_notes, reviewed_at, reviewed_by, consented_at, created_at, updated_at`

func entryColumns(withOverride bool) string {
	if withOverride {
		return entryBaseColumns + `, vendor_queue_override`
	}
	return entryBaseColumns
}

// withOverrideFallback runs query with the override column and, if Postgres
// reports the column missing, once more without it. The bool result reports
// that the fallback was used.
func (s *Store) withOverrideFallback(ctx context.Context, query func(withOverride bool) error) (bool, error) {
	err := query(true)
	if err == nil {
		return false, nil
	}
	if !IsUndefinedColumn(err) {
		return false, err
	}

	s.logger.WarnWithError(ctx, "vendor_queue_override is not queryable, falling back to automatic ordering", err)
	if err := query(false); err != nil {
		return true, err
	}
	return true, nil
}

const sqlCreateEntry = `
INSERT INTO waitlist_entries (
	role, full_name, email, phone, answers, referral_code, referred_by, vendor_priority_score, certificate_url
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + entryBaseColumns

// CreateEntry inserts a new waitlist entry. It returns ErrDuplicateEntry when
// the role and email are taken and ErrReferralCodeTaken on a code collision.
func (s *Store) CreateEntry(ctx context.Context, params CreateEntryParams) (WaitlistEntry, error) {
	answers := params.Answers
	if answers == nil {
		answers = queue.Answers{}
	}

	var entry WaitlistEntry
	err := s.db.GetContext(ctx, &entry, sqlCreateEntry,
		params.Role,
		params.FullName,
		params.Email,
		params.Phone,
		answers,
		params.ReferralCode,
		params.ReferredBy,
		params.VendorPriorityScore,
		params.CertificateURL,
	)
	if err != nil {
		classified := classifyWriteError(err)
		if classified != err {
			return WaitlistEntry{}, classified
		}
		return WaitlistEntry{}, fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return entry, nil
}

// GetEntryByID retrieves a waitlist entry by ID
func (s *Store) GetEntryByID(ctx context.Context, id uuid.UUID) (WaitlistEntry, error) {
	return s.getEntry(ctx, "get waitlist entry by id", `WHERE id = $1`, id)
}

// GetEntryByReferralCode retrieves a waitlist entry by its referral code
func (s *Store) GetEntryByReferralCode(ctx context.Context, code string) (WaitlistEntry, error) {
	return s.getEntry(ctx, "get waitlist entry by referral code", `WHERE referral_code = $1`, code)
}

// GetEntryByEmail retrieves the entry for a role and email, ignoring case
func (s *Store) GetEntryByEmail(ctx context.Context, role, email string) (WaitlistEntry, error) {
	return s.getEntry(ctx, "get waitlist entry by email", `WHERE role = $1 AND lower(email) = lower($2)`, role, email)
}

// GetLatestEntryByEmail retrieves the most recent entry for an email across roles
func (s *Store) GetLatestEntryByEmail(ctx context.Context, email string) (WaitlistEntry, error) {
	return s.getEntry(ctx, "get latest waitlist entry by email",
		`WHERE lower(email) = lower($1) ORDER BY created_at DESC, id DESC LIMIT 1`, email)
}

func (s *Store) getEntry(ctx context.Context, op, where string, args ...interface{}) (WaitlistEntry, error) {
	var entry WaitlistEntry
	_, err := s.withOverrideFallback(ctx, func(withOverride bool) error {
		entry = WaitlistEntry{}
		query := `SELECT ` + entryColumns(withOverride) + ` FROM waitlist_entries ` + where
		return s.db.GetContext(ctx, &entry, query, args...)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WaitlistEntry{}, ErrNotFound
		}
		return WaitlistEntry{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	return entry, nil
}

const sqlReferralCodeExists = `SELECT EXISTS (SELECT 1 FROM waitlist_entries WHERE referral_code = $1)`

// ReferralCodeExists reports whether code is already assigned
func (s *Store) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlReferralCodeExists, code); err != nil {
		return false, fmt.Errorf("failed to check referral code: %w", err)
	}
	return exists, nil
}

const sqlCreditReferrer = `
UPDATE waitlist_entries
SET referral_points = referral_points + $2,
    referrals_count = referrals_count + 1,
    updated_at = NOW()
WHERE referral_code = $1
`

// CreditReferrer adds points to the entry owning code and bumps its referral count
func (s *Store) CreditReferrer(ctx context.Context, code string, points int) error {
	result, err := s.db.ExecContext(ctx, sqlCreditReferrer, code, points)
	if err != nil {
		return fmt.Errorf("failed to credit referrer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to credit referrer: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRankKeys returns the ordering columns of every entry of a role. The
// bool result is true when the override column was unavailable.
func (s *Store) ListRankKeys(ctx context.Context, role string) ([]RankKeyRow, bool, error) {
	var rows []RankKeyRow
	degraded, err := s.withOverrideFallback(ctx, func(withOverride bool) error {
		rows = nil
		columns := `id, role, referral_points, vendor_priority_score, created_at`
		if withOverride {
			columns += `, vendor_queue_override`
		}
		query := `SELECT ` + columns + ` FROM waitlist_entries WHERE role = $1`
		return s.db.SelectContext(ctx, &rows, query, role)
	})
	if err != nil {
		return nil, degraded, fmt.Errorf("failed to list rank keys: %w", err)
	}
	return rows, degraded, nil
}

// buildEntryWhere renders filter as a WHERE clause with positional args.
func buildEntryWhere(filter EntryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 0

	if filter.Role != nil {
		argCount++
		conditions = append(conditions, fmt.Sprintf("role = $%d", argCount))
		args = append(args, *filter.Role)
	}

	if filter.Status != nil {
		argCount++
		conditions = append(conditions, fmt.Sprintf("review_status = $%d", argCount))
		args = append(args, *filter.Status)
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+escapeLike(q)+"%")
	}

	if filter.MaxCommute != nil {
		argCount++
		conditions = append(conditions, fmt.Sprintf(
			`(CASE WHEN btrim(answers->>'commute_minutes') ~ '^[0-9]+(\.[0-9]+)?$' THEN btrim(answers->>'commute_minutes')::numeric END) <= $%d`,
			argCount))
		args = append(args, *filter.MaxCommute)
	}

	if filter.HasSocial != nil {
		if *filter.HasSocial {
			conditions = append(conditions, `COALESCE(btrim(answers->>'social_handle'), '') <> ''`)
		} else {
			conditions = append(conditions, `COALESCE(btrim(answers->>'social_handle'), '') = ''`)
		}
	}

	if filter.Compliance != "" {
		argCount++
		conditions = append(conditions, fmt.Sprintf("answers->>'compliance' = $%d", argCount))
		args = append(args, filter.Compliance)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// entryOrder is the listing order: the vendor queue rule for vendors,
// newest first otherwise.
func entryOrder(filter EntryFilter, withOverride bool) string {
	if filter.Role == nil || *filter.Role != string(queue.RoleVendor) {
		return ` ORDER BY created_at DESC, id DESC`
	}
	if withOverride {
		return ` ORDER BY (vendor_queue_override IS NULL), vendor_queue_override ASC, vendor_priority_score DESC, created_at ASC, id ASC`
	}
	return ` ORDER BY vendor_priority_score DESC, created_at ASC, id ASC`
}

// ListEntries returns one page of entries matching filter plus the total
// number of matches.
func (s *Store) ListEntries(ctx context.Context, filter EntryFilter) (EntryPage, error) {
	where, args := buildEntryWhere(filter)

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM waitlist_entries`+where, args...); err != nil {
		return EntryPage{}, fmt.Errorf("failed to count waitlist entries: %w", err)
	}

	var entries []WaitlistEntry
	degraded, err := s.withOverrideFallback(ctx, func(withOverride bool) error {
		entries = nil
		query := `SELECT ` + entryColumns(withOverride) + ` FROM waitlist_entries` + where + entryOrder(filter, withOverride)
		pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		return s.db.SelectContext(ctx, &entries, query, pageArgs...)
	})
	if err != nil {
		return EntryPage{}, fmt.Errorf("failed to list waitlist entries: %w", err)
	}

	if entries == nil {
		entries = []WaitlistEntry{}
	}
	return EntryPage{Entries: entries, Total: total, Degraded: degraded}, nil
}

// StreamEntries calls fn for every entry matching filter, oldest first,
// without loading them all into memory. Limit and Offset are ignored.
func (s *Store) StreamEntries(ctx context.Context, filter EntryFilter, fn func(WaitlistEntry) error) (bool, error) {
	where, args := buildEntryWhere(filter)

	var started bool
	degraded, err := s.withOverrideFallback(ctx, func(withOverride bool) error {
		query := `SELECT ` + entryColumns(withOverride) + ` FROM waitlist_entries` + where + ` ORDER BY created_at ASC, id ASC`
		rows, err := s.db.QueryxContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var entry WaitlistEntry
			if err := rows.StructScan(&entry); err != nil {
				return err
			}
			started = true
			if err := fn(entry); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	if err != nil {
		if started {
			return degraded, err
		}
		return degraded, fmt.Errorf("failed to stream waitlist entries: %w", err)
	}
	return degraded, nil
}

// UpdateEntryReview writes the review fields and returns the updated entry.
// Setting the override before its column exists returns ErrColumnUnavailable.
func (s *Store) UpdateEntryReview(ctx context.Context, params UpdateEntryReviewParams) (WaitlistEntry, error) {
	query := `
UPDATE waitlist_entries
SET review_status = $2,
    admin_notes = $3,
    reviewed_at = $4,
    reviewed_by = $5,
    updated_at = NOW()`
	args := []interface{}{params.ID, params.ReviewStatus, params.AdminNotes, params.ReviewedAt, params.ReviewedBy}
	if params.SetOverride {
		query += `,
    vendor_queue_override = $6`
		args = append(args, params.VendorQueueOverride)
	}
	query += `
WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if IsUndefinedColumn(err) {
			return WaitlistEntry{}, ErrColumnUnavailable
		}
		return WaitlistEntry{}, fmt.Errorf("failed to update waitlist entry review: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return WaitlistEntry{}, fmt.Errorf("failed to update waitlist entry review: %w", err)
	}
	if rows == 0 {
		return WaitlistEntry{}, ErrNotFound
	}

	s.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "entry_id", Value: params.ID.String()},
		observability.Field{Key: "review_status", Value: params.ReviewStatus},
	), "updated waitlist entry review")

	return s.GetEntryByID(ctx, params.ID)
}
