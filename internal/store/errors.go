package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateEntry means an entry with the same role and email exists.
	ErrDuplicateEntry = errors.New("duplicate waitlist entry")
	// ErrReferralCodeTaken means the generated referral code collided.
	ErrReferralCodeTaken = errors.New("referral code already taken")
	// ErrColumnUnavailable means a column the query needs has not been
	// migrated yet.
	ErrColumnUnavailable = errors.New("column unavailable")
)

// Postgres SQLSTATE codes the store reacts to.
const (
	pgUniqueViolation = "23505"
	pgUndefinedColumn = "42703"
)

const (
	constraintRoleEmail    = "waitlist_entries_role_email_key"
	constraintReferralCode = "waitlist_entries_referral_code_key"
)

// IsUndefinedColumn reports whether err is Postgres' undefined_column error.
func IsUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedColumn
}

// classifyWriteError maps unique violations on known constraints to sentinel
// errors and returns anything else unchanged.
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintRoleEmail:
		return ErrDuplicateEntry
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintReferralCode:
		return ErrReferralCodeTaken
	case pgErr.Code == pgUndefinedColumn:
		return ErrColumnUnavailable
	default:
		return err
	}
}
