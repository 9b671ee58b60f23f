package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// ReferralCodeLength is the length of a freshly generated referral code
const ReferralCodeLength = 8

// referralAlphabet leaves out characters that are easy to misread (0/O, 1/I/L).
const referralAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateReferralCode generates a random referral code of the given length
func GenerateReferralCode(length int) (string, error) {
	if length <= 0 {
		length = ReferralCodeLength
	}
	return randomString(length)
}

// FallbackReferralCode builds a code that is unique in practice even when
// random generation keeps colliding: six random characters followed by the
// base36 timestamp in milliseconds.
func FallbackReferralCode(now time.Time) (string, error) {
	prefix, err := randomString(6)
	if err != nil {
		return "", err
	}
	suffix := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return prefix + "-" + suffix, nil
}

func randomString(length int) (string, error) {
	max := big.NewInt(int64(len(referralAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		b.WriteByte(referralAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// BuildReferralLink constructs a referral link with the given base URL and code
func BuildReferralLink(baseURL, referralCode string) string {
	if referralCode == "" {
		return ""
	}
	return fmt.Sprintf("%s/join?ref=%s", strings.TrimRight(baseURL, "/"), referralCode)
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeReferralCode trims and upper-cases a referral code
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
