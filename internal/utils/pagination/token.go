package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
)

const (
	timeFormat = time.RFC3339Nano
	dateFormat = "2006-01-02"
)

// Cursor is the position after the last row of a page, ordered by
// journal date desc, created_at desc, journal id desc.
type Cursor struct {
	DateISO   string
	CreatedAt time.Time
	JournalID string
}

// EncodeToken creates a base64 encoded token from the last row's sort keys.
func EncodeToken(dateISO string, createdAt time.Time, journalID string) string {
	tokenStr := strings.Join([]string{dateISO, createdAt.UTC().Format(timeFormat), journalID}, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a Cursor.
// Malformed tokens are reported as validation errors.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (base64 decode)", apperrors.ErrValidation)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	if _, err := time.Parse(dateFormat, parts[0]); err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (journal date parse)", apperrors.ErrValidation)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (created_at parse)", apperrors.ErrValidation)
	}

	return Cursor{DateISO: parts[0], CreatedAt: createdAt, JournalID: parts[2]}, nil
}

// Before reports whether a row with the given sort keys comes after the cursor
// in newest-first order, i.e. belongs on the next page.
func (c Cursor) Before(dateISO string, createdAt time.Time, journalID string) bool {
	if dateISO != c.DateISO {
		return dateISO < c.DateISO
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return journalID < c.JournalID
}
