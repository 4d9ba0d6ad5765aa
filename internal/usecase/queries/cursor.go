package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"coupon-service/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200

	cursorVersion = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Cursor is the opaque page token handed to clients.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// Keyset is the (created_at, id) position of the last row on a page.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode truncates to microseconds, the precision postgres stores.
func (k Keyset) Encode() string {
	raw := fmt.Sprintf("%s:%d-%s", cursorVersion, k.CreatedAt.UnixMicro(), k.ID)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func ParseKeyset(token string) (Keyset, error) {
	if token == "" {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "empty cursor")
	}

	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Keyset{}, errs.Mark(err, ErrInvalidCursor)
	}

	body, ok := strings.CutPrefix(string(decoded), cursorVersion+":")
	if !ok {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "unsupported cursor version")
	}
	micros, rawID, ok := strings.Cut(body, "-")
	if !ok {
		return Keyset{}, errs.Wrap(ErrInvalidCursor, "malformed cursor body")
	}

	us, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return Keyset{}, errs.Mark(err, ErrInvalidCursor)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Keyset{}, errs.Mark(err, ErrInvalidCursor)
	}
	return Keyset{CreatedAt: time.UnixMicro(us).UTC(), ID: id}, nil
}

// ClampLimit maps non-positive limits to the default and caps the rest.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
