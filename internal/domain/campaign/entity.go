package campaign

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName      = errors.New("campaign name must not be empty")
	ErrNameTooLong      = errors.New("campaign name must be at most 255 characters")
	ErrCampaignNotFound = errors.New("campaign not found")
)

const maxNameLength = 255

// Campaign groups coupons for reporting.
type Campaign struct {
	id          uuid.UUID
	name        string
	description string
	createdAt   time.Time
}

func NewCampaign(name, description string) (*Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	return &Campaign{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
	}, nil
}

// Rehydrate rebuilds a stored campaign.
func Rehydrate(id uuid.UUID, name, description string, createdAt time.Time) *Campaign {
	return &Campaign{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
	}
}

func (c *Campaign) ID() uuid.UUID        { return c.id }
func (c *Campaign) Name() string         { return c.name }
func (c *Campaign) Description() string  { return c.description }
func (c *Campaign) CreatedAt() time.Time { return c.createdAt }

// Stats summarizes the coupons of one campaign. A coupon that is both used and
// expired counts as used.
type Stats struct {
	Total   int
	Used    int
	Unused  int
	Expired int
}

// ComputeStats derives Unused from the raw counts. expired counts every coupon past
// its valid_until; usedAndExpired is the overlap with used.
func ComputeStats(total, used, expired, usedAndExpired int) Stats {
	unused := total - used - (expired - usedAndExpired)
	if unused < 0 {
		unused = 0
	}
	return Stats{
		Total:   total,
		Used:    used,
		Unused:  unused,
		Expired: expired,
	}
}
