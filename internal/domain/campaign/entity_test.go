//go:build unit

package campaign_test

import (
	"strings"
	"testing"

	"coupon-service/internal/domain/campaign"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaign(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		errIs    error
	}{
		{name: "valid name", input: "Black Friday", wantName: "Black Friday"},
		{name: "name is trimmed", input: "  Spring  ", wantName: "Spring"},
		{name: "empty name", input: "", errIs: campaign.ErrInvalidName},
		{name: "blank name", input: "   ", errIs: campaign.ErrInvalidName},
		{name: "too long", input: strings.Repeat("a", 256), errIs: campaign.ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := campaign.NewCampaign(tt.input, "desc")

			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
			assert.Equal(t, "desc", c.Description())
			assert.NotEqual(t, uuid.Nil, c.ID())
		})
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name                              string
		total, used, expired, usedExpired int
		want                              campaign.Stats
	}{
		{
			name: "empty campaign",
			want: campaign.Stats{},
		},
		{
			name:  "nothing used or expired",
			total: 5,
			want:  campaign.Stats{Total: 5, Unused: 5},
		},
		{
			name:    "used and expired are disjoint",
			total:   10,
			used:    3,
			expired: 2,
			want:    campaign.Stats{Total: 10, Used: 3, Unused: 5, Expired: 2},
		},
		{
			name:        "used expired coupons counted once",
			total:       10,
			used:        3,
			expired:     4,
			usedExpired: 2,
			want:        campaign.Stats{Total: 10, Used: 3, Unused: 5, Expired: 4},
		},
		{
			name:    "all consumed",
			total:   2,
			used:    1,
			expired: 1,
			want:    campaign.Stats{Total: 2, Used: 1, Unused: 0, Expired: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := campaign.ComputeStats(tt.total, tt.used, tt.expired, tt.usedExpired)
			assert.Equal(t, tt.want, got)
		})
	}
}
