//go:build unit

package sqlc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatements(t *testing.T) {
	statements := map[string]string{
		"createCampaign":          createCampaign,
		"campaignExists":          campaignExists,
		"listCampaignsWithStats":  listCampaignsWithStats,
		"getCouponUser":           getCouponUser,
		"countCouponUsers":        countCouponUsers,
		"createCouponUser":        createCouponUser,
		"markCouponUserRedeemed":  markCouponUserRedeemed,
		"listCouponUsersByCoupon": listCouponUsersByCoupon,
		"getCouponByCode":         getCouponByCode,
		"getCouponBySubCode":      getCouponBySubCode,
		"getCouponByID":           getCouponByID,
		"lockCouponByID":          lockCouponByID,
		"createCoupon":            createCoupon,
		"updateCoupon":            updateCoupon,
		"listCoupons":             listCoupons,
		"upsertProduct":           upsertProduct,
		"addCouponProduct":        addCouponProduct,
		"listCouponProductNames":  listCouponProductNames,
		"findUserByEmail":         findUserByEmail,
		"findUserByID":            findUserByID,
		"recordUserLogin":         recordUserLogin,
		"createUser":              createUser,
	}

	for name, sql := range statements {
		t.Run(name, func(t *testing.T) {
			assert.NotContains(t, sql, "-- name:", "statements are hand-written and carry no generator header")
			assert.NotEmpty(t, strings.TrimSpace(sql))
		})
	}

	t.Run("lock takes a row lock", func(t *testing.T) {
		assert.Contains(t, lockCouponByID, "FOR UPDATE")
	})

	t.Run("user_count covers anonymous records", func(t *testing.T) {
		assert.Contains(t, listCoupons, "WHERE cu.coupon_id = c.id) AS user_count")
	})
}
