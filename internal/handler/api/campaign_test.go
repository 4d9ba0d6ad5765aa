//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/handler/api"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
	"coupon-service/tests/common/httptest"
	commandsmock "coupon-service/tests/mock/commands"
	queriesmock "coupon-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupCampaignRouter(t *testing.T) (*gin.Engine, *commandsmock.MockCampaignCommands, *queriesmock.MockCampaignQueries) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockCampaignCommands(ctrl)
	q := queriesmock.NewMockCampaignQueries(ctrl)
	handler := api.NewCampaignHandler(cmds, q)

	router := gin.New()
	router.GET("/admin/campaigns", handler.List)
	router.POST("/admin/campaigns", handler.Create)
	return router, cmds, q
}

func TestCampaignHandler_List(t *testing.T) {
	t.Run("success: returns campaigns with stats", func(t *testing.T) {
		router, _, q := setupCampaignRouter(t)
		view := &queries.CampaignView{
			ID:        uuid.New(),
			Name:      "Spring",
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Stats:     campaign.ComputeStats(10, 4, 3, 1),
		}
		q.EXPECT().List(gomock.Any()).Return([]*queries.CampaignView{view}, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin/campaigns", nil, "")

		var response []resdto.CampaignResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
		require.Len(t, response, 1)
		assert.Equal(t, "Spring", response[0].Name)
		require.NotNil(t, response[0].Stats)
		assert.Equal(t, resdto.CampaignStatsResponse{Total: 10, Used: 4, Unused: 4, Expired: 3}, *response[0].Stats)
	})

	t.Run("success: empty list is an empty array", func(t *testing.T) {
		router, _, q := setupCampaignRouter(t)
		q.EXPECT().List(gomock.Any()).Return(nil, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin/campaigns", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("error: read failure is 500", func(t *testing.T) {
		router, _, q := setupCampaignRouter(t)
		q.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin/campaigns", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})
}

func TestCampaignHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		setup      func(cmds *commandsmock.MockCampaignCommands)
		expectCode int
		expectMsg  string
	}{
		{
			name: "success",
			body: map[string]any{"name": "Summer", "description": "beach"},
			setup: func(cmds *commandsmock.MockCampaignCommands) {
				cmds.EXPECT().Create(gomock.Any(), commands.CreateCampaignParams{Name: "Summer", Description: "beach"}).
					Return(campaign.Rehydrate(uuid.New(), "Summer", "beach", time.Now()), nil)
			},
			expectCode: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       map[string]any{"description": "beach"},
			expectCode: http.StatusBadRequest,
			expectMsg:  "Invalid request",
		},
		{
			name: "duplicate name",
			body: map[string]any{"name": "Summer"},
			setup: func(cmds *commandsmock.MockCampaignCommands) {
				cmds.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, commands.ErrDuplicateCampaign)
			},
			expectCode: http.StatusConflict,
			expectMsg:  "Campaign name already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cmds, _ := setupCampaignRouter(t)
			if tt.setup != nil {
				tt.setup(cmds)
			}

			rec := httptest.PerformRequest(t, router, http.MethodPost, "/admin/campaigns", tt.body, "")
			if tt.expectCode == http.StatusCreated {
				var response resdto.CampaignResponse
				httptest.AssertSuccessResponse(t, rec, tt.expectCode, &response)
				assert.Equal(t, "Summer", response.Name)
				assert.Nil(t, response.Stats)
				return
			}
			httptest.AssertErrorResponse(t, rec, tt.expectCode, tt.expectMsg)
		})
	}
}
