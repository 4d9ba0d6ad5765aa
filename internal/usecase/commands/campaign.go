package commands

import (
	"context"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/shared"
)

var ErrDuplicateCampaign = errs.New("campaign name already exists")

type CreateCampaignParams struct {
	Name        string
	Description string
}

type CampaignCommands interface {
	Create(ctx context.Context, params CreateCampaignParams) (*campaign.Campaign, error)
}

type campaignCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCampaignCommands(uow shared.UnitOfWork) CampaignCommands {
	return &campaignCommandsImpl{uow: uow}
}

func (c *campaignCommandsImpl) Create(ctx context.Context, params CreateCampaignParams) (*campaign.Campaign, error) {
	cmp, err := campaign.NewCampaign(params.Name, params.Description)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var saved *campaign.Campaign
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		saved, err = tx.Campaigns().Create(ctx, cmp)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, ErrDuplicateCampaign)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
