package campaign

import (
	"context"

	"github.com/pauljones0/promo-campaigns/internal/models"
)

// CampaignStore abstracts the storage layer for campaign records.
type CampaignStore interface {
	Create(ctx context.Context, campaign models.Campaign) error
	Get(ctx context.Context, id string) (*models.Campaign, error)
	List(ctx context.Context) ([]models.Campaign, error)
	Update(ctx context.Context, id string, patch models.CampaignPatch) error
	Delete(ctx context.Context, id string) error
}

// CreationNotifier is told about each campaign after it has been stored.
type CreationNotifier interface {
	CampaignCreated(ctx context.Context, campaign models.Campaign) error
}
