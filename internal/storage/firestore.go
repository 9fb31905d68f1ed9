package storage

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pauljones0/promo-campaigns/internal/models"
)

const firestoreCollection = "promoPages"

type Client struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) collection() *firestore.CollectionRef {
	return c.client.Collection(firestoreCollection)
}

// Create writes the full campaign at its ID, replacing any existing document.
func (c *Client) Create(ctx context.Context, campaign models.Campaign) error {
	if campaign.ID == "" {
		return fmt.Errorf("create campaign: empty document ID")
	}
	if _, err := c.collection().Doc(campaign.ID).Set(ctx, campaign); err != nil {
		return fmt.Errorf("failed to set campaign %s: %w", campaign.ID, err)
	}
	return nil
}

// Get retrieves a campaign by its document ID. It returns nil, nil when the
// document does not exist.
func (c *Client) Get(ctx context.Context, id string) (*models.Campaign, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := c.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign by ID %s: %w", id, err)
	}
	if !doc.Exists() {
		return nil, nil
	}
	return decodeCampaign(doc)
}

// QueryByToken returns the first campaign whose token equals token, or nil, nil
// when none does.
func (c *Client) QueryByToken(ctx context.Context, token string) (*models.Campaign, error) {
	if token == "" {
		return nil, nil
	}
	iter := c.collection().Where(models.FieldToken, "==", token).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign by token: %w", err)
	}
	return decodeCampaign(doc)
}

// List returns every campaign in document ID order.
func (c *Client) List(ctx context.Context) ([]models.Campaign, error) {
	iter := c.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	campaigns := []models.Campaign{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
		}
		campaign, err := decodeCampaign(doc)
		if err != nil {
			// Malformed documents are logged and left out of the listing.
			slog.Warn("Skipping undecodable campaign", "id", doc.Ref.ID, "error", err)
			continue
		}
		campaigns = append(campaigns, *campaign)
	}
	return campaigns, nil
}

// Update merges the fields set in patch into an existing campaign. It returns
// models.ErrNotFound when the document does not exist and never creates one.
func (c *Client) Update(ctx context.Context, id string, patch models.CampaignPatch) error {
	updates := patchUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	_, err := c.collection().Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("update campaign %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update campaign %s: %w", id, err)
	}
	return nil
}

// Delete removes a campaign. Deleting a missing document is not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	if _, err := c.collection().Doc(id).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("failed to delete campaign %s: %w", id, err)
	}
	return nil
}

// patchUpdates converts the set fields of patch into Firestore field updates.
// Only fields present in the patch are written.
func patchUpdates(patch models.CampaignPatch) []firestore.Update {
	var updates []firestore.Update
	add := func(path string, value interface{}) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if patch.CompanyName != nil {
		add(models.FieldCompanyName, *patch.CompanyName)
	}
	if patch.LogoURL != nil {
		add(models.FieldLogoURL, *patch.LogoURL)
	}
	if patch.VideoURL != nil {
		add(models.FieldVideoURL, *patch.VideoURL)
	}
	if patch.ResearchURL != nil {
		add(models.FieldResearchURL, *patch.ResearchURL)
	}
	if patch.GoogleProblemURL != nil {
		add(models.FieldGoogleProblemURL, *patch.GoogleProblemURL)
	}
	if patch.BulletPoints != nil {
		add(models.FieldBulletPoints, nonNil(*patch.BulletPoints))
	}
	if patch.ServiceAreaPoints != nil {
		add(models.FieldServiceAreaPoints, nonNil(*patch.ServiceAreaPoints))
	}
	return updates
}

func decodeCampaign(doc *firestore.DocumentSnapshot) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := doc.DataTo(&campaign); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign data: %w", err)
	}
	campaign.ID = doc.Ref.ID
	campaign.BulletPoints = nonNil(campaign.BulletPoints)
	campaign.ServiceAreaPoints = nonNil(campaign.ServiceAreaPoints)
	return &campaign, nil
}

func nonNil(points []string) []string {
	if points == nil {
		return []string{}
	}
	return points
}
