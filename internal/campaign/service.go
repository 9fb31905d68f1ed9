package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pauljones0/promo-campaigns/internal/config"
	"github.com/pauljones0/promo-campaigns/internal/models"
	"github.com/pauljones0/promo-campaigns/internal/util"
	"github.com/pauljones0/promo-campaigns/internal/validator"
)

const notifyTimeout = 5 * time.Second

type Service struct {
	store          CampaignStore
	notifier       CreationNotifier
	validator      *validator.Validator
	requiredFields []string
	tokenLength    int
	newToken       func(length int) (string, error)
	now            func() time.Time
}

// New builds the campaign lifecycle service. n may be nil.
func New(store CampaignStore, n CreationNotifier, cfg *config.Config) *Service {
	required := cfg.RequiredFields
	if len(required) == 0 {
		required = models.DefaultRequiredFields
	}
	tokenLength := cfg.TokenLength
	if tokenLength <= 0 {
		slog.Warn("Invalid token length, using default", "length", cfg.TokenLength, "default", util.DefaultTokenLength)
		tokenLength = util.DefaultTokenLength
	}

	return &Service{
		store:          store,
		notifier:       n,
		validator:      validator.New(),
		requiredFields: required,
		tokenLength:    tokenLength,
		newToken:       util.GenerateToken,
		now:            time.Now,
	}
}

// Create validates in, derives the campaign ID from the company name, issues a
// fresh token and stores the record. An existing campaign with the same ID is
// overwritten. It returns the new campaign's ID.
func (s *Service) Create(ctx context.Context, in models.CampaignInput) (string, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)

	if missing := s.missingFields(in); len(missing) > 0 {
		return "", &models.ValidationError{Message: "Missing required fields", Fields: missing}
	}
	if err := s.validator.ValidateStruct(in); err != nil {
		return "", &models.ValidationError{Message: "Invalid fields", Fields: validator.InvalidFields(err)}
	}

	id := util.DeriveCampaignID(in.CompanyName)
	if id == "" {
		return "", &models.ValidationError{
			Message: "companyName must contain at least one letter or digit",
			Fields:  []string{models.FieldCompanyName},
		}
	}

	token, err := s.newToken(s.tokenLength)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	campaign := models.Campaign{
		ID:                id,
		CompanyName:       in.CompanyName,
		Token:             token,
		LogoURL:           in.LogoURL,
		VideoURL:          in.VideoURL,
		ResearchURL:       in.ResearchURL,
		GoogleProblemURL:  in.GoogleProblemURL,
		BulletPoints:      copyPoints(in.BulletPoints),
		ServiceAreaPoints: copyPoints(in.ServiceAreaPoints),
		CreatedAt:         s.now().UTC(),
	}
	if err := s.store.Create(ctx, campaign); err != nil {
		return "", fmt.Errorf("create campaign %s: %w", id, err)
	}
	slog.Info("Campaign created", "id", id)

	s.notifyCreated(ctx, campaign)
	return id, nil
}

// List returns every stored campaign.
func (s *Service) List(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// Update applies a partial update. Renaming a company keeps its original ID.
// An empty patch succeeds without touching the store.
func (s *Service) Update(ctx context.Context, id string, patch models.CampaignPatch) error {
	if patch.CompanyName != nil {
		name := strings.TrimSpace(*patch.CompanyName)
		patch.CompanyName = &name
	}
	if cleared := s.clearedRequiredFields(patch); len(cleared) > 0 {
		return &models.ValidationError{Message: "Required fields cannot be empty", Fields: cleared}
	}
	if err := s.validator.ValidateStruct(patch); err != nil {
		return &models.ValidationError{Message: "Invalid fields", Fields: validator.InvalidFields(err)}
	}
	if patch.IsEmpty() {
		return nil
	}

	if err := s.store.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("update campaign %s: %w", id, err)
	}
	slog.Info("Campaign updated", "id", id)
	return nil
}

// Delete removes a campaign. Deleting an unknown ID succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete campaign %s: %w", id, err)
	}
	slog.Info("Campaign deleted", "id", id)
	return nil
}

func (s *Service) missingFields(in models.CampaignInput) []string {
	var missing []string
	for _, name := range s.requiredFields {
		value, ok := in.Field(name)
		if ok && s.validator.Blank(value) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (s *Service) clearedRequiredFields(patch models.CampaignPatch) []string {
	values := map[string]*string{
		models.FieldCompanyName:      patch.CompanyName,
		models.FieldLogoURL:          patch.LogoURL,
		models.FieldVideoURL:         patch.VideoURL,
		models.FieldResearchURL:      patch.ResearchURL,
		models.FieldGoogleProblemURL: patch.GoogleProblemURL,
	}
	var cleared []string
	for _, name := range s.requiredFields {
		if v := values[name]; v != nil && s.validator.Blank(*v) {
			cleared = append(cleared, name)
		}
	}
	return cleared
}

func (s *Service) notifyCreated(ctx context.Context, campaign models.Campaign) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.CampaignCreated(ctx, campaign); err != nil {
		slog.Warn("Failed to send campaign notification", "id", campaign.ID, "error", err)
	}
}

func copyPoints(points []string) []string {
	return append([]string{}, points...)
}
