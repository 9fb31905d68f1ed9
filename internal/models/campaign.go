package models

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when no campaign matches the requested id or token.
var ErrNotFound = errors.New("campaign not found")

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports caller input that cannot be accepted.
// Message is safe to show to the caller.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Campaign is a tenant's promo page as stored in the promoPages collection.
type Campaign struct {
	ID                string    `firestore:"-" json:"id"` // Firestore document key, not stored as a field
	CompanyName       string    `firestore:"companyName" json:"companyName"`
	Token             string    `firestore:"token" json:"token"`
	LogoURL           string    `firestore:"logoUrl" json:"logoUrl"`
	VideoURL          string    `firestore:"videoUrl" json:"videoUrl"`
	ResearchURL       string    `firestore:"researchUrl,omitempty" json:"researchUrl,omitempty"`
	GoogleProblemURL  string    `firestore:"googleProblemUrl,omitempty" json:"googleProblemUrl,omitempty"`
	BulletPoints      []string  `firestore:"bulletPoints" json:"bulletPoints"`
	ServiceAreaPoints []string  `firestore:"serviceAreaPoints" json:"serviceAreaPoints"`
	CreatedAt         time.Time `firestore:"createdAt" json:"createdAt"`
}

// CampaignInput is the admin payload for creating a campaign.
type CampaignInput struct {
	CompanyName       string   `json:"companyName"`
	LogoURL           string   `json:"logoUrl" validate:"omitempty,url"`
	VideoURL          string   `json:"videoUrl" validate:"omitempty,url"`
	ResearchURL       string   `json:"researchUrl,omitempty" validate:"omitempty,url"`
	GoogleProblemURL  string   `json:"googleProblemUrl,omitempty" validate:"omitempty,url"`
	BulletPoints      []string `json:"bulletPoints,omitempty"`
	ServiceAreaPoints []string `json:"serviceAreaPoints,omitempty"`
}

// Field returns the input value for a JSON field name, and whether the name is
// a known scalar field.
func (in CampaignInput) Field(name string) (string, bool) {
	switch name {
	case FieldCompanyName:
		return in.CompanyName, true
	case FieldLogoURL:
		return in.LogoURL, true
	case FieldVideoURL:
		return in.VideoURL, true
	case FieldResearchURL:
		return in.ResearchURL, true
	case FieldGoogleProblemURL:
		return in.GoogleProblemURL, true
	}
	return "", false
}

// CampaignPatch is a partial update. Nil fields are left untouched.
// There are no id, token or createdAt fields, so those keys are dropped when a
// patch is decoded.
type CampaignPatch struct {
	CompanyName       *string   `json:"companyName,omitempty"`
	LogoURL           *string   `json:"logoUrl,omitempty" validate:"omitempty,url"`
	VideoURL          *string   `json:"videoUrl,omitempty" validate:"omitempty,url"`
	ResearchURL       *string   `json:"researchUrl,omitempty" validate:"omitempty,url"`
	GoogleProblemURL  *string   `json:"googleProblemUrl,omitempty" validate:"omitempty,url"`
	BulletPoints      *[]string `json:"bulletPoints,omitempty"`
	ServiceAreaPoints *[]string `json:"serviceAreaPoints,omitempty"`
}

// IsEmpty reports whether the patch sets no fields.
func (p CampaignPatch) IsEmpty() bool {
	return p.CompanyName == nil && p.LogoURL == nil && p.VideoURL == nil &&
		p.ResearchURL == nil && p.GoogleProblemURL == nil &&
		p.BulletPoints == nil && p.ServiceAreaPoints == nil
}

// Apply returns a copy of c with the patch fields merged in.
func (p CampaignPatch) Apply(c Campaign) Campaign {
	if p.CompanyName != nil {
		c.CompanyName = *p.CompanyName
	}
	if p.LogoURL != nil {
		c.LogoURL = *p.LogoURL
	}
	if p.VideoURL != nil {
		c.VideoURL = *p.VideoURL
	}
	if p.ResearchURL != nil {
		c.ResearchURL = *p.ResearchURL
	}
	if p.GoogleProblemURL != nil {
		c.GoogleProblemURL = *p.GoogleProblemURL
	}
	if p.BulletPoints != nil {
		c.BulletPoints = append([]string{}, *p.BulletPoints...)
	}
	if p.ServiceAreaPoints != nil {
		c.ServiceAreaPoints = append([]string{}, *p.ServiceAreaPoints...)
	}
	return c
}

// JSON and Firestore field names.
const (
	FieldCompanyName       = "companyName"
	FieldToken             = "token"
	FieldLogoURL           = "logoUrl"
	FieldVideoURL          = "videoUrl"
	FieldResearchURL       = "researchUrl"
	FieldGoogleProblemURL  = "googleProblemUrl"
	FieldBulletPoints      = "bulletPoints"
	FieldServiceAreaPoints = "serviceAreaPoints"
	FieldCreatedAt         = "createdAt"
)

// DefaultRequiredFields is the minimum set of fields a new campaign must carry.
var DefaultRequiredFields = []string{FieldCompanyName, FieldLogoURL, FieldVideoURL}
