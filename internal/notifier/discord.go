package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pauljones0/promo-campaigns/internal/models"
)

const colorCampaignCreated = 3447003 // #3498DB

type Client struct {
	webhookURL  string
	promoBase   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

// New returns a webhook client. promoBase is the public origin used to build
// promo links (for example "https://berealmediagroup.com"); it may be empty.
func New(webhookURL, promoBase string) *Client {
	return &Client{
		webhookURL: webhookURL,
		promoBase:  strings.TrimSuffix(promoBase, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		// Discord allows roughly 5 webhook requests per 2 seconds.
		rateLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// CampaignCreated posts a message announcing a new campaign.
// It is a no-op when no webhook is configured.
func (c *Client) CampaignCreated(ctx context.Context, campaign models.Campaign) error {
	if c.webhookURL == "" {
		return nil
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	payload := discordWebhookPayload{Embeds: []discordEmbed{formatCampaignEmbed(campaign, c.promoBase)}}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("discord status: %s, body: %s", resp.Status, string(bodyBytes))
}

// Internal structures
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbedThumbnail struct {
	URL string `json:"url,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbed struct {
	Title       string                `json:"title,omitempty"`
	Description string                `json:"description,omitempty"`
	URL         string                `json:"url,omitempty"`
	Timestamp   string                `json:"timestamp,omitempty"`
	Color       int                   `json:"color,omitempty"`
	Thumbnail   discordEmbedThumbnail `json:"thumbnail,omitempty"`
	Fields      []discordEmbedField   `json:"fields,omitempty"`
}

// formatCampaignEmbed links the title to the promo page only when promoBase is set.
func formatCampaignEmbed(campaign models.Campaign, promoBase string) discordEmbed {
	embed := discordEmbed{
		Title:     "New campaign: " + campaign.CompanyName,
		Color:     colorCampaignCreated,
		Thumbnail: discordEmbedThumbnail{URL: campaign.LogoURL},
		Fields: []discordEmbedField{
			{Name: "ID", Value: campaign.ID, Inline: true},
			{Name: "Problems", Value: fmt.Sprintf("%d", len(campaign.BulletPoints)), Inline: true},
			{Name: "Service areas", Value: fmt.Sprintf("%d", len(campaign.ServiceAreaPoints)), Inline: true},
		},
	}
	if !campaign.CreatedAt.IsZero() {
		embed.Timestamp = campaign.CreatedAt.Format(time.RFC3339)
	}
	if promoBase != "" && campaign.Token != "" {
		embed.URL = promoBase + "/promo/" + campaign.Token
	}
	if campaign.VideoURL != "" {
		embed.Description = fmt.Sprintf("[Video](%s)", campaign.VideoURL)
	}
	return embed
}
