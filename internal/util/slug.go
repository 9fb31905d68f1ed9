package util

import (
	"regexp"
	"strings"
)

var (
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
	nonSlugCharRegex   = regexp.MustCompile(`[^a-z0-9-]`)
)

// DeriveCampaignID maps a company name to its document key.
// "Acme  Corp!" and "acme-corp" both derive "acme-corp". The result is empty
// when the name has no letters, digits or inner whitespace.
func DeriveCampaignID(companyName string) string {
	id := strings.TrimSpace(strings.ToLower(companyName))
	id = whitespaceRunRegex.ReplaceAllString(id, "-")
	return nonSlugCharRegex.ReplaceAllString(id, "")
}
