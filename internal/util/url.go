package util

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeHost strips any port and returns the lowercase ASCII form of an
// inbound Host header value.
func NormalizeHost(host string) (string, error) {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("normalize host %q: %w", host, err)
	}
	return strings.ToLower(ascii), nil
}

// TenantLabel returns the leftmost label of host when host is a subdomain of
// baseDomain and that label is not "www". Both arguments must already be
// normalized.
func TenantLabel(host, baseDomain string) (string, bool) {
	if host == "" || baseDomain == "" {
		return "", false
	}
	prefix, ok := strings.CutSuffix(host, "."+baseDomain)
	if !ok || prefix == "" {
		return "", false
	}
	label, _, _ := strings.Cut(prefix, ".")
	if label == "" || label == "www" {
		return "", false
	}
	return label, true
}
