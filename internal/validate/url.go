package validate

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidFormat is the display-ready message for unparseable input.
const ErrInvalidFormat = "Invalid URL format. Please enter a valid product URL."

// PlatformOther labels hostnames that match no known e-commerce platform.
const PlatformOther = "Other"

// platform pairs a display name with the domains it is recognized by
type platform struct {
	name    string
	domains []string
}

// knownPlatforms is the static table of recognized e-commerce platforms.
// Matching is advisory metadata only and never gates validity.
var knownPlatforms = []platform{
	{"Amazon", []string{"amazon.in", "amazon.com", "amazon.co.uk", "amazon.de", "amazon.fr"}},
	{"Flipkart", []string{"flipkart.com"}},
	{"Myntra", []string{"myntra.com"}},
	{"Walmart", []string{"walmart.com"}},
	{"eBay", []string{"ebay.com", "ebay.in", "ebay.co.uk"}},
	{"AliExpress", []string{"aliexpress.com"}},
	{"Etsy", []string{"etsy.com"}},
	{"Target", []string{"target.com"}},
	{"Best Buy", []string{"bestbuy.com"}},
}

// Result is the outcome of validating a user-supplied product URL
type Result struct {
	Valid    bool
	Platform string // recognized platform name, or "Other"
	URL      string // the input, unmodified, when valid
	Error    string // display-ready reason when invalid
}

// ProductURL parses and classifies a user-supplied string. A URL is valid
// when it has a scheme and hostname; platform recognition is best-effort and
// an unmatched host is labeled "Other". Pure function, no network access.
func ProductURL(input string) Result {
	parsed, err := url.Parse(strings.TrimSpace(input))
	if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
		return Result{Valid: false, Error: ErrInvalidFormat}
	}

	return Result{
		Valid:    true,
		Platform: PlatformForHost(parsed.Hostname()),
		URL:      input,
	}
}

// PlatformForHost matches a hostname against the known platform table using
// case-insensitive substring matching.
func PlatformForHost(host string) string {
	host = strings.ToLower(host)
	for _, p := range knownPlatforms {
		for _, domain := range p.domains {
			if strings.Contains(host, domain) {
				return p.name
			}
		}
	}
	return PlatformOther
}

// RegistrableDomain returns the eTLD+1 for a hostname, used as the display
// label when the platform is "Other". Falls back to the input host when the
// public suffix list cannot resolve it.
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}
