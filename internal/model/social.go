package model

// Platform names for social links. The classifier and extractor agree on
// these keys; anything else is dropped at the aggregate boundary.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
	PlatformYouTube   = "youtube"
)

// AllowedPlatforms is the fixed set of platforms a profile may carry.
var AllowedPlatforms = map[string]struct{}{
	PlatformFacebook:  {},
	PlatformInstagram: {},
	PlatformLinkedIn:  {},
	PlatformTwitter:   {},
	PlatformYouTube:   {},
}

// SocialLinks holds the canonical website and at most one canonical URL per
// platform.
type SocialLinks struct {
	Website string            `json:"website,omitempty"`
	Links   map[string]string `json:"links"`
}

// NewSocialLinks filters a raw platform→URL map down to allowed platforms
// with non-empty values.
func NewSocialLinks(website string, links map[string]string) SocialLinks {
	s := SocialLinks{Website: website, Links: make(map[string]string)}
	for plat, url := range links {
		if url == "" {
			continue
		}
		if _, ok := AllowedPlatforms[plat]; !ok {
			continue
		}
		s.Links[plat] = url
	}
	return s
}
