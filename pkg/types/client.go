// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ClientProfile holds the per-client context reused across articles:
// company and audience briefs, optional writing guidelines, and the sitemap
// used for internal linking.
type ClientProfile struct {
	// Name identifies the client and is the storage key.
	Name string `json:"name" yaml:"name"`

	// CompanyBrief describes the client's company and offering.
	CompanyBrief string `json:"company_brief" yaml:"company_brief"`

	// AudienceBrief describes the client's ideal customer profile.
	AudienceBrief string `json:"audience_brief" yaml:"audience_brief"`

	// Guidelines holds optional tone and style instructions.
	Guidelines string `json:"guidelines,omitempty" yaml:"guidelines,omitempty"`

	// SitemapURL points at the client's XML sitemap (optional; required only
	// for the link stage).
	SitemapURL string `json:"sitemap_url,omitempty" yaml:"sitemap_url,omitempty"`
}

// Briefs returns the shared generation context carried by the profile.
// The article brief is supplied per run.
func (p ClientProfile) Briefs(articleBrief string) Briefs {
	return Briefs{
		ArticleBrief:  articleBrief,
		CompanyBrief:  p.CompanyBrief,
		AudienceBrief: p.AudienceBrief,
		Guidelines:    p.Guidelines,
	}
}
