package audit

import "strings"

// CheckKind identifies a category of failing check. Remediation text is
// keyed by kind rather than matched against message text, so messages
// can change freely without breaking suggestions.
type CheckKind int

const (
	KindMissingBasicInfo CheckKind = iota
	KindHeadingStructure
	KindMissingAlt
	KindLinkHygiene
	KindMissingViewport
	KindNoHTTPS
	KindNoStructuredData
	KindSlowLoad
	KindNo404Page
	KindDeadLinks
	KindPoorReadability
)

var remediations = map[CheckKind]string{
	KindMissingBasicInfo: "Complete the site title, description, keywords, favicon, robots.txt and sitemap.xml.",
	KindHeadingStructure: "Use exactly one H1 per page and nest heading levels sequentially.",
	KindMissingAlt:       "Add alt attributes to all images to improve image SEO and accessibility.",
	KindLinkHygiene:      "Balance internal and external links and give every link visible text.",
	KindMissingViewport:  "Add a viewport meta tag to improve mobile rendering.",
	KindNoHTTPS:          "Enable HTTPS with a valid SSL certificate to improve security.",
	KindNoStructuredData: "Add Schema.org structured data to help search engines understand the page.",
	KindSlowLoad:         "Optimize images and scripts to speed up page load.",
	KindNo404Page:        "Configure a friendly custom 404 page to improve user experience.",
	KindDeadLinks:        "Fix dead links so visitors never land on missing pages.",
	KindPoorReadability:  "Improve paragraph and sentence structure to make the page easier to read.",
}

// Remediation returns the canned remediation text for a check kind.
func (k CheckKind) Remediation() string {
	return remediations[k]
}

// remediate joins the remediations for the given failing kinds in
// order, deduplicated. When no kind is known, fallback is returned so
// a failing module never ships an empty suggestion.
func remediate(kinds []CheckKind, fallback string) string {
	if len(kinds) == 0 {
		return fallback
	}
	seen := make(map[CheckKind]bool, len(kinds))
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		if r := k.Remediation(); r != "" {
			parts = append(parts, r)
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, " ")
}
