package models

// AuditRequest is the payload shared by all audit endpoints.
type AuditRequest struct {
	// URL is the scheme-qualified address of the page to audit. Required.
	URL string `json:"url" binding:"required,url"`
}

// BasicInfoResult is the response for POST /api/v1/basic-info.
type BasicInfoResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    string   `json:"keywords"`
	Favicon     string   `json:"favicon"`
	Robots      Presence `json:"robots"`
	Sitemap     Presence `json:"sitemap"`
	Score       int      `json:"score"`
	Status      Status   `json:"status"`
	Message     string   `json:"message"`
	Suggestion  string   `json:"suggestion"`
}

// HeadingEntry is one heading in document order within its tag group.
type HeadingEntry struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// HeadingCensus reports H1-H3 counts and structural errors.
type HeadingCensus struct {
	H1        int            `json:"h1"`
	H2        int            `json:"h2"`
	H3        int            `json:"h3"`
	Structure []HeadingEntry `json:"structure"`
	Status    Status         `json:"status"`
	Errors    []string       `json:"errors"`
}

// ImageAltAudit reports images lacking a non-empty alt attribute.
type ImageAltAudit struct {
	Total          int      `json:"total"`
	MissingAlt     int      `json:"missingAlt"`
	MissingAltList []string `json:"missingAltList"`
	Status         Status   `json:"status"`
}

// Link is an anchor with its visible text.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// LinkCensus classifies the page's absolute http(s) anchors.
type LinkCensus struct {
	Internal      int      `json:"internal"`
	External      int      `json:"external"`
	Nofollow      int      `json:"nofollow"`
	InternalLinks []Link   `json:"internalLinks"`
	ExternalLinks []Link   `json:"externalLinks"`
	NofollowLinks []Link   `json:"nofollowLinks"`
	Errors        []string `json:"errors"`
	Status        Status   `json:"status"`
}

// KeywordDensity is one entry of the top-10 keyword frequency table.
type KeywordDensity struct {
	Word    string `json:"word"`
	Count   int    `json:"count"`
	Density string `json:"density"`
}

// SEOElementsResult is the response for POST /api/v1/seo-elements.
type SEOElementsResult struct {
	HTags          HeadingCensus    `json:"hTags"`
	ImgAlt         ImageAltAudit    `json:"imgAlt"`
	Links          LinkCensus       `json:"links"`
	KeywordDensity []KeywordDensity `json:"keywordDensity"`
	Score          int              `json:"score"`
	Status         Status           `json:"status"`
	Suggestion     string           `json:"suggestion"`
	Errors         []string         `json:"errors"`
}

// TechSEOResult is the response for POST /api/v1/tech-seo.
type TechSEOResult struct {
	Responsive Check      `json:"responsive"`
	Speed      SpeedCheck `json:"speed"`
	HTTPS      Check      `json:"https"`
	Schema     Check      `json:"schema"`
	Score      int        `json:"score"`
	Status     Status     `json:"status"`
	Suggestion string     `json:"suggestion"`
}

// DeadLinkReport is the bounded dead-link scan outcome.
type DeadLinkReport struct {
	Status       Status   `json:"status"`
	Total        int      `json:"total"`
	Dead         int      `json:"dead"`
	Message      string   `json:"message"`
	DeadLinkList []string `json:"deadLinkList"`
}

// ReadabilityCheck is the content readability heuristic outcome.
type ReadabilityCheck struct {
	Status  Status `json:"status"`
	Score   int    `json:"score"`
	Message string `json:"message"`
}

// AccessibilityResult is the response for POST /api/v1/accessibility.
type AccessibilityResult struct {
	Custom404   Check            `json:"custom404"`
	DeadLinks   DeadLinkReport   `json:"deadLinks"`
	Readability ReadabilityCheck `json:"readability"`
	Score       int              `json:"score"`
	Status      Status           `json:"status"`
	Suggestions []string         `json:"suggestions"`
	Suggestion  string           `json:"suggestion"`
}

// SessionStats reports rendering session utilisation.
type SessionStats struct {
	MaxSessions    int64 `json:"max_sessions"`
	ActiveSessions int32 `json:"active_sessions"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status   string       `json:"status"` // "healthy" or "degraded"
	Uptime   string       `json:"uptime"`
	Sessions SessionStats `json:"sessions"`
	Version  string       `json:"version"`
}
