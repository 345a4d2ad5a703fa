package models

// Status classifies the outcome of a single checked property.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Presence reports whether an auxiliary resource (robots.txt,
// sitemap.xml) responded with HTTP 200.
type Presence string

const (
	Present Presence = "present"
	Missing Presence = "missing"
)

// Check is the atomic classified outcome of one checked property.
type Check struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// SpeedCheck is a Check that also carries the measured load time.
type SpeedCheck struct {
	Status  Status `json:"status"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Module scoring is deliberately flat: a module is either clean (100)
// or has at least one failing check (60). No partial credit.
const (
	ScorePass    = 100
	ScorePenalty = 60
)
