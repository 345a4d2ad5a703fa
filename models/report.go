package models

// ModuleSummary is the per-module rollup embedded in a Report.
type ModuleSummary struct {
	Score       int      `json:"score"`
	Status      Status   `json:"status"`
	Suggestion  string   `json:"suggestion"`
	Suggestions []string `json:"suggestions,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// ReportModules groups the four module rollups.
type ReportModules struct {
	Basic         ModuleSummary `json:"basic"`
	SEOElements   ModuleSummary `json:"seoElements"`
	TechSEO       ModuleSummary `json:"techSeo"`
	Accessibility ModuleSummary `json:"accessibility"`
}

// Report is the weighted composite of all four audit modules.
type Report struct {
	URL        string        `json:"url"`
	TotalScore int           `json:"totalScore"`
	Modules    ReportModules `json:"modules"`
}
