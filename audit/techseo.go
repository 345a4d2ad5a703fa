package audit

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitelens/models"
)

// TechSEO audits technical SEO signals: mobile viewport, structured
// data, transport security, and wall-clock load time.
func (a *Auditor) TechSEO(ctx context.Context, target string) (*models.TechSEOResult, error) {
	sess, release, err := a.acquireSession(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	elapsed, err := sess.Navigate(ctx, target, a.auditCfg.NavTimeout)
	if err != nil {
		return nil, err
	}
	doc, err := sess.Document(ctx)
	if err != nil {
		return nil, err
	}

	return classifyTechSEO(
		checkViewport(doc),
		checkSpeed(elapsed),
		checkHTTPS(target),
		checkStructuredData(doc),
	), nil
}

func checkViewport(doc *goquery.Document) models.Check {
	if doc.Find(`meta[name="viewport"]`).Length() > 0 {
		return models.Check{
			Status:  models.StatusPass,
			Message: "Viewport meta tag detected; mobile rendering is supported.",
		}
	}
	return models.Check{
		Status:  models.StatusError,
		Message: "No viewport meta tag detected; mobile rendering may be broken.",
	}
}

func checkStructuredData(doc *goquery.Document) models.Check {
	hasSchema := doc.Find(`script[type="application/ld+json"]`).Length() > 0 ||
		doc.Find("[itemscope], [itemtype]").Length() > 0
	if hasSchema {
		return models.Check{
			Status:  models.StatusPass,
			Message: "Structured data detected.",
		}
	}
	return models.Check{
		Status:  models.StatusError,
		Message: "No structured data detected; consider adding Schema.org markup.",
	}
}

func checkHTTPS(target string) models.Check {
	u, err := url.Parse(target)
	if err != nil {
		return models.Check{
			Status:  models.StatusError,
			Message: "URL is malformed.",
		}
	}
	if u.Scheme != "https" {
		return models.Check{
			Status:  models.StatusError,
			Message: "HTTPS is not enabled; enable an SSL certificate.",
		}
	}
	return models.Check{
		Status:  models.StatusPass,
		Message: "HTTPS is enabled.",
	}
}

// checkSpeed classifies the wall-clock load time: over 3s is an error,
// over 2s a warning.
func checkSpeed(elapsed time.Duration) models.SpeedCheck {
	value := fmt.Sprintf("%.2fs", elapsed.Seconds())
	switch {
	case elapsed > 3*time.Second:
		return models.SpeedCheck{
			Status:  models.StatusError,
			Value:   value,
			Message: fmt.Sprintf("Page load is slow (%s); optimize images and scripts.", value),
		}
	case elapsed > 2*time.Second:
		return models.SpeedCheck{
			Status:  models.StatusWarning,
			Value:   value,
			Message: fmt.Sprintf("Page load is average (%s); further optimization is possible.", value),
		}
	default:
		return models.SpeedCheck{
			Status:  models.StatusPass,
			Value:   value,
			Message: fmt.Sprintf("Page load time: %s.", value),
		}
	}
}

// classifyTechSEO rolls the four checks into the module verdict. Only
// checks in the error state penalise the module; a speed warning alone
// leaves the score untouched.
func classifyTechSEO(responsive models.Check, speed models.SpeedCheck, https, schema models.Check) *models.TechSEOResult {
	result := &models.TechSEOResult{
		Responsive: responsive,
		Speed:      speed,
		HTTPS:      https,
		Schema:     schema,
		Score:      models.ScorePass,
		Status:     models.StatusPass,
	}

	var kinds []CheckKind
	if responsive.Status == models.StatusError {
		kinds = append(kinds, KindMissingViewport)
	}
	if https.Status == models.StatusError {
		kinds = append(kinds, KindNoHTTPS)
	}
	if schema.Status == models.StatusError {
		kinds = append(kinds, KindNoStructuredData)
	}
	if speed.Status == models.StatusError {
		kinds = append(kinds, KindSlowLoad)
	}

	if len(kinds) > 0 {
		result.Score = models.ScorePenalty
		result.Status = models.StatusError
		result.Suggestion = remediate(kinds, "Review the technical SEO checks.")
	}
	return result
}
