package audit

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitelens/models"
)

// probeSession is the slice of a rendering session the 404 probe needs.
type probeSession interface {
	NavigateStatus(ctx context.Context, target string, timeout time.Duration) (int, error)
	HTML(ctx context.Context) (string, error)
}

// notFoundPath is appended to the target to probe for a custom 404 page.
const notFoundPath = "/this-page-should-not-exist-404-check"

// notFoundRe matches common not-found markers, including the CJK ones,
// so soft-404 pages without a 404 status still count as handled.
var notFoundRe = regexp.MustCompile(`(?i)404|not found|页面不存在|未找到`)

// Accessibility audits accessibility and content quality: custom 404
// handling, dead outbound links, and a readability heuristic.
//
// The page's anchors and visible text are captured immediately after
// the initial load, before the 404 probe and the dead-link scan
// navigate the session elsewhere.
func (a *Auditor) Accessibility(ctx context.Context, target string) (*models.AccessibilityResult, error) {
	sess, release, err := a.acquireSession(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := sess.Navigate(ctx, target, a.auditCfg.NavTimeout); err != nil {
		return nil, err
	}
	doc, err := sess.Document(ctx)
	if err != nil {
		return nil, err
	}
	text, err := sess.Text(ctx)
	if err != nil {
		return nil, err
	}
	links := collectAnchors(doc)

	custom404 := a.check404(ctx, sess, target)
	deadLinks := a.scanDeadLinks(ctx, sess, links)
	readability := analyzeReadability(text)

	return classifyAccessibility(custom404, deadLinks, readability), nil
}

// collectAnchors returns the hrefs of all anchors with absolute http(s)
// targets, in document-discovery order.
func collectAnchors(doc *goquery.Document) []string {
	var links []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http") {
			links = append(links, href)
		}
	})
	return links
}

// check404 requests a synthetically invalid sub-path of the target. A
// 404 status or a recognizable not-found page counts as handled; a
// failed probe is an error, never a silent pass.
func (a *Auditor) check404(ctx context.Context, sess probeSession, target string) models.Check {
	probeURL := strings.TrimRight(target, "/") + notFoundPath
	status, err := sess.NavigateStatus(ctx, probeURL, a.auditCfg.ProbeTimeout)
	if err != nil {
		return models.Check{
			Status:  models.StatusError,
			Message: "404 detection failed.",
		}
	}

	if status != http.StatusNotFound {
		html, htmlErr := sess.HTML(ctx)
		if htmlErr != nil || !notFoundRe.MatchString(html) {
			return models.Check{
				Status:  models.StatusError,
				Message: "No custom 404 page detected; configure a friendly not-found page.",
			}
		}
	}
	return models.Check{
		Status:  models.StatusPass,
		Message: "Custom 404 page detected.",
	}
}

// classifyAccessibility rolls the three sub-checks into the module
// verdict. Any non-pass sub-check (warnings included) collapses the
// module to the flat penalty score.
func classifyAccessibility(custom404 models.Check, deadLinks models.DeadLinkReport, readability models.ReadabilityCheck) *models.AccessibilityResult {
	result := &models.AccessibilityResult{
		Custom404:   custom404,
		DeadLinks:   deadLinks,
		Readability: readability,
		Score:       models.ScorePass,
		Status:      models.StatusPass,
		Suggestions: []string{},
	}

	if custom404.Status != models.StatusPass {
		result.Suggestions = append(result.Suggestions, KindNo404Page.Remediation())
	}
	if deadLinks.Status != models.StatusPass {
		result.Suggestions = append(result.Suggestions, KindDeadLinks.Remediation())
	}
	if readability.Status != models.StatusPass {
		result.Suggestions = append(result.Suggestions, KindPoorReadability.Remediation())
	}

	if len(result.Suggestions) > 0 {
		result.Score = models.ScorePenalty
		result.Status = models.StatusError
		result.Suggestion = result.Suggestions[0]
	}
	return result
}
