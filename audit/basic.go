package audit

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitelens/models"
)

// basicSignals are the raw facts the basic-info module extracts from
// the rendered DOM before classification.
type basicSignals struct {
	title       string
	description string
	keywords    string
	favicon     string
}

// BasicInfo audits the page's presence metadata: title, description and
// keyword meta tags, favicon, and the robots.txt / sitemap.xml files.
func (a *Auditor) BasicInfo(ctx context.Context, target string) (*models.BasicInfoResult, error) {
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

	base, _ := url.Parse(sess.FinalURL(ctx, target))
	sig := extractBasicSignals(doc, base)

	robots := presenceOf(a.prober.Exists(ctx, target, "robots.txt"))
	sitemap := presenceOf(a.prober.Exists(ctx, target, "sitemap.xml"))

	return classifyBasicInfo(sig, robots, sitemap), nil
}

// extractBasicSignals reads title, meta tags and the favicon link from
// the document. The favicon href is resolved against base when possible.
func extractBasicSignals(doc *goquery.Document, base *url.URL) basicSignals {
	metaContent := func(name string) string {
		content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
		return strings.TrimSpace(content)
	}

	favicon := ""
	if href, ok := doc.Find(`link[rel~="icon"]`).First().Attr("href"); ok {
		favicon = strings.TrimSpace(href)
		if base != nil {
			if ref, err := url.Parse(favicon); err == nil {
				favicon = base.ResolveReference(ref).String()
			}
		}
	}

	return basicSignals{
		title:       strings.TrimSpace(doc.Find("title").First().Text()),
		description: metaContent("description"),
		keywords:    metaContent("keywords"),
		favicon:     favicon,
	}
}

// classifyBasicInfo applies the flat verdict rule: every one of the six
// properties must be present for a pass.
func classifyBasicInfo(sig basicSignals, robots, sitemap models.Presence) *models.BasicInfoResult {
	result := &models.BasicInfoResult{
		Title:       sig.title,
		Description: sig.description,
		Keywords:    sig.keywords,
		Favicon:     sig.favicon,
		Robots:      robots,
		Sitemap:     sitemap,
		Score:       models.ScorePass,
		Status:      models.StatusPass,
		Message:     "All basic site information is present.",
	}

	if sig.title == "" || sig.description == "" || sig.keywords == "" || sig.favicon == "" ||
		robots == models.Missing || sitemap == models.Missing {
		result.Score = models.ScorePenalty
		result.Status = models.StatusError
		result.Message = "Some basic site information is missing."
		result.Suggestion = remediate([]CheckKind{KindMissingBasicInfo}, "Check the basic site information.")
	}
	return result
}

func presenceOf(ok bool) models.Presence {
	if ok {
		return models.Present
	}
	return models.Missing
}
