package audit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/sitelens/models"
)

const topKeywords = 10

// SEOElements audits on-page SEO structure: heading hierarchy, image
// alt attributes, link hygiene, and keyword density.
func (a *Auditor) SEOElements(ctx context.Context, target string) (*models.SEOElementsResult, error) {
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

	finalURL := sess.FinalURL(ctx, target)
	base, _ := url.Parse(finalURL)

	hTags := headingCensus(doc)
	imgAlt := imageAltAudit(doc, base)
	links := linkCensus(doc, pageOrigin(base))
	density := keywordDensity(text, topKeywords)

	return classifySEOElements(hTags, imgAlt, links, density), nil
}

// headingCensus counts H1-H3 tags, records their truncated text grouped
// by level, and flags two structural problems: an H1 count other than
// exactly one, and any heading whose level jumps more than one step
// past the previous heading in document order.
func headingCensus(doc *goquery.Document) models.HeadingCensus {
	census := models.HeadingCensus{
		Structure: []models.HeadingEntry{},
		Errors:    []string{},
	}

	counts := map[string]int{}
	for _, tag := range []string{"h1", "h2", "h3"} {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			counts[tag]++
			census.Structure = append(census.Structure, models.HeadingEntry{
				Tag:  tag,
				Text: truncate(strings.TrimSpace(s.Text()), 50),
			})
		})
	}
	census.H1 = counts["h1"]
	census.H2 = counts["h2"]
	census.H3 = counts["h3"]

	if census.H1 != 1 {
		census.Errors = append(census.Errors,
			fmt.Sprintf("H1 tag count is %d; each page should have exactly one H1.", census.H1))
	}

	lastLevel := 0
	doc.Find("h1, h2, h3").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		level := int(tag[1] - '0')
		if level-lastLevel > 1 {
			census.Errors = append(census.Errors,
				fmt.Sprintf("Heading %d (%s %q) jumps levels; nest headings in order.",
					i+1, strings.ToUpper(tag), truncate(strings.TrimSpace(s.Text()), 30)))
		}
		lastLevel = level
	})

	census.Status = models.StatusPass
	if len(census.Errors) > 0 {
		census.Status = models.StatusError
	}
	return census
}

// imageAltAudit collects every <img> lacking a non-empty alt attribute.
// Sources are resolved against base so the list is actionable.
func imageAltAudit(doc *goquery.Document, base *url.URL) models.ImageAltAudit {
	audit := models.ImageAltAudit{MissingAltList: []string{}}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		audit.Total++
		if alt, ok := s.Attr("alt"); ok && alt != "" {
			return
		}
		audit.MissingAlt++
		src, _ := s.Attr("src")
		if base != nil {
			if ref, err := url.Parse(src); err == nil {
				src = base.ResolveReference(ref).String()
			}
		}
		audit.MissingAltList = append(audit.MissingAltList, src)
	})

	audit.Status = models.StatusPass
	if audit.MissingAlt > 0 {
		audit.Status = models.StatusError
	}
	return audit
}

// linkCensus classifies anchors with absolute http(s) hrefs as internal
// or external to origin, records nofollow usage, and flags anchors with
// no visible text. Relative hrefs are not counted.
func linkCensus(doc *goquery.Document, origin string) models.LinkCensus {
	census := models.LinkCensus{
		InternalLinks: []models.Link{},
		ExternalLinks: []models.Link{},
		NofollowLinks: []models.Link{},
		Errors:        []string{},
	}

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		link := models.Link{Href: href, Text: strings.TrimSpace(s.Text())}

		if origin != "" && strings.HasPrefix(href, origin) {
			census.InternalLinks = append(census.InternalLinks, link)
		} else {
			census.ExternalLinks = append(census.ExternalLinks, link)
		}

		rel, _ := s.Attr("rel")
		if strings.Contains(rel, "nofollow") {
			census.NofollowLinks = append(census.NofollowLinks, link)
			census.Errors = append(census.Errors,
				fmt.Sprintf("Link %s uses the nofollow attribute.", href))
		}
		if link.Text == "" {
			census.Errors = append(census.Errors,
				fmt.Sprintf("Link %s has no visible text.", href))
		}
	})

	census.Internal = len(census.InternalLinks)
	census.External = len(census.ExternalLinks)
	census.Nofollow = len(census.NofollowLinks)
	census.Status = models.StatusPass
	if len(census.Errors) > 0 {
		census.Status = models.StatusError
	}
	return census
}

// classifySEOElements rolls the three structural checks into the module
// verdict. All check errors are concatenated into one list; any error
// collapses the module to the flat penalty score.
func classifySEOElements(h models.HeadingCensus, img models.ImageAltAudit, links models.LinkCensus, density []models.KeywordDensity) *models.SEOElementsResult {
	result := &models.SEOElementsResult{
		HTags:          h,
		ImgAlt:         img,
		Links:          links,
		KeywordDensity: density,
		Score:          models.ScorePass,
		Status:         models.StatusPass,
		Errors:         []string{},
	}

	var kinds []CheckKind
	if len(h.Errors) > 0 {
		result.Errors = append(result.Errors, h.Errors...)
		kinds = append(kinds, KindHeadingStructure)
	}
	if len(img.MissingAltList) > 0 {
		result.Errors = append(result.Errors, missingAltSummary(img.MissingAltList))
		kinds = append(kinds, KindMissingAlt)
	}
	if len(links.Errors) > 0 {
		result.Errors = append(result.Errors, links.Errors...)
		kinds = append(kinds, KindLinkHygiene)
	}

	if len(result.Errors) > 0 {
		result.Score = models.ScorePenalty
		result.Status = models.StatusError
		result.Suggestion = remediate(kinds, "Review the on-page SEO elements.")
	}
	return result
}

// missingAltSummary lists at most the first five offending sources.
func missingAltSummary(srcs []string) string {
	shown := srcs
	suffix := ""
	if len(shown) > 5 {
		shown = shown[:5]
		suffix = "..."
	}
	return fmt.Sprintf("Images missing alt attributes: %s%s", strings.Join(shown, ", "), suffix)
}

// pageOrigin returns scheme://host[:port] for the page, or "" when the
// URL could not be parsed.
func pageOrigin(u *url.URL) string {
	if u == nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
